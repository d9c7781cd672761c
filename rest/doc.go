// Package rest is a dynamic REST client. Resource paths are built by
// chaining and HTTP verbs are issued against the resulting URL, with
// bodies encoded and responses decoded by content type.
//
// Usage:
//
//	api, err := rest.New(rest.Config{BaseURL: "https://api.example.com"})
//	if err != nil {
//		return err
//	}
//	defer api.Close(ctx)
//
//	// GET https://api.example.com/users/1/posts?page=2
//	posts, err := api.C("users").Call(rest.ID(1)).C("posts").Get(ctx, rest.WithParam("page", 2))
//
// Every derivation (Child, C, Call, AsRaw) returns a new *Resource; the
// receiver is never modified. Status codes 400-499 are returned as
// *ClientError (*NotFoundError for 404) and 500-599 as *ServerError.
package rest
