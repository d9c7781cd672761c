// Package testutil provides test fixtures for nap clients.
//
// HTTPBin is an in-process server in the spirit of httpbin.org: it
// echoes requests back as JSON and answers with any status on demand.
//
//	func TestGet(t *testing.T) {
//	    bin := testutil.NewHTTPBin(t)
//	    api, _ := rest.New(rest.Config{BaseURL: bin.URL()})
//	    v, err := api.C("anything").C("users").Get(ctx)
//	    // v is the echo of GET /anything/users
//	}
//
// Routes:
//
//   - /anything/*path echoes any request
//   - /get, /post, /put, /patch, /delete echo requests with that method
//   - /status/:code answers with code and an empty body
//   - /respond/:code answers with code, the "body" query parameter as
//     body and the "content_type" query parameter as Content-Type
//   - /redirect-to redirects to the "url" query parameter with
//     "status_code" (302 by default)
//
// Fixtures implement TestComponent, so they can also be managed with
// T(t).Setup and reset between cases.
package testutil
