package rest

import (
	"encoding/json"
	"fmt"
)

// Decode converts a decoded body (maps, slices, scalars) into T by
// re-encoding it as JSON. A *Result is unwrapped to its Body.
//
//	v, err := api.C("users").Call(rest.ID(1)).Get(ctx)
//	user, err := rest.Decode[User](v)
func Decode[T any](v any) (T, error) {
	var out T
	if res, ok := v.(*Result); ok {
		v = res.Body
	}
	if v == nil {
		return out, nil
	}
	data, ok := v.([]byte)
	if !ok {
		var err error
		if data, err = json.Marshal(v); err != nil {
			return out, fmt.Errorf("rest: decode %T: %w", out, err)
		}
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("rest: decode %T: %w", out, err)
	}
	return out, nil
}
