package rest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/nap/httpclient"
)

type testUser struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Tags    []string `json:"tags"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
}

func TestDecode(t *testing.T) {
	body := map[string]any{
		"id":      float64(1),
		"name":    "Leanne Graham",
		"tags":    []any{"a", "b"},
		"company": map[string]any{"name": "Romaguera-Crona"},
		"extra":   true,
	}
	want := testUser{ID: 1, Name: "Leanne Graham", Tags: []string{"a", "b"}}
	want.Company.Name = "Romaguera-Crona"

	tests := []struct {
		name string
		in   any
	}{
		{"decoded body", body},
		{"result", &Result{Response: &httpclient.Response{StatusCode: 200}, Body: body}},
		{"raw bytes", []byte(`{"id":1,"name":"Leanne Graham","tags":["a","b"],"company":{"name":"Romaguera-Crona"}}`)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode[testUser](tc.in)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_YAMLBody(t *testing.T) {
	got, err := Decode[[]testUser]([]any{map[string]any{"id": 2, "name": "Ervin"}})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 || got[0].Name != "Ervin" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestDecode_Nil(t *testing.T) {
	got, err := Decode[*testUser](nil)
	if err != nil || got != nil {
		t.Errorf("Decode(nil) = %v, %v; want nil, nil", got, err)
	}
}

func TestDecode_Mismatch(t *testing.T) {
	if _, err := Decode[testUser](map[string]any{"id": "not a number"}); err == nil {
		t.Error("expected an error for a mistyped field")
	}
	if _, err := Decode[testUser]([]byte("not json")); err == nil {
		t.Error("expected an error for malformed bytes")
	}
}
