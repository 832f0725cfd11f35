package turso

import (
	"encoding/json"
	"testing"
)

func TestDatabaseDecodeSpellings(t *testing.T) {
	cases := []struct {
		name string
		body string
		host string
	}{
		{"lowercase", `{"name":"db","group":"g","hostname":"a.turso.io"}`, "a.turso.io"},
		{"capitalized", `{"Name":"db","Group":"g","Hostname":"a.turso.io"}`, "a.turso.io"},
		{"lowercase preferred", `{"hostname":"low.turso.io","Hostname":"cap.turso.io"}`, "low.turso.io"},
		{"missing", `{"name":"db"}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var db Database
			if err := json.Unmarshal([]byte(tc.body), &db); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if db.Hostname != tc.host {
				t.Fatalf("hostname = %q, want %q", db.Hostname, tc.host)
			}
		})
	}
}

func TestDatabaseDecodeIgnoresNonString(t *testing.T) {
	var db Database
	if err := json.Unmarshal([]byte(`{"hostname":42,"Hostname":"a.turso.io"}`), &db); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// a non-string primary spelling falls through to the alternate one
	if db.Hostname != "a.turso.io" {
		t.Fatalf("hostname = %q", db.Hostname)
	}
}
