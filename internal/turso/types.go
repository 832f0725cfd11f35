package turso

import "encoding/json"

// Scheme is the URL scheme for libSQL database connections.
const Scheme = "libsql"

// Database is the descriptor the API returns for get/create calls.
//
// The API is not consistent about field casing across endpoints (some return
// "hostname", others "Hostname"), so decoding resolves each field from an
// ordered list of accepted spellings, lowercase first.
type Database struct {
	Name     string
	Group    string
	Hostname string
}

func (d *Database) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Name = stringField(raw, "name", "Name")
	d.Group = stringField(raw, "group", "Group")
	d.Hostname = stringField(raw, "hostname", "Hostname")
	return nil
}

// stringField returns the first key present in raw that decodes to a string.
func stringField(raw map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// Seed references the database a new fork is cloned from.
type Seed struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// CreateDatabaseRequest is the body of the create call.
type CreateDatabaseRequest struct {
	Name  string `json:"name"`
	Group string `json:"group"`
	Seed  *Seed  `json:"seed,omitempty"`
}

type databaseResponse struct {
	Database *Database `json:"database"`
}

type tokenResponse struct {
	JWT string `json:"jwt"`
}

type errorResponse struct {
	Error string `json:"error"`
}
