package fork

import "errors"

// ErrReplaceWithoutSource is the pre-flight validation failure: deleting an
// existing fork is only allowed when there is a source database to rebuild
// it from.
var ErrReplaceWithoutSource = errors.New("replace requires source_database_name to be set")

// Config collects parameters required by the fork orchestrator.
// It is filled from action inputs but lives in a standalone package to avoid
// import cycles with the CLI layer.
type Config struct {
	Organization   string
	SourceDatabase string
	NewDatabase    string

	// Group is the placement group for the fork. Empty means "fetch it from
	// the source database's descriptor".
	Group string

	Replace     bool
	CreateToken bool
	DryRun      bool
}

// Validate checks the cross-field rules. Presence of the individual required
// inputs is enforced by the action metadata, not here.
func (c *Config) Validate() error {
	if c.Replace && c.SourceDatabase == "" {
		return ErrReplaceWithoutSource
	}
	return nil
}
