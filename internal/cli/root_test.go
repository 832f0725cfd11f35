package cli

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputsFromEnv(t *testing.T) {
	t.Setenv("INPUT_ORGANIZATION", "acme")
	t.Setenv("INPUT_API_TOKEN", "secret")
	t.Setenv("INPUT_SOURCE_DATABASE_NAME", "prod")
	t.Setenv("INPUT_NEW_DATABASE_NAME", "prod-pr-42")
	t.Setenv("INPUT_REPLACE", "true")
	t.Setenv("INPUT_CREATE_DATABASE_TOKEN", "false")
	t.Setenv("INPUT_DRY_RUN", "true")

	in := &Inputs{}
	require.NoError(t, env.Parse(in))

	assert.Equal(t, "acme", in.Organization)
	assert.Equal(t, "secret", in.APIToken)
	assert.Equal(t, "prod", in.SourceDatabase)
	assert.Equal(t, "prod-pr-42", in.NewDatabase)
	assert.Empty(t, in.Group)
	assert.True(t, in.Replace)
	assert.False(t, in.CreateToken)
	assert.True(t, in.DryRun)
}

func TestDryRunThroughCommand(t *testing.T) {
	t.Setenv("INPUT_ORGANIZATION", "acme")
	t.Setenv("INPUT_API_TOKEN", "secret")
	t.Setenv("INPUT_SOURCE_DATABASE_NAME", "prod")
	t.Setenv("INPUT_NEW_DATABASE_NAME", "prod-pr-42")
	t.Setenv("INPUT_DRY_RUN", "true")
	// point the client at nothing reachable: dry run must never dial out
	t.Setenv("TURSO_API_URL", "http://127.0.0.1:1")

	RootCmd.SetArgs(nil)
	require.NoError(t, RootCmd.Execute())
}
