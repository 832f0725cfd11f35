package cli

import (
	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/sphr2k/turso-create-database-action/internal/fork"
	"github.com/sphr2k/turso-create-database-action/internal/gha"
	"github.com/sphr2k/turso-create-database-action/internal/log"
	"github.com/sphr2k/turso-create-database-action/internal/turso"
)

// Inputs is the action's configuration surface. On a runner every value
// arrives as an INPUT_* environment variable; the flags below override them
// for local invocations.
type Inputs struct {
	Organization   string `env:"INPUT_ORGANIZATION"`
	APIToken       string `env:"INPUT_API_TOKEN"`
	SourceDatabase string `env:"INPUT_SOURCE_DATABASE_NAME"`
	NewDatabase    string `env:"INPUT_NEW_DATABASE_NAME"`
	Group          string `env:"INPUT_GROUP_NAME"`
	Replace        bool   `env:"INPUT_REPLACE"`
	CreateToken    bool   `env:"INPUT_CREATE_DATABASE_TOKEN"`
	DryRun         bool   `env:"INPUT_DRY_RUN"`
	Debug          bool   `env:"INPUT_DEBUG"`

	// APIBaseURL is not an action input; it exists for tests and self-hosted
	// API deployments.
	APIBaseURL string `env:"TURSO_API_URL"`
}

var flagVals = &Inputs{}

// RootCmd is the main entry point invoked from cmd/tursofork.
var RootCmd = &cobra.Command{
	Use:           "tursofork",
	Short:         "Fork a Turso database and publish its connection details as step outputs",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute parses flags and runs the root command.
func Execute() error { return RootCmd.Execute() }

func init() {
	f := RootCmd.Flags()
	f.StringVar(&flagVals.Organization, "organization", "", "Turso organization name")
	f.StringVar(&flagVals.APIToken, "api-token", "", "Turso platform API token")
	f.StringVar(&flagVals.SourceDatabase, "source-database-name", "", "Database to fork from")
	f.StringVar(&flagVals.NewDatabase, "new-database-name", "", "Name of the database fork to create")
	f.StringVar(&flagVals.Group, "group-name", "", "Group for the fork (default: fetched from the source database)")
	f.BoolVar(&flagVals.Replace, "replace", false, "Delete a same-named fork before creating")
	f.BoolVar(&flagVals.CreateToken, "create-database-token", false, "Mint an access token for the fork")
	f.BoolVar(&flagVals.DryRun, "dry-run", false, "Narrate planned actions without contacting the API")
	f.BoolVar(&flagVals.Debug, "debug", false, "Enable debug output")
	f.StringVar(&flagVals.APIBaseURL, "api-url", "", "Override the platform API base URL")
}

func run(cmd *cobra.Command, _ []string) error {
	a := gha.New()

	in := &Inputs{}
	if err := env.Parse(in); err != nil {
		a.Failf("Failed to read action inputs: %v", err)
		return err
	}
	applyFlagOverrides(cmd, in)

	log.Setup(in.Debug)

	opts := []turso.Option{}
	if in.APIBaseURL != "" {
		opts = append(opts, turso.WithBaseURL(in.APIBaseURL))
	}
	api := turso.NewClient(in.Organization, in.APIToken, opts...)

	cfg := &fork.Config{
		Organization:   in.Organization,
		SourceDatabase: in.SourceDatabase,
		NewDatabase:    in.NewDatabase,
		Group:          in.Group,
		Replace:        in.Replace,
		CreateToken:    in.CreateToken,
		DryRun:         in.DryRun,
	}

	if err := fork.Run(cmd.Context(), cfg, api, a); err != nil {
		a.Failf("%s", err)
		return err
	}
	return nil
}

// applyFlagOverrides copies explicitly set flags over env-derived inputs.
func applyFlagOverrides(cmd *cobra.Command, in *Inputs) {
	set := cmd.Flags().Changed
	if set("organization") {
		in.Organization = flagVals.Organization
	}
	if set("api-token") {
		in.APIToken = flagVals.APIToken
	}
	if set("source-database-name") {
		in.SourceDatabase = flagVals.SourceDatabase
	}
	if set("new-database-name") {
		in.NewDatabase = flagVals.NewDatabase
	}
	if set("group-name") {
		in.Group = flagVals.Group
	}
	if set("replace") {
		in.Replace = flagVals.Replace
	}
	if set("create-database-token") {
		in.CreateToken = flagVals.CreateToken
	}
	if set("dry-run") {
		in.DryRun = flagVals.DryRun
	}
	if set("debug") {
		in.Debug = flagVals.Debug
	}
	if set("api-url") {
		in.APIBaseURL = flagVals.APIBaseURL
	}
}
