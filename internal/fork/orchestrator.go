// Package fork drives the database fork pipeline: validate inputs, resolve
// the placement group, replace an existing fork if asked to, create the fork
// seeded from the source database and optionally mint an access token.
//
// The pipeline is strictly sequential and fail-fast: the first failing step
// produces the terminal error and nothing after it runs. A successful delete
// is never rolled back; the creation error message warns the operator instead.
package fork

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sphr2k/turso-create-database-action/internal/turso"
)

// Client is the slice of the Platform API the pipeline consumes.
type Client interface {
	GetDatabase(ctx context.Context, name string) (*turso.Database, error)
	CreateDatabase(ctx context.Context, req turso.CreateDatabaseRequest) (*turso.Database, error)
	DeleteDatabase(ctx context.Context, name string) error
	CreateToken(ctx context.Context, name string) (string, error)
}

// Reporter publishes step outputs and progress to the CI platform.
type Reporter interface {
	SetOutput(name, value string) error
	Mask(value string)
	Infof(format string, args ...any)
}

// Orchestrator keeps state across fork steps.
type Orchestrator struct {
	cfg *Config
	api Client
	out Reporter

	group string
}

// Run executes the full fork pipeline against the given API client.
func Run(ctx context.Context, cfg *Config, api Client, out Reporter) (err error) {
	// Outermost boundary: a panic anywhere below becomes a terminal error
	// message instead of escaping to the runner.
	defer func() {
		if r := recover(); r != nil {
			err = normalizePanic(r)
		}
	}()

	if err := cfg.Validate(); err != nil {
		return err
	}

	o := &Orchestrator{cfg: cfg, api: api, out: out}

	if cfg.DryRun {
		o.reportDryRun()
		return nil
	}

	if err := o.stepResolveGroup(ctx); err != nil {
		return err
	}
	if err := o.stepReplaceExisting(ctx); err != nil {
		return err
	}
	if err := o.stepCreateFork(ctx); err != nil {
		return err
	}
	if err := o.stepIssueToken(ctx); err != nil {
		return err
	}

	slog.Info("fork pipeline completed", "database", cfg.NewDatabase)
	return nil
}

// stepResolveGroup determines the placement group, fetching the source
// database's descriptor when no explicit group was supplied.
func (o *Orchestrator) stepResolveGroup(ctx context.Context) error {
	if o.cfg.Group != "" {
		o.group = o.cfg.Group
		slog.Debug("using supplied group", "group", o.group)
		return nil
	}

	db, err := o.api.GetDatabase(ctx, o.cfg.SourceDatabase)
	if err != nil {
		return fmt.Errorf("Failed to fetch existing database: %v", err)
	}
	if db.Group == "" {
		return fmt.Errorf("Group name not found in existing database response")
	}
	o.group = db.Group
	slog.Info("resolved group from source database", "group", o.group)
	return nil
}

// stepReplaceExisting deletes a same-named fork if one exists. A not-found
// answer on the existence check is the expected common case and continues
// straight to creation; any other failure halts the pipeline rather than
// risk masking an infrastructure problem.
func (o *Orchestrator) stepReplaceExisting(ctx context.Context) error {
	if !o.cfg.Replace {
		return nil
	}

	_, err := o.api.GetDatabase(ctx, o.cfg.NewDatabase)
	if err != nil {
		if turso.IsNotFound(err) {
			o.out.Infof("Database %s does not exist yet, nothing to replace", o.cfg.NewDatabase)
			return nil
		}
		return fmt.Errorf("Failed to check if database fork exists: %v", err)
	}

	o.out.Infof("Database %s already exists, deleting it before creating the fork", o.cfg.NewDatabase)
	if err := o.api.DeleteDatabase(ctx, o.cfg.NewDatabase); err != nil {
		return fmt.Errorf("Failed to delete existing database fork: %v", err)
	}
	slog.Info("existing fork deleted", "database", o.cfg.NewDatabase)
	return nil
}

// stepCreateFork creates the fork seeded from the source database and
// publishes the hostname and connection URL outputs.
func (o *Orchestrator) stepCreateFork(ctx context.Context) error {
	db, err := o.api.CreateDatabase(ctx, turso.CreateDatabaseRequest{
		Name:  o.cfg.NewDatabase,
		Group: o.group,
		Seed: &turso.Seed{
			Type: "database",
			Name: o.cfg.SourceDatabase,
		},
	})
	if err != nil {
		return fmt.Errorf("Failed to create database fork: %v. %s", err, o.createHint())
	}

	if db.Hostname == "" {
		return fmt.Errorf("Hostname not found in response")
	}

	dbURL := turso.Scheme + "://" + db.Hostname
	if err := o.out.SetOutput("hostname", db.Hostname); err != nil {
		return err
	}
	if err := o.out.SetOutput("database_url", dbURL); err != nil {
		return err
	}
	o.out.Infof("Created database %s at %s", o.cfg.NewDatabase, dbURL)
	return nil
}

// createHint tailors the creation failure message to what already happened:
// without replace the name may simply be taken; with replace a delete already
// ran and the fork's state needs manual inspection.
func (o *Orchestrator) createHint() string {
	if o.cfg.Replace {
		return "The fork may still exist after the deletion attempt; check the organization manually."
	}
	return "The database name may already be taken; enable replace or choose a different name."
}

// stepIssueToken mints an access token for the new fork and publishes it.
// Outputs published by the creation step stand even if this step fails.
func (o *Orchestrator) stepIssueToken(ctx context.Context) error {
	if !o.cfg.CreateToken {
		return nil
	}

	token, err := o.api.CreateToken(ctx, o.cfg.NewDatabase)
	if err != nil {
		return fmt.Errorf("Failed to create database token: %v", err)
	}
	if token == "" {
		return fmt.Errorf("Token not found in response")
	}

	// Mask before anything can log the value.
	o.out.Mask(token)
	if err := o.out.SetOutput("database_token", token); err != nil {
		return err
	}
	o.out.Infof("Created access token for %s", o.cfg.NewDatabase)
	logTokenExpiry(token)
	return nil
}

// logTokenExpiry logs the minted token's expiry claim at debug level. The
// parse is unverified and best-effort; a malformed token is not an error here.
func logTokenExpiry(token string) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		slog.Debug("token minted", "expires", "never")
		return
	}
	slog.Debug("token minted", "expires", exp.Time)
}

// normalizePanic converts a recovered panic into the pipeline's terminal
// error. Error values keep their message; anything else is reported as the
// stable "Unknown error" so messages do not depend on what was thrown.
func normalizePanic(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("Unknown error")
}
