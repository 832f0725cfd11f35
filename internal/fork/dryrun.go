package fork

import "github.com/fatih/color"

// reportDryRun narrates every action the pipeline would take, without making
// any remote call or publishing any output. The narration is deterministic
// for a given config so workflows can assert on it.
func (o *Orchestrator) reportDryRun() {
	header := color.New(color.FgYellow, color.Bold).Sprint("Dry run enabled - no changes will be made")
	name := color.New(color.FgCyan).Sprint

	o.out.Infof("%s", header)
	o.out.Infof("Organization: %s", name(o.cfg.Organization))
	o.out.Infof("Source database: %s", name(o.cfg.SourceDatabase))
	o.out.Infof("New database: %s", name(o.cfg.NewDatabase))

	if o.cfg.Group != "" {
		o.out.Infof("Group: %s", name(o.cfg.Group))
	} else {
		o.out.Infof("Group: would be fetched from source database %s", name(o.cfg.SourceDatabase))
	}

	if o.cfg.Replace {
		o.out.Infof("Would check whether %s already exists and delete it first", name(o.cfg.NewDatabase))
	}

	o.out.Infof("Would create database %s seeded from %s", name(o.cfg.NewDatabase), name(o.cfg.SourceDatabase))

	if o.cfg.CreateToken {
		o.out.Infof("Would create an access token for %s", name(o.cfg.NewDatabase))
	}
}
