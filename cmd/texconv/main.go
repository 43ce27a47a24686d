package main

import (
	"fmt"
	"os"

	"github.com/erinpentecost/texkit/internal/config"
	"github.com/erinpentecost/texkit/internal/dds"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
)

type rootCmd struct{}

func (r *rootCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "texconv",
		Usage: "[subcommand] [flags]",
		Desc:  "Inspect and convert DDS textures.",
	}
}

func (r *rootCmd) Run(fl *pflag.FlagSet) {
	fl.Usage()
	os.Exit(1)
}

func (r *rootCmd) Subcommands() []cli.Command {
	return []cli.Command{
		&infoCmd{},
		&convertCmd{},
	}
}

// profileFlags are shared by every subcommand.
type profileFlags struct {
	profile  string
	ddsFlags []string
}

func (p *profileFlags) register(fl *pflag.FlagSet) {
	fl.StringVar(&p.profile, "profile", "", "YAML profile to load settings from")
	fl.StringSliceVar(&p.ddsFlags, "dds-flags", nil, "DDS flags, e.g. legacy-dword,force-rgb")
}

// load returns the profile with the command line flags applied.
func (p *profileFlags) load(fl *pflag.FlagSet) (config.Profile, dds.Flags, error) {
	prof := config.Default()
	if p.profile != "" {
		var err error
		if prof, err = config.Load(p.profile); err != nil {
			return config.Profile{}, 0, err
		}
	}
	if fl.Changed("dds-flags") {
		prof.DDS.Flags = p.ddsFlags
	}
	flags, err := prof.DDSFlags()
	if err != nil {
		return config.Profile{}, 0, err
	}
	return prof, flags, nil
}

func fail(err error) {
	fmt.Printf("FAILED: %v\n", err)
	os.Exit(33)
}

func main() {
	cli.RunRoot(&rootCmd{})
}
