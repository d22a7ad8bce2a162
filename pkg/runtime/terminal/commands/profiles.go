package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mkt-tools/pulse-report/pkg/services/config"
)

type ProfilesCmd struct {
	profilesPath string
	output       io.Writer
}

func NewProfilesCmd(output io.Writer) *cobra.Command {
	pc := &ProfilesCmd{output: output}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the configured business profiles",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profilesPath, "profiles", "", "Path to the business profiles ini file")
	_ = cmd.MarkFlagRequired("profiles")

	return cmd
}

func (pc *ProfilesCmd) run(_ *cobra.Command, _ []string) error {
	registry, err := config.NewRegistry(pc.profilesPath)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	names, err := registry.Profiles()
	if err != nil {
		return err
	}

	for _, name := range names {
		profile, err := registry.Profile(name)
		if err != nil {
			return err
		}
		sources := 0
		for _, path := range []string{profile.QuicksightFile, profile.IgniteFile, profile.ZyloFile, profile.MSPFile} {
			if path != "" {
				sources++
			}
		}
		fmt.Fprintf(pc.output, "%s (%d sources)\n", name, sources)
	}
	return nil
}
