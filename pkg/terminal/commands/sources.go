package commands

import (
	"github.com/spf13/cobra"

	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/transform"
	"github.com/assetorbit/engine/pkg/terminal/export"
)

func NewSourcesCmd(registry transform.Registry, reporter *export.Reporter) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List supported import sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, src := range registry.Sources() {
				reporter.Printf("%s\n", src)
			}
			return nil
		},
	}
}

type MappingsCmd struct {
	source   string
	registry transform.Registry
	reporter *export.Reporter
}

func NewMappingsCmd(registry transform.Registry, reporter *export.Reporter) *cobra.Command {
	mc := &MappingsCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Show a source's proposed column mappings",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.source, "source", "", "Source to show mappings for (e.g. NINJAONE)")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func (mc *MappingsCmd) run(cmd *cobra.Command, args []string) error {
	mappings, err := mc.registry.ColumnMappings(domain.Source(mc.source))
	if err != nil {
		return err
	}

	for _, m := range mappings {
		mc.reporter.Printf("%-30s -> %s (%s)\n", m.ExternalColumn, m.TargetField, m.TargetKind)
	}
	return nil
}
