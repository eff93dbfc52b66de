package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/transform"
	"github.com/assetorbit/engine/pkg/terminal/export"
)

type TransformCmd struct {
	source    string
	inputPath string
	registry  transform.Registry
	reporter  *export.Reporter
}

func NewTransformCmd(registry transform.Registry, reporter *export.Reporter) *cobra.Command {
	tc := &TransformCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Transform exported rows into canonical asset records",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.source, "source", "", "Source the rows came from (e.g. TELUS)")
	cmd.Flags().StringVar(&tc.inputPath, "input", "", "Path to a JSON array of row objects")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (tc *TransformCmd) run(cmd *cobra.Command, args []string) error {
	rows, err := readRows(tc.inputPath)
	if err != nil {
		return err
	}

	src := domain.Source(tc.source)
	results, err := tc.registry.TransformBatch(cmd.Context(), src, rows)
	if err != nil {
		return err
	}

	return tc.reporter.HandleTransform(&export.TransformReport{
		Source:  src,
		Results: results,
	})
}

func readRows(path string) ([]*domain.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var raw []map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("input file is not a JSON array of row objects: %w", err)
	}

	rows := make([]*domain.RawRow, len(raw))
	for i, columns := range raw {
		rows[i] = domain.RawRowFrom(columns)
	}
	return rows, nil
}
