package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/rules"
	"github.com/assetorbit/engine/pkg/terminal/export"
)

type TestRuleCmd struct {
	field      string
	operator   string
	value      string
	samplePath string
	engine     *rules.Engine
	reporter   *export.Reporter
}

func NewTestRuleCmd(engine *rules.Engine, reporter *export.Reporter) *cobra.Command {
	tc := &TestRuleCmd{engine: engine, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "test-rule",
		Short: "Try a rule condition against sample field values",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.field, "field", "", "Dotted source field (e.g. specifications.ram)")
	cmd.Flags().StringVar(&tc.operator, "operator", "", "Comparison operator (=, !=, >=, <=, >, <, includes, regex)")
	cmd.Flags().StringVar(&tc.value, "value", "", "Comparison literal")
	cmd.Flags().StringVar(&tc.samplePath, "sample", "", "Path to a JSON object of sample field values")
	_ = cmd.MarkFlagRequired("field")
	_ = cmd.MarkFlagRequired("operator")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("sample")

	return cmd
}

func (tc *TestRuleCmd) run(cmd *cobra.Command, args []string) error {
	op := domain.Operator(tc.operator)
	if !op.Valid() {
		return fmt.Errorf("unknown operator %q", tc.operator)
	}

	data, err := os.ReadFile(tc.samplePath)
	if err != nil {
		return fmt.Errorf("failed to read sample file: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("sample file is not a JSON object: %w", err)
	}

	result := tc.engine.TestRule(domain.RuleCondition{
		SourceField: tc.field,
		Operator:    op,
		Value:       tc.value,
	}, domain.NewFieldBag(fields))

	return tc.reporter.HandleRuleTest(result)
}
