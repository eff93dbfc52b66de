package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/assetorbit/engine/pkg/adapters"
	"github.com/assetorbit/engine/pkg/models/api"
	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/services/rules"
	"github.com/assetorbit/engine/pkg/terminal/export"
)

type ClassifyCmd struct {
	assetsPath string
	rulesPath  string
	engine     *rules.Engine
	reporter   *export.Reporter
}

func NewClassifyCmd(engine *rules.Engine, reporter *export.Reporter) *cobra.Command {
	cc := &ClassifyCmd{engine: engine, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify assets against a rule set",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.assetsPath, "assets", "", "Path to a JSON array of resolved asset field sets")
	cmd.Flags().StringVar(&cc.rulesPath, "rules", "", "Path to a JSON array of classification rules")
	_ = cmd.MarkFlagRequired("assets")
	_ = cmd.MarkFlagRequired("rules")

	return cmd
}

func (cc *ClassifyCmd) run(cmd *cobra.Command, args []string) error {
	bags, err := readAssets(cc.assetsPath)
	if err != nil {
		return err
	}
	ruleSet, err := readRules(cc.rulesPath)
	if err != nil {
		return err
	}

	results, err := cc.engine.ClassifyBatch(cmd.Context(), bags, ruleSet)
	if err != nil {
		return err
	}

	return cc.reporter.HandleClassify(&export.ClassifyReport{Results: results})
}

func readAssets(path string) ([]domain.FieldBag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets file: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("assets file is not a JSON array of field objects: %w", err)
	}

	bags := make([]domain.FieldBag, len(raw))
	for i, fields := range raw {
		bags[i] = domain.NewFieldBag(fields)
	}
	return bags, nil
}

func readRules(path string) ([]domain.WorkloadCategoryRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var raw []api.Rule
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rules file is not a JSON array of rules: %w", err)
	}

	ruleSet := make([]domain.WorkloadCategoryRule, 0, len(raw))
	for _, apiRule := range raw {
		rule, err := adapters.MapApiRuleToDomain(apiRule)
		if err != nil {
			return nil, err
		}
		ruleSet = append(ruleSet, rule)
	}
	return ruleSet, nil
}
