package rules

import (
	"context"
	"sort"
	"sync"

	"github.com/assetorbit/engine/pkg/models/domain"
)

const defaultWorkers = 4

// Engine assigns workload categories to assets. Classification is
// winner-take-all: the first active rule by ascending priority whose
// condition matches decides the category, even if later rules would also
// match.
type Engine struct {
	eval    *Evaluator
	workers int
}

func NewEngine() *Engine {
	return &Engine{eval: NewEvaluator(), workers: defaultWorkers}
}

// NewEngineWithWorkers sizes the batch-classification worker pool.
func NewEngineWithWorkers(workers int) *Engine {
	e := NewEngine()
	if workers > 0 {
		e.workers = workers
	}
	return e
}

// Classify returns the first matching active rule's category, or an
// unmatched classification when no rule fires. Evaluation order is priority
// ascending, with the original rule order breaking ties, so repeated runs on
// unchanged input always pick the same rule.
func (e *Engine) Classify(bag domain.FieldBag, ruleSet []domain.WorkloadCategoryRule) domain.Classification {
	ordered := make([]domain.WorkloadCategoryRule, 0, len(ruleSet))
	for _, rule := range ruleSet {
		if rule.IsActive {
			ordered = append(ordered, rule)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	for _, rule := range ordered {
		actual, present := Resolve(bag, rule.SourceField)
		if !present {
			continue
		}
		if e.eval.Evaluate(actual, rule.Operator, rule.Value) {
			return domain.Classification{
				Matched:    true,
				CategoryID: rule.CategoryID,
				RuleID:     rule.ID,
			}
		}
	}
	return domain.Classification{}
}

// TestRule runs a single authored condition against sample field values and
// explains the outcome. Unlike bulk classification, a broken regex pattern is
// reported through Error instead of silently evaluating to false.
func (e *Engine) TestRule(cond domain.RuleCondition, sample domain.FieldBag) domain.RuleTest {
	return testRule(e.eval, cond, sample)
}

// ClassifyBatch classifies many assets against one rule set, preserving
// input order. Assets are independent, so the work fans out across a bounded
// worker pool; cancellation is checked between assets.
func (e *Engine) ClassifyBatch(
	ctx context.Context,
	bags []domain.FieldBag,
	ruleSet []domain.WorkloadCategoryRule,
) ([]domain.Classification, error) {
	results := make([]domain.Classification, len(bags))
	if len(bags) == 0 {
		return results, nil
	}

	workers := e.workers
	if workers > len(bags) {
		workers = len(bags)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.Classify(bags[i], ruleSet)
			}
		}()
	}

feed:
	for i := range bags {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
