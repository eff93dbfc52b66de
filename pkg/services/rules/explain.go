package rules

import (
	"fmt"

	"github.com/assetorbit/engine/pkg/models/domain"
)

func testRule(eval *Evaluator, cond domain.RuleCondition, sample domain.FieldBag) domain.RuleTest {
	actual, present := Resolve(sample, cond.SourceField)

	if cond.Operator == domain.OperatorRegex {
		if _, err := CompilePattern(cond.Value); err != nil {
			return domain.RuleTest{
				Result: false,
				Error:  fmt.Sprintf("invalid regex pattern %q: %v", cond.Value, err),
				Explanation: fmt.Sprintf("%s %s %q? -> false (pattern does not compile)",
					cond.SourceField, operatorVerb(cond.Operator), cond.Value),
			}
		}
	}

	if !present {
		return domain.RuleTest{
			Result: false,
			Explanation: fmt.Sprintf("%s is absent from the sample -> false",
				cond.SourceField),
		}
	}

	result := eval.Evaluate(actual, cond.Operator, cond.Value)
	rendered, _ := stringify(actual)
	return domain.RuleTest{
		Result: result,
		Explanation: fmt.Sprintf("%s (%q) %s %q? -> %t",
			cond.SourceField, rendered, operatorVerb(cond.Operator), cond.Value, result),
	}
}

func operatorVerb(op domain.Operator) string {
	switch op {
	case domain.OperatorEquals:
		return "equals"
	case domain.OperatorNotEquals:
		return "does not equal"
	case domain.OperatorIncludes:
		return "contains"
	case domain.OperatorRegex:
		return "regex-matches"
	case domain.OperatorGTE:
		return "is at least"
	case domain.OperatorLTE:
		return "is at most"
	case domain.OperatorGT:
		return "is greater than"
	case domain.OperatorLT:
		return "is less than"
	}
	return string(op)
}
