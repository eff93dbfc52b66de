package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/assetorbit/engine/pkg/models/domain"
)

// Evaluator applies a single (actual value, operator, literal) comparison.
// Every operator is total: malformed patterns, non-numeric values and absent
// actuals all evaluate to false instead of failing, so one bad rule or row
// never aborts a batch.
//
// Compiled regex patterns are cached by pattern text. Invalid patterns are
// cached as always-false so they are not recompiled per asset.
type Evaluator struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp // nil entry = known-invalid pattern
}

func NewEvaluator() *Evaluator {
	return &Evaluator{patterns: make(map[string]*regexp.Regexp)}
}

// Evaluate reports whether actual satisfies the operator against the rule
// literal. All string comparisons are case-insensitive and trimmed.
func (e *Evaluator) Evaluate(actual any, op domain.Operator, literal string) bool {
	value, present := stringify(actual)
	if !present {
		return false
	}

	value = strings.TrimSpace(value)
	literal = strings.TrimSpace(literal)

	switch op {
	case domain.OperatorEquals:
		return strings.EqualFold(value, literal)
	case domain.OperatorNotEquals:
		return !strings.EqualFold(value, literal)
	case domain.OperatorIncludes:
		return strings.Contains(strings.ToLower(value), strings.ToLower(literal))
	case domain.OperatorRegex:
		re := e.pattern(literal)
		return re != nil && re.MatchString(value)
	case domain.OperatorGTE, domain.OperatorLTE, domain.OperatorGT, domain.OperatorLT:
		left, ok := LeadingNumber(value)
		if !ok {
			return false
		}
		right, ok := LeadingNumber(literal)
		if !ok {
			return false
		}
		switch op {
		case domain.OperatorGTE:
			return left >= right
		case domain.OperatorLTE:
			return left <= right
		case domain.OperatorGT:
			return left > right
		default:
			return left < right
		}
	}
	return false
}

// CompilePattern compiles a rule's regex literal the same way Evaluate does,
// surfacing the compile error for the rule-authoring path.
func CompilePattern(literal string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + strings.TrimSpace(literal))
}

func (e *Evaluator) pattern(literal string) *regexp.Regexp {
	e.mu.RLock()
	re, cached := e.patterns[literal]
	e.mu.RUnlock()
	if cached {
		return re
	}

	re, err := CompilePattern(literal)
	if err != nil {
		re = nil
	}

	e.mu.Lock()
	e.patterns[literal] = re
	e.mu.Unlock()
	return re
}

var leadingNumberRe = regexp.MustCompile(`^\d+(\.\d+)?`)

// LeadingNumber parses the numeric prefix of a value, ignoring trailing text
// ("64GB" -> 64). Values with no numeric prefix report false.
func LeadingNumber(s string) (float64, bool) {
	match := leadingNumberRe.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// stringify renders a resolved value for comparison. nil (absent) reports
// false; every other scalar gets a stable textual form.
func stringify(actual any) (string, bool) {
	switch v := actual.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}
