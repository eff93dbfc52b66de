package domain

import "github.com/google/uuid"

// Operator is a rule comparison operator.
type Operator string

const (
	OperatorEquals    Operator = "="
	OperatorNotEquals Operator = "!="
	OperatorGTE       Operator = ">="
	OperatorLTE       Operator = "<="
	OperatorGT        Operator = ">"
	OperatorLT        Operator = "<"
	OperatorIncludes  Operator = "includes"
	OperatorRegex     Operator = "regex"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals,
		OperatorGTE, OperatorLTE, OperatorGT, OperatorLT,
		OperatorIncludes, OperatorRegex:
		return true
	}
	return false
}

// WorkloadCategory is an operator-defined classification label. Deletion is
// logical: deactivated categories stay around so rules keep a valid target.
type WorkloadCategory struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
}

// WorkloadCategoryRule suggests its category when its condition matches.
// Lower priority evaluates first; ties break by creation order.
type WorkloadCategoryRule struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Priority    int
	SourceField string
	Operator    Operator
	Value       string
	IsActive    bool
}

// RuleCondition is a bare condition as authored in the rule editor, before it
// has an identity or a category.
type RuleCondition struct {
	SourceField string
	Operator    Operator
	Value       string
}

// Classification is the rule engine's verdict for one asset: the first
// matching rule's category, or no match at all.
type Classification struct {
	Matched    bool
	CategoryID uuid.UUID
	RuleID     uuid.UUID
}

// RuleTest is the Test/Explain facility's output. Error is populated when the
// condition itself is broken (for now: an uncompilable regex pattern), the
// explanation always describes what was compared.
type RuleTest struct {
	Result      bool
	Error       string
	Explanation string
}
