package store

import "time"

// WorkloadCategory is a category row as persisted.
type WorkloadCategory struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// WorkloadCategoryRule is a rule row as persisted. CreatedAt backs the
// stable tie-break between rules sharing a priority.
type WorkloadCategoryRule struct {
	ID          string
	CategoryID  string
	Priority    int
	SourceField string
	Operator    string
	Value       string
	IsActive    bool
	CreatedAt   time.Time
}
