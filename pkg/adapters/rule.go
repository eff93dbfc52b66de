package adapters

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/assetorbit/engine/pkg/models/api"
	"github.com/assetorbit/engine/pkg/models/domain"
	"github.com/assetorbit/engine/pkg/models/store"
)

func MapStoreRuleToDomain(rec store.WorkloadCategoryRule) (domain.WorkloadCategoryRule, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.WorkloadCategoryRule{}, fmt.Errorf("rule %q has invalid id: %w", rec.ID, err)
	}
	categoryID, err := uuid.Parse(rec.CategoryID)
	if err != nil {
		return domain.WorkloadCategoryRule{}, fmt.Errorf("rule %q has invalid category id: %w", rec.ID, err)
	}

	return domain.WorkloadCategoryRule{
		ID:          id,
		CategoryID:  categoryID,
		Priority:    rec.Priority,
		SourceField: rec.SourceField,
		Operator:    domain.Operator(rec.Operator),
		Value:       rec.Value,
		IsActive:    rec.IsActive,
	}, nil
}

func MapDomainRuleToStore(rule domain.WorkloadCategoryRule) store.WorkloadCategoryRule {
	return store.WorkloadCategoryRule{
		ID:          uuidOrEmpty(rule.ID),
		CategoryID:  rule.CategoryID.String(),
		Priority:    rule.Priority,
		SourceField: rule.SourceField,
		Operator:    string(rule.Operator),
		Value:       rule.Value,
		IsActive:    rule.IsActive,
	}
}

func MapStoreCategoryToDomain(rec store.WorkloadCategory) (domain.WorkloadCategory, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.WorkloadCategory{}, fmt.Errorf("category %q has invalid id: %w", rec.ID, err)
	}

	return domain.WorkloadCategory{
		ID:          id,
		Name:        rec.Name,
		Description: rec.Description,
		IsActive:    rec.IsActive,
	}, nil
}

func MapDomainCategoryToStore(category domain.WorkloadCategory) store.WorkloadCategory {
	return store.WorkloadCategory{
		ID:          uuidOrEmpty(category.ID),
		Name:        category.Name,
		Description: category.Description,
		IsActive:    category.IsActive,
	}
}

// uuidOrEmpty renders the nil UUID as "", letting the store mint an id.
func uuidOrEmpty(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func MapApiRuleToDomain(rule api.Rule) (domain.WorkloadCategoryRule, error) {
	categoryID, err := uuid.Parse(rule.CategoryID)
	if err != nil {
		return domain.WorkloadCategoryRule{}, fmt.Errorf("rule has invalid category id %q: %w", rule.CategoryID, err)
	}

	id := uuid.Nil
	if rule.ID != "" {
		id, err = uuid.Parse(rule.ID)
		if err != nil {
			return domain.WorkloadCategoryRule{}, fmt.Errorf("rule has invalid id %q: %w", rule.ID, err)
		}
	}

	op := domain.Operator(rule.Operator)
	if !op.Valid() {
		return domain.WorkloadCategoryRule{}, fmt.Errorf("rule has unknown operator %q", rule.Operator)
	}

	return domain.WorkloadCategoryRule{
		ID:          id,
		CategoryID:  categoryID,
		Priority:    rule.Priority,
		SourceField: rule.SourceField,
		Operator:    op,
		Value:       rule.Value,
		IsActive:    rule.IsActive,
	}, nil
}

func MapClassificationDomainToApi(c domain.Classification) api.Classification {
	out := api.Classification{Matched: c.Matched}
	if c.Matched {
		out.CategoryID = c.CategoryID.String()
		if c.RuleID != uuid.Nil {
			out.RuleID = c.RuleID.String()
		}
	}
	return out
}

func MapRuleTestDomainToApi(t domain.RuleTest) api.RuleTestResponse {
	return api.RuleTestResponse{
		Result:      t.Result,
		Error:       t.Error,
		Explanation: t.Explanation,
	}
}
