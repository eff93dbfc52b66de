// Package catalog exposes stored workload categories and rules at the domain
// level, hiding storage records from the engine's callers.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/assetorbit/engine/pkg/adapters"
	"github.com/assetorbit/engine/pkg/models/domain"
	rulestore "github.com/assetorbit/engine/pkg/store/duckdb/rules"
)

type Service interface {
	// ActiveRules returns the active rule set in evaluation order.
	ActiveRules(ctx context.Context) ([]domain.WorkloadCategoryRule, error)
	Categories(ctx context.Context, includeInactive bool) ([]domain.WorkloadCategory, error)
	SaveCategory(ctx context.Context, category domain.WorkloadCategory) (domain.WorkloadCategory, error)
	SaveRule(ctx context.Context, rule domain.WorkloadCategoryRule) (domain.WorkloadCategoryRule, error)
	DeactivateCategory(ctx context.Context, category domain.WorkloadCategory) error
}

type service struct {
	store rulestore.Store
}

func NewService(store rulestore.Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("rule store is nil")
	}
	return &service{store: store}, nil
}

func (s *service) ActiveRules(ctx context.Context) ([]domain.WorkloadCategoryRule, error) {
	logger := zerolog.Ctx(ctx)

	records, err := s.store.ListActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]domain.WorkloadCategoryRule, 0, len(records))
	for _, rec := range records {
		rule, err := adapters.MapStoreRuleToDomain(rec)
		if err != nil {
			// A corrupt row must not block classification of everything else.
			logger.Warn().Err(err).Str("rule_id", rec.ID).Msg("skipping unreadable rule")
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s *service) Categories(ctx context.Context, includeInactive bool) ([]domain.WorkloadCategory, error) {
	logger := zerolog.Ctx(ctx)

	records, err := s.store.ListCategories(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	categories := make([]domain.WorkloadCategory, 0, len(records))
	for _, rec := range records {
		category, err := adapters.MapStoreCategoryToDomain(rec)
		if err != nil {
			logger.Warn().Err(err).Str("category_id", rec.ID).Msg("skipping unreadable category")
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *service) SaveCategory(ctx context.Context, category domain.WorkloadCategory) (domain.WorkloadCategory, error) {
	saved, err := s.store.SaveCategory(ctx, adapters.MapDomainCategoryToStore(category))
	if err != nil {
		return domain.WorkloadCategory{}, err
	}
	return adapters.MapStoreCategoryToDomain(saved)
}

func (s *service) SaveRule(ctx context.Context, rule domain.WorkloadCategoryRule) (domain.WorkloadCategoryRule, error) {
	if !rule.Operator.Valid() {
		return domain.WorkloadCategoryRule{}, fmt.Errorf("unknown operator %q", rule.Operator)
	}
	if rule.Priority <= 0 {
		return domain.WorkloadCategoryRule{}, fmt.Errorf("priority must be positive, got %d", rule.Priority)
	}

	saved, err := s.store.SaveRule(ctx, adapters.MapDomainRuleToStore(rule))
	if err != nil {
		return domain.WorkloadCategoryRule{}, err
	}
	return adapters.MapStoreRuleToDomain(saved)
}

func (s *service) DeactivateCategory(ctx context.Context, category domain.WorkloadCategory) error {
	return s.store.DeactivateCategory(ctx, category.ID.String())
}
