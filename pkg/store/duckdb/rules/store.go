package rules

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/assetorbit/engine/pkg/models/store"
	"github.com/assetorbit/engine/pkg/store/duckdb"
)

// Store persists workload categories and their classification rules.
// Category deletion is logical: DeactivateCategory flips the flag and
// deactivates the category's rules, preserving rule references.
type Store interface {
	ListActiveRules(ctx context.Context) ([]store.WorkloadCategoryRule, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]store.WorkloadCategory, error)
	SaveCategory(ctx context.Context, category store.WorkloadCategory) (store.WorkloadCategory, error)
	SaveRule(ctx context.Context, rule store.WorkloadCategoryRule) (store.WorkloadCategoryRule, error)
	DeactivateCategory(ctx context.Context, categoryID string) error
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

// activeRulesQuery orders by priority then creation time so the engine's
// tie-break on equal priorities follows creation order.
const activeRulesQuery = `
	SELECT r.id, r.category_id, r.priority, r.source_field, r.operator, r.value, r.is_active, r.created_at
	FROM workload_category_rules r
	JOIN workload_categories c ON c.id = r.category_id
	WHERE r.is_active AND c.is_active
	ORDER BY r.priority, r.created_at, r.id`

func (s *defaultStore) ListActiveRules(ctx context.Context) ([]store.WorkloadCategoryRule, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.querier(ctx).QueryContext(ctx, activeRulesQuery)
	if err != nil {
		return nil, fmt.Errorf("active rules query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close rule query rows")
		}
	}(rows)

	var records []store.WorkloadCategoryRule
	for rows.Next() {
		var rec store.WorkloadCategoryRule
		if err := rows.Scan(
			&rec.ID, &rec.CategoryID, &rec.Priority,
			&rec.SourceField, &rec.Operator, &rec.Value,
			&rec.IsActive, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *defaultStore) ListCategories(ctx context.Context, includeInactive bool) ([]store.WorkloadCategory, error) {
	logger := zerolog.Ctx(ctx)

	query := `
		SELECT id, name, description, is_active, created_at
		FROM workload_categories`
	if !includeInactive {
		query += `
		WHERE is_active`
	}
	query += `
		ORDER BY name`

	rows, err := s.querier(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("categories query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close category query rows")
		}
	}(rows)

	var records []store.WorkloadCategory
	for rows.Next() {
		var rec store.WorkloadCategory
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.IsActive, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *defaultStore) SaveCategory(ctx context.Context, category store.WorkloadCategory) (store.WorkloadCategory, error) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}

	_, err := s.querier(ctx).ExecContext(ctx, `
		INSERT INTO workload_categories (id, name, description, is_active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			is_active = excluded.is_active`,
		category.ID, category.Name, category.Description, category.IsActive,
	)
	if err != nil {
		return store.WorkloadCategory{}, fmt.Errorf("failed to save category %q: %w", category.Name, err)
	}
	return category, nil
}

func (s *defaultStore) SaveRule(ctx context.Context, rule store.WorkloadCategoryRule) (store.WorkloadCategoryRule, error) {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	_, err := s.querier(ctx).ExecContext(ctx, `
		INSERT INTO workload_category_rules (id, category_id, priority, source_field, operator, value, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			category_id = excluded.category_id,
			priority = excluded.priority,
			source_field = excluded.source_field,
			operator = excluded.operator,
			value = excluded.value,
			is_active = excluded.is_active`,
		rule.ID, rule.CategoryID, rule.Priority,
		rule.SourceField, rule.Operator, rule.Value, rule.IsActive,
	)
	if err != nil {
		return store.WorkloadCategoryRule{}, fmt.Errorf("failed to save rule for category %q: %w", rule.CategoryID, err)
	}
	return rule, nil
}

func (s *defaultStore) DeactivateCategory(ctx context.Context, categoryID string) error {
	q := s.querier(ctx)
	if _, err := q.ExecContext(ctx, `
		UPDATE workload_categories SET is_active = FALSE WHERE id = ?`, categoryID); err != nil {
		return fmt.Errorf("failed to deactivate category %q: %w", categoryID, err)
	}
	if _, err := q.ExecContext(ctx, `
		UPDATE workload_category_rules SET is_active = FALSE WHERE category_id = ?`, categoryID); err != nil {
		return fmt.Errorf("failed to deactivate rules of category %q: %w", categoryID, err)
	}
	return nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// querier prefers an ambient transaction so DeactivateCategory and bulk rule
// saves can run atomically under duckdb.WithTransaction.
func (s *defaultStore) querier(ctx context.Context) querier {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}
