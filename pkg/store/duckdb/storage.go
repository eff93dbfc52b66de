package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const CategoriesSchema = `
	CREATE TABLE IF NOT EXISTS workload_categories (
		id VARCHAR NOT NULL PRIMARY KEY,
		name VARCHAR NOT NULL,
		description VARCHAR,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const RulesSchema = `
	CREATE TABLE IF NOT EXISTS workload_category_rules (
		id VARCHAR NOT NULL PRIMARY KEY,
		category_id VARCHAR NOT NULL,
		priority INTEGER NOT NULL,
		source_field VARCHAR NOT NULL,
		operator VARCHAR NOT NULL,
		value VARCHAR NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	CategoriesSchema,
	RulesSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
