// Package database provides store schema creation
package database

import (
	"database/sql"
	"fmt"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS regions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS streets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		region_id TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS branches (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		open_time TEXT NOT NULL DEFAULT '',
		close_time TEXT NOT NULL DEFAULT '',
		street_id TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		subcategory TEXT,
		price REAL NOT NULL DEFAULT 0,
		color TEXT,
		size TEXT,
		special_offer INTEGER NOT NULL DEFAULT 0,
		discount_percentage REAL,
		is_archived INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS branch_products (
		branch_id TEXT NOT NULL,
		product_id TEXT NOT NULL,
		product_name TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (branch_id, product_id)
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_streets_region_id ON streets(region_id)`,
	`CREATE INDEX IF NOT EXISTS idx_branches_street_id ON branches(street_id)`,
	`CREATE INDEX IF NOT EXISTS idx_branch_products_product_id ON branch_products(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
}

// TableCreator handles the creation of the store's database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the store tables and
// indexes. Idempotent: safe on every startup.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}
