package store

import (
	"fmt"

	"github.com/dnhuang/delivery-analyzer/internal/model"
)

// ReplaceCatalog 整表替换目录缓存
//
// 目录以 CSV 为准，启动时同步进库；库里这份用于目录文件缺失时兜底。
func (s *Store) ReplaceCatalog(items []model.CatalogItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM catalog_items`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO catalog_items (position, raw_name, base_name)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.Exec(i, item.RawName, item.BaseName); err != nil {
			return fmt.Errorf("failed to insert catalog item %q: %w", item.RawName, err)
		}
	}

	return tx.Commit()
}

// GetCatalogItems 按目录顺序读出缓存的目录
func (s *Store) GetCatalogItems() ([]model.CatalogItem, error) {
	rows, err := s.db.Query(`
		SELECT raw_name, base_name FROM catalog_items ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var items []model.CatalogItem
	for rows.Next() {
		var item model.CatalogItem
		if err := rows.Scan(&item.RawName, &item.BaseName); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
