package store

import (
	"database/sql"
	"fmt"

	"github.com/dnhuang/delivery-analyzer/internal/model"
)

// CreateImportLog 记录一次上传
func (s *Store) CreateImportLog(fileName string, rowCount, itemCount int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (file_name, row_count, item_count)
		VALUES (?, ?, ?)
	`, fileName, rowCount, itemCount)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// LastImport 最近一次上传记录，没有时返回 nil
func (s *Store) LastImport() (*model.ImportLog, error) {
	row := s.db.QueryRow(`
		SELECT id, file_name, row_count, item_count, imported_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT 1
	`)

	log, err := scanImportLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return log, err
}

// ListImportLogs 按时间倒序列出上传记录
func (s *Store) ListImportLogs(limit int) ([]*model.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, file_name, row_count, item_count, imported_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	var logs []*model.ImportLog
	for rows.Next() {
		log, err := scanImportLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanImportLog(r rowScanner) (*model.ImportLog, error) {
	var log model.ImportLog
	// go-sqlite3 会把 TIMESTAMP 列直接扫成 time.Time
	if err := r.Scan(&log.ID, &log.FileName, &log.RowCount, &log.ItemCount, &log.ImportedAt); err != nil {
		return nil, err
	}
	return &log, nil
}
