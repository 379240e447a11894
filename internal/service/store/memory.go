package store

import (
	"sync"

	"github.com/dnhuang/delivery-analyzer/internal/model"
)

// TableStore 当前订单表的内存存储
//
// 一次上传对应一张表，Replace 整表替换，行索引在表的生命周期内稳定。
type TableStore struct {
	table *model.OrderTable
	mu    sync.RWMutex
}

// NewTableStore 创建存储
func NewTableStore() *TableStore {
	return &TableStore{}
}

// Replace 整表替换当前数据
func (s *TableStore) Replace(table *model.OrderTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

// Current 获取当前订单表，未上传时返回 nil
func (s *TableStore) Current() *model.OrderTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Loaded 是否已有数据
func (s *TableStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil
}

// RowCount 当前订单行数
func (s *TableStore) RowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.table == nil {
		return 0
	}
	return len(s.table.Orders)
}

// Clear 清空当前数据
func (s *TableStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = nil
}
