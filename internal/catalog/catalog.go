package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/dnhuang/delivery-analyzer/internal/model"
)

// reUnitSuffix 匹配目录名末尾的包装规格，例如 "15个/份"、"50/份"、"3个／份"。
// 订单文本里不会重复这个后缀，匹配前必须去掉。
var reUnitSuffix = regexp.MustCompile(`\d+个?[/／]?份?$`)

// Catalog 有序且只读的菜品目录
//
// 目录顺序就是匹配时的优先顺序，也是结果矩阵的列顺序，加载后不再变化。
type Catalog struct {
	items []model.CatalogItem
}

// BaseName 去掉原始目录名末尾的包装规格，返回用于匹配的基础名
func BaseName(rawName string) string {
	return strings.TrimSpace(reUnitSuffix.ReplaceAllString(rawName, ""))
}

// New 从原始目录名构建目录，按声明顺序保留
func New(rawNames []string) (*Catalog, error) {
	items := make([]model.CatalogItem, 0, len(rawNames))
	for i, raw := range rawNames {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		base := BaseName(raw)
		if base == "" {
			return nil, fmt.Errorf("目录第 %d 项 %q 去掉规格后缀后为空", i+1, raw)
		}
		items = append(items, model.CatalogItem{RawName: raw, BaseName: base})
	}
	if len(items) == 0 {
		return nil, errors.New("目录为空")
	}
	return &Catalog{items: items}, nil
}

// LoadCSV 从 CSV 读取目录，首行为表头（food_items 列）
func LoadCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("读取目录 CSV 失败: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("目录 CSV 为空")
	}

	names := make([]string, 0, len(records))
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		// 首行是表头
		if i == 0 && (name == "food_items" || name == "food_item") {
			continue
		}
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	return New(names)
}

// LoadCSVFile 从文件路径读取目录
func LoadCSVFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开目录文件失败: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// Items 返回目录项（调用方只读使用）
func (c *Catalog) Items() []model.CatalogItem {
	return c.items
}

// Len 目录项数量
func (c *Catalog) Len() int {
	return len(c.items)
}

// RawNames 返回原始目录名列表，保持目录顺序
func (c *Catalog) RawNames() []string {
	names := make([]string, len(c.items))
	for i, it := range c.items {
		names[i] = it.RawName
	}
	return names
}
