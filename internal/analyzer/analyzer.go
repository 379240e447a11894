// Package analyzer 对已载入的订单表做选中集合的汇总
package analyzer

import (
	"sort"
	"unicode"

	"github.com/dnhuang/delivery-analyzer/internal/model"
)

// Analyzer 订单汇总器
//
// 只读使用订单表，Analyze 可重复调用且结果稳定。
type Analyzer struct {
	table       *model.OrderTable
	foodColumns []int // 目录列里名称含中文的列索引，保持列顺序
}

// New 创建汇总器；table 可为 nil（尚未上传数据）
func New(table *model.OrderTable) *Analyzer {
	a := &Analyzer{table: table}
	if table != nil {
		for i, item := range table.Items {
			if containsCJK(item.RawName) {
				a.foodColumns = append(a.foodColumns, i)
			}
		}
	}
	return a
}

// FoodColumnCount 菜品列数量
func (a *Analyzer) FoodColumnCount() int {
	return len(a.foodColumns)
}

// Analyze 汇总选中的订单行
//
// 空选择或未载入数据返回空结果；选择顺序、重复和越界索引不影响结果；
// 只输出合计大于 0 的菜品，按数量降序，数量相同保持目录列顺序。
func (a *Analyzer) Analyze(selected []int) *model.AnalysisResult {
	result := &model.AnalysisResult{Items: []model.ItemTotal{}}
	if a.table == nil || len(selected) == 0 {
		return result
	}

	seen := make(map[int]bool, len(selected))
	rows := make([]int, 0, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= len(a.table.Orders) || seen[idx] {
			continue
		}
		seen[idx] = true
		rows = append(rows, idx)
	}
	result.OrdersAnalyzed = len(rows)

	for _, col := range a.foodColumns {
		total := 0
		for _, row := range rows {
			total += a.table.Orders[row].Quantities[col]
		}
		if total > 0 {
			result.Items = append(result.Items, model.ItemTotal{
				Name:     a.table.Items[col].RawName,
				Quantity: total,
			})
			result.GrandTotal += total
		}
	}

	// 稳定排序保证数量相同的菜品维持目录列顺序
	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].Quantity > result.Items[j].Quantity
	})

	return result
}

// containsCJK 判断是否含中文字符（菜品列的识别依据）
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
