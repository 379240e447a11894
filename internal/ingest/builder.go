// Package ingest 把表格原始行装配成订单表
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dnhuang/delivery-analyzer/internal/catalog"
	"github.com/dnhuang/delivery-analyzer/internal/model"
	"github.com/dnhuang/delivery-analyzer/internal/parser"
)

// RequiredColumns 原始行必须具备的列数：
// 序号、姓名、订单内容、手机、地址、城市、邮编
const RequiredColumns = 7

// 原始行内各字段的位置（上游 excel 边界已按此顺序排列）
const (
	colSequence = 0
	colCustomer = 1
	colItems    = 2
	colPhone    = 3
	colAddress  = 4
	colCity     = 5
	colZipCode  = 6
)

// StructuralError 原始表结构不符合预期（列数不足）。
// 这是装配阶段唯一的硬失败，说明上游表格的格式变了。
type StructuralError struct {
	Expected int
	Actual   int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("原始表至少需要 %d 列，实际只有 %d 列", e.Expected, e.Actual)
}

// Result 装配结果
type Result struct {
	Table *model.OrderTable
	// FooterRows 被序号过滤剔除的行，按原始顺序保留，供表尾核对使用
	FooterRows [][]string
}

// Build 把原始行装配成订单表
//
// 序号列解析不出正整数、或姓名为空的行整行剔除（表尾的汇总块就是这样被
// 丢掉的，这是明确的过滤规则而非副作用）；剔除的行保留在 FooterRows 里。
// 存活的行先把所有目录列置 0，再用订单文本解析结果覆盖。
func Build(rows [][]string, c *catalog.Catalog, sourceFile string) (*Result, error) {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width < RequiredColumns {
		return nil, &StructuralError{Expected: RequiredColumns, Actual: width}
	}

	table := &model.OrderTable{
		Items:      c.Items(),
		SourceFile: sourceFile,
		LoadedAt:   time.Now(),
	}
	result := &Result{Table: table}

	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}

		seq, ok := parseSequenceNo(cell(row, colSequence))
		customer := cell(row, colCustomer)
		if !ok || customer == "" {
			result.FooterRows = append(result.FooterRows, row)
			continue
		}

		record := &model.OrderRecord{
			SequenceNo:   seq,
			Customer:     customer,
			Phone:        normalizeNumericText(cell(row, colPhone)),
			Address:      cell(row, colAddress),
			City:         cell(row, colCity),
			ZipCode:      normalizeNumericText(cell(row, colZipCode)),
			RawItemsText: cell(row, colItems),
		}
		record.Quantities = parser.ParseItems(record.RawItemsText, c)

		table.Orders = append(table.Orders, record)
	}

	return result, nil
}

// parseSequenceNo 解析序号列，要求能读成正整数
//
// Excel 数值列经常带 ".0" 尾巴，按浮点读再判整。
func parseSequenceNo(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// normalizeNumericText 把手机号/邮编整理成纯数字串
//
// 去掉 "13912345678.0"、"1.3912345678E10" 这类数值格式化残留。
func normalizeNumericText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && f >= 0 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return s
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
