package ingest

import (
	"strconv"
	"strings"

	"github.com/dnhuang/delivery-analyzer/internal/model"
)

// Reconcile 把表尾汇总块里声明的数量与解析出的全表合计做核对
//
// 表尾块每行形如 "<菜名> ... <数量>"，菜名按目录基础名双向包含匹配，
// 数量取该行第一个能读成非负整数的单元格。对不上的差异只是提示，
// 不影响已装配的订单表。
func Reconcile(table *model.OrderTable, footerRows [][]string) []model.Discrepancy {
	if table == nil || len(footerRows) == 0 {
		return nil
	}

	parsed := make([]int, len(table.Items))
	for _, order := range table.Orders {
		for i, q := range order.Quantities {
			parsed[i] += q
		}
	}

	var discrepancies []model.Discrepancy
	for _, row := range footerRows {
		col, declared, ok := matchFooterRow(row, table.Items)
		if !ok {
			continue
		}
		if parsed[col] != declared {
			discrepancies = append(discrepancies, model.Discrepancy{
				Item:     table.Items[col].RawName,
				Parsed:   parsed[col],
				Declared: declared,
			})
		}
	}
	return discrepancies
}

// matchFooterRow 在一行表尾单元格里找出目录项和声明数量
func matchFooterRow(row []string, items []model.CatalogItem) (col, declared int, ok bool) {
	col = -1
	for _, cellText := range row {
		cellText = strings.TrimSpace(cellText)
		if cellText == "" {
			continue
		}

		if col < 0 {
			norm := strings.ReplaceAll(cellText, " ", "")
			for i, item := range items {
				baseNorm := strings.ReplaceAll(item.BaseName, " ", "")
				if strings.Contains(norm, baseNorm) || strings.Contains(baseNorm, norm) {
					col = i
					break
				}
			}
			if col >= 0 {
				continue
			}
		}

		if col >= 0 {
			if n, err := strconv.Atoi(cellText); err == nil && n >= 0 {
				return col, n, true
			}
		}
	}
	return 0, 0, false
}
