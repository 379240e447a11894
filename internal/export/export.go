// Package export 把汇总结果渲染成可下载的 CSV、文本报告和 Excel
//
// 汇总数字一律来自 analyzer 的结果，这里只负责排版，绝不重新计算。
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dnhuang/delivery-analyzer/internal/model"
)

// Format 导出格式
type Format string

const (
	FormatCSV    Format = "csv"
	FormatReport Format = "report"
	FormatXLSX   Format = "xlsx"
)

// Valid 判断导出格式是否受支持
func (f Format) Valid() bool {
	switch f {
	case FormatCSV, FormatReport, FormatXLSX:
		return true
	}
	return false
}

// FileName 生成带时间戳的下载文件名
func (f Format) FileName(at time.Time) string {
	stamp := at.Format("20060102_150405")
	switch f {
	case FormatReport:
		return fmt.Sprintf("delivery_report_%s.txt", stamp)
	case FormatXLSX:
		return fmt.Sprintf("delivery_analysis_%s.xlsx", stamp)
	default:
		return fmt.Sprintf("delivery_analysis_%s.csv", stamp)
	}
}

// ContentType 下载响应的 Content-Type
func (f Format) ContentType() string {
	switch f {
	case FormatReport:
		return "text/plain; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// WriteCSV 导出菜品数量明细 CSV
func WriteCSV(result *model.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Food Item", "Quantity"}); err != nil {
		return nil, err
	}
	for _, item := range result.Items {
		if err := w.Write([]string{item.Name, strconv.Itoa(item.Quantity)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteReport 导出文本分析报告
//
// selected 是报告里列出的订单行（调用方已按选择过滤）。
func WriteReport(result *model.AnalysisResult, selected []*model.OrderRecord, at time.Time) []byte {
	var buf bytes.Buffer

	buf.WriteString("DELIVERY ORDER ANALYSIS REPORT\n")
	buf.WriteString("================================\n\n")
	fmt.Fprintf(&buf, "Analysis Date: %s\n", at.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "Orders Analyzed: %d\n", result.OrdersAnalyzed)
	fmt.Fprintf(&buf, "Unique Items Ordered: %d\n", len(result.Items))
	fmt.Fprintf(&buf, "Total Items: %d\n\n", result.GrandTotal)

	buf.WriteString("SELECTED ORDERS:\n")
	for _, o := range selected {
		fmt.Fprintf(&buf, "- %d - %s (%s)\n", o.SequenceNo, o.Customer, o.City)
	}

	buf.WriteString("\nITEM QUANTITIES:\n")
	for _, item := range result.Items {
		fmt.Fprintf(&buf, "- %s: %d\n", item.Name, item.Quantity)
	}

	return buf.Bytes()
}

// WriteWorkbook 导出分析结果工作簿：一张汇总表加一张选中订单明细表
func WriteWorkbook(result *model.AnalysisResult, selected []*model.OrderRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	summary := f.GetSheetName(0)
	if err := f.SetSheetName(summary, "汇总"); err != nil {
		return nil, err
	}
	summary = "汇总"

	header := []interface{}{"菜品", "数量"}
	if err := f.SetSheetRow(summary, "A1", &header); err != nil {
		return nil, err
	}
	for i, item := range result.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{item.Name, item.Quantity}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, err
		}
	}
	totalCell, err := excelize.CoordinatesToCellName(1, len(result.Items)+2)
	if err != nil {
		return nil, err
	}
	totalRow := []interface{}{"合计", result.GrandTotal}
	if err := f.SetSheetRow(summary, totalCell, &totalRow); err != nil {
		return nil, err
	}

	detail := "选中订单"
	if _, err := f.NewSheet(detail); err != nil {
		return nil, err
	}
	detailHeader := []interface{}{"序号", "姓名", "所在城市", "手机号码", "收货地址", "邮政编码", "订单内容"}
	if err := f.SetSheetRow(detail, "A1", &detailHeader); err != nil {
		return nil, err
	}
	for i, o := range selected {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{o.SequenceNo, o.Customer, o.City, o.Phone, o.Address, o.ZipCode, o.RawItemsText}
		if err := f.SetSheetRow(detail, cell, &row); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}
