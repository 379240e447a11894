// Package excel 负责把上传的订单工作簿抽取成规范的原始行
//
// 列到字段的映射在这一层完成，装配层（ingest）只看见固定顺序的七列。
package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// HeaderRows 工作簿顶部的说明行数，抽取时跳过
const HeaderRows = 3

// sourceColumns 源表各字段所在的列号（0 起），顺序与 ingest 的字段顺序一致：
// 序号、姓名、订单内容、手机、地址、城市、邮编。第 3 列是无关列，不取。
var sourceColumns = [...]int{0, 1, 2, 4, 5, 6, 7}

// Reader 订单工作簿读取器
type Reader struct {
	file *excelize.File
}

// NewReader 创建读取器
func NewReader() *Reader {
	return &Reader{}
}

// Load 打开工作簿
func (r *Reader) Load(src io.Reader) error {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return fmt.Errorf("打开工作簿失败: %w", err)
	}
	r.file = f
	return nil
}

// Extract 抽取首个工作表的订单原始行
//
// 跳过顶部说明行，按 sourceColumns 重排每行的单元格。这里不做任何
// 行校验，空行、表尾汇总行原样交给装配层过滤。
func (r *Reader) Extract() ([][]string, error) {
	if r.file == nil {
		return nil, errors.New("尚未加载工作簿")
	}

	sheets := r.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("工作簿没有工作表")
	}

	rows, err := r.file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %q 失败: %w", sheets[0], err)
	}

	if len(rows) <= HeaderRows {
		return [][]string{}, nil
	}

	// 源表实际宽度决定可用列数；源表缺列时映射行同样缺列，
	// 由装配层据此报结构错误，而不是在这里悄悄补空
	width := 0
	for _, row := range rows[HeaderRows:] {
		if len(row) > width {
			width = len(row)
		}
	}
	usable := 0
	for _, col := range sourceColumns {
		if col < width {
			usable++
		}
	}

	out := make([][]string, 0, len(rows)-HeaderRows)
	for _, row := range rows[HeaderRows:] {
		mapped := make([]string, usable)
		for i, col := range sourceColumns[:usable] {
			if col < len(row) {
				mapped[i] = row[col]
			}
		}
		out = append(out, mapped)
	}

	return out, nil
}

// Close 关闭工作簿
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
