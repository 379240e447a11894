package excel_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	xls "github.com/dnhuang/delivery-analyzer/internal/service/excel"
)

// buildOrderWorkbook 构造一份带 3 行说明头的订单工作簿
func buildOrderWorkbook(t *testing.T, dataRows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := [][]interface{}{
		{"上海好吃米道"},
		{"配送订单表"},
		{"序号", "姓名", "内容", "备注", "手机号码", "收货地址", "所在城市", "邮政编码"},
	}
	rowNo := 1
	for _, row := range append(header, dataRows...) {
		cell, err := excelize.CoordinatesToCellName(1, rowNo)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
		rowNo++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	return &buf
}

func TestExtractMapsColumns(t *testing.T) {
	buf := buildOrderWorkbook(t, [][]interface{}{
		{"1", "张三", "黑米饭x2，", "忽略列", "13912345678", "南京路1号", "上海", "200001"},
		{"2", "李四", "酱鸭x1，", "忽略列", "13800000000", "淮海路2号", "上海", "200002"},
	})

	r := xls.NewReader()
	if err := r.Load(buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer r.Close()

	rows, err := r.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	want := []string{"1", "张三", "黑米饭x2，", "13912345678", "南京路1号", "上海", "200001"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("rows[0][%d] = %q, want %q", i, rows[0][i], w)
		}
	}
}

func TestExtractSkipsHeaderRows(t *testing.T) {
	buf := buildOrderWorkbook(t, nil)

	r := xls.NewReader()
	if err := r.Load(buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer r.Close()

	rows, err := r.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("说明头不应出现在抽取结果里, got %d 行", len(rows))
	}
}

func TestExtractNarrowSheetYieldsNarrowRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"说明"},
		{"说明"},
		{"序号", "姓名", "内容"},
		{"1", "张三", "黑米饭x2，"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r := xls.NewReader()
	if err := r.Load(&buf); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer r.Close()

	got, err := r.Extract()
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if len(got[0]) >= 7 {
		t.Errorf("源表缺列时映射行不应补满 7 列, got %d 列", len(got[0]))
	}
}

func TestExtractWithoutLoad(t *testing.T) {
	if _, err := xls.NewReader().Extract(); err == nil {
		t.Fatal("未加载工作簿应报错")
	}
}
