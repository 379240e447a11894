package ingest_test

import (
	"errors"
	"testing"

	"github.com/dnhuang/delivery-analyzer/internal/catalog"
	"github.com/dnhuang/delivery-analyzer/internal/ingest"
)

func mustCatalog(t *testing.T, names ...string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(names)
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}
	return c
}

func TestBuildTooFewColumns(t *testing.T) {
	c := mustCatalog(t, "黑米饭")
	rows := [][]string{
		{"1", "张三", "黑米饭x2，", "139", "地址"},
	}

	_, err := ingest.Build(rows, c, "orders.xlsx")
	if err == nil {
		t.Fatal("列数不足应报错")
	}

	var structErr *ingest.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("错误类型应为 StructuralError, got %T", err)
	}
	if structErr.Expected != ingest.RequiredColumns || structErr.Actual != 5 {
		t.Errorf("Expected=%d Actual=%d", structErr.Expected, structErr.Actual)
	}
}

func TestBuildDropsNonNumericSequenceRows(t *testing.T) {
	c := mustCatalog(t, "黄鱼烧卷15个/份", "黑米饭")
	rows := [][]string{
		{"1", "张三", "黄鱼烧卷x2，", "13912345678", "南京路1号", "上海", "200001"},
		{"合计", "", "", "", "", "", ""},
		{"2", "李四", "黑米饭x3，", "13800000000", "淮海路2号", "上海", "200002"},
	}

	result, err := ingest.Build(rows, c, "orders.xlsx")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	orders := result.Table.Orders
	if len(orders) != 2 {
		t.Fatalf("len(orders) = %d, want 2", len(orders))
	}
	if orders[0].SequenceNo != 1 || orders[1].SequenceNo != 2 {
		t.Errorf("序号行应按原顺序保留: %d, %d", orders[0].SequenceNo, orders[1].SequenceNo)
	}
	if len(result.FooterRows) != 1 {
		t.Errorf("被剔除的表尾行应被捕获, got %d", len(result.FooterRows))
	}
}

func TestBuildDropsMissingCustomer(t *testing.T) {
	c := mustCatalog(t, "黑米饭")
	rows := [][]string{
		{"1", "", "黑米饭x2，", "139", "地址", "上海", "200001"},
		{"2", "李四", "黑米饭x1，", "138", "地址", "上海", "200002"},
	}

	result, err := ingest.Build(rows, c, "orders.xlsx")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(result.Table.Orders) != 1 || result.Table.Orders[0].Customer != "李四" {
		t.Errorf("缺姓名的行应被剔除, got %+v", result.Table.Orders)
	}
}

func TestBuildParsesQuantities(t *testing.T) {
	c := mustCatalog(t, "黄鱼烧卷15个/份", "黑米饭", "酱鸭10份")
	rows := [][]string{
		{"1", "张三", "黄鱼烧卷x 2， 黑米饭  x3，", "13912345678", "南京路1号", "上海", "200001"},
		{"2", "李四", "", "13800000000", "淮海路2号", "上海", "200002"},
	}

	result, err := ingest.Build(rows, c, "orders.xlsx")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	got := result.Table.Orders[0].Quantities
	want := []int{2, 3, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Quantities[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	// 空订单文本全部为 0
	for i, q := range result.Table.Orders[1].Quantities {
		if q != 0 {
			t.Errorf("空文本行 Quantities[%d] = %d, want 0", i, q)
		}
	}
}

func TestBuildNormalizesPhoneAndZip(t *testing.T) {
	c := mustCatalog(t, "黑米饭")
	rows := [][]string{
		{"1.0", "张三", "", "13912345678.0", "地址", "上海", "200001.0"},
		{"2", "李四", "", "1.3800000000E10", "地址", "上海", "200002"},
	}

	result, err := ingest.Build(rows, c, "orders.xlsx")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	o := result.Table.Orders[0]
	if o.SequenceNo != 1 {
		t.Errorf("SequenceNo = %d, want 1 (带 .0 的序号应可解析)", o.SequenceNo)
	}
	if o.Phone != "13912345678" {
		t.Errorf("Phone = %q", o.Phone)
	}
	if o.ZipCode != "200001" {
		t.Errorf("ZipCode = %q", o.ZipCode)
	}
	if got := result.Table.Orders[1].Phone; got != "13800000000" {
		t.Errorf("科学计数法手机号 = %q, want 13800000000", got)
	}
}

func TestBuildSkipsBlankRows(t *testing.T) {
	c := mustCatalog(t, "黑米饭")
	rows := [][]string{
		{"", "", "", "", "", "", ""},
		{"1", "张三", "黑米饭x1，", "139", "地址", "上海", "200001"},
	}

	result, err := ingest.Build(rows, c, "orders.xlsx")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(result.Table.Orders) != 1 {
		t.Errorf("空白行不应进入订单表也不算表尾, orders=%d footer=%d",
			len(result.Table.Orders), len(result.FooterRows))
	}
	if len(result.FooterRows) != 0 {
		t.Errorf("空白行不应计入表尾, got %d", len(result.FooterRows))
	}
}
