package analyzer_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/dnhuang/delivery-analyzer/internal/analyzer"
	"github.com/dnhuang/delivery-analyzer/internal/model"
)

func buildTable(items []string, rows [][]int) *model.OrderTable {
	table := &model.OrderTable{LoadedAt: time.Now()}
	for _, name := range items {
		table.Items = append(table.Items, model.CatalogItem{RawName: name, BaseName: name})
	}
	for i, quantities := range rows {
		table.Orders = append(table.Orders, &model.OrderRecord{
			SequenceNo: i + 1,
			Customer:   "客户",
			Quantities: quantities,
		})
	}
	return table
}

func TestAnalyzeEmptySelection(t *testing.T) {
	table := buildTable([]string{"黑米饭"}, [][]int{{3}})

	result := analyzer.New(table).Analyze(nil)
	if len(result.Items) != 0 || result.GrandTotal != 0 {
		t.Errorf("空选择应返回空结果, got %+v", result)
	}
}

func TestAnalyzeNilTable(t *testing.T) {
	result := analyzer.New(nil).Analyze([]int{0, 1})
	if len(result.Items) != 0 || result.GrandTotal != 0 {
		t.Errorf("无数据应返回空结果, got %+v", result)
	}
}

func TestAnalyzeSumsAndSorts(t *testing.T) {
	table := buildTable(
		[]string{"黄鱼烧卷", "黑米饭", "酱鸭"},
		[][]int{
			{1, 4, 0},
			{2, 3, 0},
			{0, 0, 5},
		},
	)

	result := analyzer.New(table).Analyze([]int{0, 1})
	want := []model.ItemTotal{
		{Name: "黑米饭", Quantity: 7},
		{Name: "黄鱼烧卷", Quantity: 3},
	}
	if !reflect.DeepEqual(result.Items, want) {
		t.Errorf("Items = %v, want %v", result.Items, want)
	}
	if result.GrandTotal != 10 {
		t.Errorf("GrandTotal = %d, want 10", result.GrandTotal)
	}
	if result.OrdersAnalyzed != 2 {
		t.Errorf("OrdersAnalyzed = %d, want 2", result.OrdersAnalyzed)
	}
}

func TestAnalyzeZeroTotalOmitted(t *testing.T) {
	table := buildTable([]string{"黄鱼烧卷", "酱鸭"}, [][]int{{2, 0}})

	result := analyzer.New(table).Analyze([]int{0})
	if len(result.Items) != 1 || result.Items[0].Name != "黄鱼烧卷" {
		t.Errorf("合计为 0 的菜品不应出现, got %v", result.Items)
	}
}

func TestAnalyzeSelectionOrderIndependent(t *testing.T) {
	table := buildTable(
		[]string{"黄鱼烧卷", "黑米饭"},
		[][]int{{1, 0}, {0, 2}, {3, 1}},
	)
	a := analyzer.New(table)

	r1 := a.Analyze([]int{0, 1, 2})
	r2 := a.Analyze([]int{2, 0, 1})
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("选择顺序不应影响结果: %v vs %v", r1, r2)
	}

	// 重复调用结果一致
	r3 := a.Analyze([]int{0, 1, 2})
	if !reflect.DeepEqual(r1, r3) {
		t.Errorf("重复调用结果不一致: %v vs %v", r1, r3)
	}
}

func TestAnalyzeDuplicateAndOutOfRangeIndices(t *testing.T) {
	table := buildTable([]string{"黑米饭"}, [][]int{{2}, {3}})

	result := analyzer.New(table).Analyze([]int{1, 1, 5, -1})
	if result.GrandTotal != 3 {
		t.Errorf("GrandTotal = %d, want 3", result.GrandTotal)
	}
	if result.OrdersAnalyzed != 1 {
		t.Errorf("OrdersAnalyzed = %d, want 1", result.OrdersAnalyzed)
	}
}

func TestAnalyzeStableTieBreak(t *testing.T) {
	table := buildTable(
		[]string{"酱鸭", "黄鱼烧卷", "黑米饭"},
		[][]int{{2, 5, 2}},
	)

	result := analyzer.New(table).Analyze([]int{0})
	want := []string{"黄鱼烧卷", "酱鸭", "黑米饭"}
	for i, w := range want {
		if result.Items[i].Name != w {
			t.Fatalf("Items[%d] = %q, want %q (并列数量应保持目录列顺序)", i, result.Items[i].Name, w)
		}
	}
}

func TestGrandTotalMatchesItemSum(t *testing.T) {
	table := buildTable(
		[]string{"黄鱼烧卷", "黑米饭", "酱鸭"},
		[][]int{{1, 2, 3}, {4, 0, 1}},
	)

	result := analyzer.New(table).Analyze([]int{0, 1})
	sum := 0
	for _, it := range result.Items {
		if it.Quantity <= 0 {
			t.Errorf("%s 数量应大于 0", it.Name)
		}
		sum += it.Quantity
	}
	if sum != result.GrandTotal {
		t.Errorf("GrandTotal = %d, 明细合计 = %d", result.GrandTotal, sum)
	}
}

func TestNonCJKColumnIgnored(t *testing.T) {
	table := buildTable([]string{"黑米饭", "combo-a"}, [][]int{{1, 9}})

	a := analyzer.New(table)
	if a.FoodColumnCount() != 1 {
		t.Fatalf("FoodColumnCount = %d, want 1", a.FoodColumnCount())
	}
	result := a.Analyze([]int{0})
	if result.GrandTotal != 1 {
		t.Errorf("非中文列不应参与汇总, GrandTotal = %d", result.GrandTotal)
	}
}
