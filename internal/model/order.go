package model

import "time"

// CatalogItem 菜单目录项
//
// RawName 是目录中的原始名称（可能带 "15个/份" 这类包装后缀），仅用于展示；
// BaseName 是去掉包装后缀后的匹配名，仅用于订单文本匹配。
type CatalogItem struct {
	RawName  string `json:"rawName"`
	BaseName string `json:"baseName"`
}

// OrderRecord 一条已校验的配送订单
type OrderRecord struct {
	SequenceNo int    `json:"sequenceNo"` // 序号列，正整数，表内唯一
	Customer   string `json:"customer"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zipCode"`

	// RawItemsText 原始订单文本，可能为空
	RawItemsText string `json:"rawItemsText"`

	// Quantities 每个目录项的数量，与目录列顺序一一对应，默认 0
	Quantities []int `json:"quantities"`
}

// OrderTable 一次上传解析出的完整订单表
//
// 上传会整表替换，行在表生命周期内不增不删，行索引对外稳定。
type OrderTable struct {
	Items      []CatalogItem  `json:"items"`
	Orders     []*OrderRecord `json:"orders"`
	SourceFile string         `json:"sourceFile"`
	LoadedAt   time.Time      `json:"loadedAt"`
}

// ItemCount 统计单条订单里数量大于 0 的目录项个数
func (r *OrderRecord) ItemCount() int {
	n := 0
	for _, q := range r.Quantities {
		if q > 0 {
			n++
		}
	}
	return n
}

// ItemTotal 单个目录项的汇总数量
type ItemTotal struct {
	Name     string `json:"name"` // 展示用原始目录名
	Quantity int    `json:"quantity"`
}

// AnalysisResult 对选中订单集合的汇总结果
type AnalysisResult struct {
	Items          []ItemTotal `json:"items"` // 按数量降序，数量相同保持目录列顺序
	GrandTotal     int         `json:"grandTotal"`
	OrdersAnalyzed int         `json:"ordersAnalyzed"`
}

// Discrepancy 表尾汇总与解析结果的差异（仅提示，不是错误）
type Discrepancy struct {
	Item     string `json:"item"`
	Parsed   int    `json:"parsed"`
	Declared int    `json:"declared"`
}

// ImportLog 一次上传的记录
type ImportLog struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"fileName"`
	RowCount   int       `json:"rowCount"`
	ItemCount  int       `json:"itemCount"`
	ImportedAt time.Time `json:"importedAt"`
}
