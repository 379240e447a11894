package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dnhuang/delivery-analyzer/internal/analyzer"
	"github.com/dnhuang/delivery-analyzer/internal/model"
)

type orderRow struct {
	Index        int    `json:"index"` // 表内行索引，分析/导出请求用它选行
	SequenceNo   int    `json:"sequenceNo"`
	Customer     string `json:"customer"`
	City         string `json:"city"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ZipCode      string `json:"zipCode"`
	RawItemsText string `json:"rawItemsText"`
	ItemCount    int    `json:"itemCount"`
}

type listOrdersResponse struct {
	Orders []orderRow `json:"orders"`
	Total  int        `json:"total"`
}

// ListOrders 列出当前订单表
// GET /api/orders
func (h *Handler) ListOrders(c *gin.Context) {
	table := h.tables.Current()
	if table == nil {
		c.JSON(http.StatusOK, listOrdersResponse{Orders: []orderRow{}})
		return
	}

	rows := make([]orderRow, 0, len(table.Orders))
	for i, o := range table.Orders {
		rows = append(rows, orderRow{
			Index:        i,
			SequenceNo:   o.SequenceNo,
			Customer:     o.Customer,
			City:         o.City,
			Phone:        o.Phone,
			Address:      o.Address,
			ZipCode:      o.ZipCode,
			RawItemsText: o.RawItemsText,
			ItemCount:    o.ItemCount(),
		})
	}

	c.JSON(http.StatusOK, listOrdersResponse{Orders: rows, Total: len(rows)})
}

type catalogEntry struct {
	RawName  string `json:"rawName"`
	BaseName string `json:"baseName"`
}

// GetCatalog 返回菜品目录（目录顺序）
// GET /api/catalog
func (h *Handler) GetCatalog(c *gin.Context) {
	items := make([]catalogEntry, 0, h.catalog.Len())
	for _, it := range h.catalog.Items() {
		items = append(items, catalogEntry{RawName: it.RawName, BaseName: it.BaseName})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type analyzeRequest struct {
	Indices []int `json:"indices"`
}

// Analyze 汇总选中的订单
// POST /api/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	result := analyzer.New(h.tables.Current()).Analyze(req.Indices)
	c.JSON(http.StatusOK, result)
}

// selectedOrders 按请求索引取订单行（去重、越界跳过，与汇总口径一致）
func selectedOrders(table *model.OrderTable, indices []int) []*model.OrderRecord {
	if table == nil {
		return nil
	}
	seen := make(map[int]bool, len(indices))
	out := make([]*model.OrderRecord, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(table.Orders) || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, table.Orders[idx])
	}
	return out
}
