package api

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dnhuang/delivery-analyzer/internal/ingest"
	"github.com/dnhuang/delivery-analyzer/internal/model"
	"github.com/dnhuang/delivery-analyzer/internal/service/excel"
)

type uploadResponse struct {
	FileName      string              `json:"fileName"`
	RowCount      int                 `json:"rowCount"`
	ItemCount     int                 `json:"itemCount"`
	Discrepancies []model.Discrepancy `json:"discrepancies,omitempty"`
}

// Upload 上传订单工作簿，整表替换当前数据
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	uploadedFile, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("delivery_upload_%s_%s", uuid.New().String(), filepath.Base(uploadedFile.Filename)))
	if err := c.SaveUploadedFile(uploadedFile, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempPath)

	src, err := os.Open(tempPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
		return
	}
	defer src.Close()

	reader := excel.NewReader()
	if err := reader.Load(src); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法解析 Excel 文件: " + err.Error()})
		return
	}
	defer reader.Close()

	rows, err := reader.Extract()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ingest.Build(rows, h.catalog, uploadedFile.Filename)
	if err != nil {
		// 结构错误原样返回，当前表不受影响
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	discrepancies := ingest.Reconcile(result.Table, result.FooterRows)

	h.tables.Replace(result.Table)

	if _, err := h.store.CreateImportLog(uploadedFile.Filename, len(result.Table.Orders), h.catalog.Len()); err != nil {
		log.Printf("记录上传日志失败: %v", err)
	}

	c.JSON(http.StatusOK, uploadResponse{
		FileName:      uploadedFile.Filename,
		RowCount:      len(result.Table.Orders),
		ItemCount:     h.catalog.Len(),
		Discrepancies: discrepancies,
	})
}

// StatusResponse 系统状态响应
type StatusResponse struct {
	Loaded         bool   `json:"loaded"`
	RowCount       int    `json:"rowCount"`
	CatalogSize    int    `json:"catalogSize"`
	SourceFile     string `json:"sourceFile"`
	LastImportTime string `json:"lastImportTime"`
}

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Loaded:      h.tables.Loaded(),
		RowCount:    h.tables.RowCount(),
		CatalogSize: h.catalog.Len(),
	}
	if table := h.tables.Current(); table != nil {
		resp.SourceFile = table.SourceFile
	}
	if last, err := h.store.LastImport(); err == nil && last != nil {
		resp.LastImportTime = last.ImportedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}
