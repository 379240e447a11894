package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dnhuang/delivery-analyzer/internal/analyzer"
	"github.com/dnhuang/delivery-analyzer/internal/export"
)

// downloadTTL 下载链接有效期
const downloadTTL = 10 * time.Minute

type exportRequest struct {
	Indices []int  `json:"indices"`
	Format  string `json:"format"`
}

// Export 导出选中订单的汇总结果，返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	format := export.Format(req.Format)
	if format == "" {
		format = export.FormatCSV
	}
	if !format.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("不支持的导出格式: %s", req.Format)})
		return
	}

	table := h.tables.Current()
	if table == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "尚未上传数据"})
		return
	}

	now := time.Now()
	result := analyzer.New(table).Analyze(req.Indices)
	selected := selectedOrders(table, req.Indices)

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("delivery_export_%d_%d", now.UnixNano(), os.Getpid()))

	switch format {
	case export.FormatCSV:
		data, err := export.WriteCSV(result)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "生成 CSV 失败: " + err.Error()})
			return
		}
		if err := os.WriteFile(tempPath, data, 0644); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
			return
		}
	case export.FormatReport:
		data := export.WriteReport(result, selected, now)
		if err := os.WriteFile(tempPath, data, 0644); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
			return
		}
	case export.FormatXLSX:
		f, err := export.WriteWorkbook(result, selected)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "生成工作簿失败: " + err.Error()})
			return
		}
		err = f.SaveAs(tempPath)
		_ = f.Close()
		if err != nil {
			_ = os.Remove(tempPath)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败"})
			return
		}
	}

	token := h.downloads.put(tempPath, format.FileName(now), format.ContentType(), downloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl": "/api/export/download/" + token,
		"fileName":    format.FileName(now),
	})
}

// DownloadExport 下载导出文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.fileName))
	c.Header("Content-Type", item.contentType)
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
