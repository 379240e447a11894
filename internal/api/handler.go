package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dnhuang/delivery-analyzer/internal/catalog"
	svcstore "github.com/dnhuang/delivery-analyzer/internal/service/store"
	"github.com/dnhuang/delivery-analyzer/internal/store"
)

// Handler API 处理器
type Handler struct {
	catalog   *catalog.Catalog
	tables    *svcstore.TableStore
	store     *store.Store
	sessions  *sessionStore
	downloads *downloadStore
	password  string
}

// NewHandler 创建 API 处理器
//
// password 为空时跳过登录校验（本地单机使用）。
func NewHandler(c *catalog.Catalog, tables *svcstore.TableStore, s *store.Store, password string) *Handler {
	return &Handler{
		catalog:   c,
		tables:    tables,
		store:     s,
		sessions:  newSessionStore(),
		downloads: newDownloadStore(),
		password:  password,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login", h.Login)

	// 下载链接带一次性 token，自身就是凭证
	router.GET("/export/download/:token", h.DownloadExport)

	authed := router.Group("", h.RequireAuth())
	{
		authed.GET("/status", h.GetStatus)
		authed.GET("/catalog", h.GetCatalog)

		authed.POST("/upload", h.Upload)
		authed.GET("/orders", h.ListOrders)

		authed.POST("/analyze", h.Analyze)
		authed.POST("/export", h.Export)
	}
}
