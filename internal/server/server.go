package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/dnhuang/delivery-analyzer/internal/api"
	"github.com/dnhuang/delivery-analyzer/internal/catalog"
	"github.com/dnhuang/delivery-analyzer/internal/config"
	svcstore "github.com/dnhuang/delivery-analyzer/internal/service/store"
	"github.com/dnhuang/delivery-analyzer/internal/store"
)

//go:embed static
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	sqliteStore, err := store.New(filepath.Join(dataDir, "analyzer.db"))
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg, sqliteStore)
	if err != nil {
		_ = sqliteStore.Close()
		return nil, err
	}

	apiHandler := api.NewHandler(cat, svcstore.NewTableStore(), sqliteStore, cfg.Auth.Password)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    apiHandler,
	}

	s.setupRoutes()
	return s, nil
}

// loadCatalog 加载菜品目录
//
// 以 CSV 为准并同步进库；CSV 读不到时退回库里缓存的目录。
func loadCatalog(cfg *config.AppConfig, st *store.Store) (*catalog.Catalog, error) {
	cat, err := catalog.LoadCSVFile(config.CatalogPath(cfg))
	if err == nil {
		if err := st.ReplaceCatalog(cat.Items()); err != nil {
			log.Printf("目录写入缓存失败: %v", err)
		}
		return cat, nil
	}

	log.Printf("读取目录 CSV 失败，尝试使用缓存目录: %v", err)

	items, cacheErr := st.GetCatalogItems()
	if cacheErr != nil || len(items) == 0 {
		return nil, err
	}

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.RawName
	}
	return catalog.New(names)
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 首页（内置静态页面）
	sub, _ := fs.Sub(staticFiles, "static")
	s.router.GET("/", func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放资源
func (s *Server) Close() error {
	return s.store.Close()
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
