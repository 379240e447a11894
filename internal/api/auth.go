package api

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// sessionTTL 登录会话有效期
const sessionTTL = 12 * time.Hour

type sessionStore struct {
	mu    sync.Mutex
	items map[string]time.Time // token -> 过期时间
}

func newSessionStore() *sessionStore {
	return &sessionStore{items: make(map[string]time.Time)}
}

func (s *sessionStore) create(ttl time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token := newRandomToken(24)
	s.items[token] = time.Now().Add(ttl)
	return token
}

func (s *sessionStore) valid(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.items[token]
	if !ok {
		return false
	}
	if time.Now().After(expires) {
		delete(s.items, token)
		return false
	}
	return true
}

func (s *sessionStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login 密码登录，换取会话 token
// POST /api/login
func (h *Handler) Login(c *gin.Context) {
	if h.password == "" {
		c.JSON(http.StatusOK, gin.H{"token": "", "authRequired": false})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "密码错误"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        h.sessions.create(sessionTTL),
		"authRequired": true,
	})
}

// RequireAuth 会话校验中间件；未配置密码时直接放行
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.password == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || !h.sessions.valid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录或会话已过期"})
			return
		}
		c.Next()
	}
}
