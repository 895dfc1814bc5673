package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rasoi-next/internal/config"
)

// HTTPService 店面与后台接口
type HTTPService struct {
	server *http.Server
}

// listenAddr host 为空时监听全部地址
func listenAddr(cfg config.ServerConfig) string {
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	return net.JoinHostPort(cfg.Host, port)
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              listenAddr(cfg),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "api"
}

// Addr 监听地址
func (s *HTTPService) Addr() string {
	if s == nil || s.server == nil {
		return ""
	}
	return s.server.Addr
}

// Start 阻塞直到 Stop 被调用
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 等待进行中的请求结束
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
