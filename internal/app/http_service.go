package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// HTTPService 交易接口 HTTP 服务
type HTTPService struct {
	server   *http.Server
	listener net.Listener
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Listen 预先绑定端口，端口占用等错误在启动阶段即可返回
func (s *HTTPService) Listen() error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

// Addr 实际监听地址，未监听时返回配置地址
func (s *HTTPService) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Start 启动服务，阻塞至服务关闭
func (s *HTTPService) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅停止
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
