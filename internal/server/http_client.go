package server

import (
	"net"
	"net/http"
	"time"

	"github.com/heliostat/heliostat/internal/config"
)

// Shared HTTP transport tunings，复用长连接并集中配置超时。
// 空闲连接保活时间放宽到 10 分钟，摊薄对上游日志源的 TLS/TCP 握手成本。
var defaultTransport = &http.Transport{
	Proxy:                 http.ProxyFromEnvironment,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       600 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ForceAttemptHTTP2:     true,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 60 * time.Second,
	}).DialContext,
}

// NewUpstreamClient 返回共享 http.Client，所有日志源的回源请求复用同一连接池。
func NewUpstreamClient(cfg *config.Config) *http.Client {
	timeout := 30 * time.Second
	if cfg != nil && cfg.UpstreamTimeout.DurationValue() > 0 {
		timeout = cfg.UpstreamTimeout.DurationValue()
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: defaultTransport.Clone(),
	}
}
