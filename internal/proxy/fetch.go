package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/heliostat/heliostat/internal/server"
)

// fetchAndCache 在缓存未命中时回源拉取完整对象并写入缓存。
//
// 传输失败或非 2xx 状态都视为回源失败，此时不写缓存，由调用方返回
// Bad Gateway。成功时先把正文整体读入内存，写入缓存后原样返回，
// 缓存写入是“全有或全无”的：半截正文永远不会进缓存。
func (h *Handler) fetchAndCache(ctx context.Context, target *server.LogTarget, cleanPath string) ([]byte, error) {
	targetURL := joinUpstreamURL(target.UpstreamURL.String(), cleanPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to upstream failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream responded with status %d: %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	target.Cache.Put(cleanPath, body)
	return body, nil
}

// joinUpstreamURL 用恰好一个 / 连接基地址与相对路径。
func joinUpstreamURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
