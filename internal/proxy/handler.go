package proxy

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/heliostat/heliostat/internal/logging"
	"github.com/heliostat/heliostat/internal/server"
	"github.com/heliostat/heliostat/internal/stats"
)

const (
	headerXCache        = "X-Cache"
	readmeName          = "README.md"
	markdownContentType = "text/markdown; charset=UTF-8"
)

// Handler 负责 orchestrate “路径清洗 → 缓存查找 → 回源写缓存 → Range 切片”
// 的全流程，对外暴露 Fiber handler，内部复用共享 http.Client 与统计注册表。
// 每个日志源复用同一个 Handler 实例，按 LogTarget 区分缓存与目录。
type Handler struct {
	client    *http.Client
	logger    *logrus.Logger
	stats     *stats.Registry
	userAgent string
}

// NewHandler constructs a proxy handler with shared HTTP client/logger/stats.
func NewHandler(client *http.Client, logger *logrus.Logger, registry *stats.Registry, userAgent string) *Handler {
	return &Handler{
		client:    client,
		logger:    logger,
		stats:     registry,
		userAgent: userAgent,
	}
}

// Handle 按固定顺序执行请求派发：请求计数永远最先发生，之后才是路径
// 清洗与缓存/回源，任何阶段失败都就地折算成 HTTP 状态码返回。
func (h *Handler) Handle(c fiber.Ctx, target *server.LogTarget) error {
	started := time.Now()
	h.stats.IncRequest(target.Name)

	clean := SanitizePath(c.Params("*"))
	if clean == "" {
		h.logger.WithFields(logrus.Fields{
			"action": "sanitize",
			"log":    target.Name,
			"raw":    c.Params("*"),
		}).Warn("invalid_path")
		return writeError(c, fiber.StatusBadRequest, "invalid_path")
	}

	// README.md 直通本地元数据目录，完全绕开缓存与上游。
	if clean == readmeName {
		return h.serveReadme(c, target, started)
	}

	body, hit := target.Cache.Get(clean)
	if hit {
		h.stats.IncCacheHit(target.Name)
	} else {
		ctx := c.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		fetched, err := h.fetchAndCache(ctx, target, clean)
		if err != nil {
			h.logger.WithError(err).
				WithFields(logging.RequestFields(target.Name, clean, false)).
				Error("upstream_failed")
			return writeError(c, fiber.StatusBadGateway, "upstream_failed")
		}
		body = fetched
	}

	return h.serve(c, target, clean, body, hit, "", started)
}

// serveReadme 从日志源的本地元数据目录读取 README.md。Range 解析与普通
// tile 完全一致；X-Cache 恒为 HIT，但不计入 cache_hits。
func (h *Handler) serveReadme(c fiber.Ctx, target *server.LogTarget, started time.Time) error {
	readmePath := filepath.Join(target.DataDir, readmeName)

	body, err := os.ReadFile(readmePath)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"action": "readme",
			"log":    target.Name,
			"path":   readmePath,
		}).Error("readme_unreadable")
		return writeError(c, fiber.StatusNotFound, "readme_not_found")
	}

	return h.serve(c, target, readmeName, body, true, markdownContentType, started)
}

// serve 依据 Range 头决定完整响应还是部分响应。解析失败的 Range 头不是
// 错误，按没有 Range 处理；解析成功则必然产出 206 或 416。
func (h *Handler) serve(
	c fiber.Ctx,
	target *server.LogTarget,
	path string,
	body []byte,
	hit bool,
	contentType string,
	started time.Time,
) error {
	if raw := c.Get(fiber.HeaderRange); raw != "" {
		if spec, ok := ParseRange(raw, len(body)); ok {
			return h.serveRange(c, target, path, body, spec, hit, contentType, started)
		}
	}

	h.stats.AddBytesServed(target.Name, uint64(len(body)))

	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	c.Set(headerXCache, cacheHeaderValue(hit))
	c.Status(fiber.StatusOK)

	h.logResult(c, target, path, fiber.StatusOK, hit, len(body), started)
	return c.Send(body)
}

// serveRange 输出 [Start, End) 窗口；越界窗口返回空体 416，既不带
// Content-Range 也不带 X-Cache。
func (h *Handler) serveRange(
	c fiber.Ctx,
	target *server.LogTarget,
	path string,
	body []byte,
	spec RangeSpec,
	hit bool,
	contentType string,
	started time.Time,
) error {
	if !spec.Satisfiable(len(body)) {
		h.logger.WithFields(logrus.Fields{
			"action":      "range",
			"log":         target.Name,
			"path":        path,
			"range_start": spec.Start,
			"range_end":   spec.End,
			"body_length": len(body),
		}).Warn("range_not_satisfiable")
		c.Status(fiber.StatusRequestedRangeNotSatisfiable)
		return c.Send(nil)
	}

	partial := body[spec.Start:spec.End]
	h.stats.AddBytesServed(target.Name, uint64(len(partial)))

	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	c.Set(fiber.HeaderContentRange, fmt.Sprintf("bytes %d-%d/%d", spec.Start, spec.End-1, len(body)))
	c.Set(headerXCache, cacheHeaderValue(hit))
	c.Status(fiber.StatusPartialContent)

	h.logResult(c, target, path, fiber.StatusPartialContent, hit, len(partial), started)
	return c.Send(partial)
}

func (h *Handler) logResult(c fiber.Ctx, target *server.LogTarget, path string, status int, hit bool, payload int, started time.Time) {
	fields := logging.RequestFields(target.Name, path, hit)
	fields["action"] = "webseed"
	fields["status"] = status
	fields["payload_bytes"] = payload
	fields["elapsed_ms"] = time.Since(started).Milliseconds()
	if reqID := server.RequestID(c); reqID != "" {
		fields["request_id"] = reqID
	}
	h.logger.WithFields(fields).Debug("webseed_complete")
}

func cacheHeaderValue(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func writeError(c fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{"error": code})
}
