package routes

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterMetricsRoute 通过 promhttp 暴露 /metrics，供 Prometheus 抓取。
func RegisterMetricsRoute(app *fiber.App, gatherer prometheus.Gatherer) {
	if app == nil || gatherer == nil {
		return
	}

	handler := promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	app.Get("/metrics", adaptor.HTTPHandler(handler))
}

// RegisterTorrentRoutes 将种子目录挂载到 /torrents，直接走静态文件服务。
func RegisterTorrentRoutes(app *fiber.App, torrentDir string) {
	if app == nil || torrentDir == "" {
		return
	}

	app.Use("/torrents", static.New(torrentDir, static.Config{
		Browse: true,
	}))
}
