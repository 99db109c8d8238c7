package routes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/heliostat/heliostat/internal/stats"
)

// RegisterStatisticsRoute 暴露 /statistics 页面，渲染自统计注册表的只读快照。
func RegisterStatisticsRoute(app *fiber.App, registry *stats.Registry) {
	if app == nil || registry == nil {
		return
	}

	app.Get("/statistics", func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/html; charset=UTF-8")
		return c.SendString(renderStatisticsPage(registry.Snapshot()))
	})
}

func renderStatisticsPage(snapshot map[string]stats.LogStats) string {
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		ls := snapshot[name]
		hitRate := 0.0
		if ls.RequestCount > 0 {
			hitRate = float64(ls.CacheHits) / float64(ls.RequestCount) * 100.0
		}
		fmt.Fprintf(&sb, "<h2>%s</h2>\n<ul>\n", name)
		fmt.Fprintf(&sb, "<li>Bytes served: %s</li>\n", formatBytes(ls.BytesServed))
		fmt.Fprintf(&sb, "<li>Requests: %s</li>\n", formatNumber(ls.RequestCount))
		fmt.Fprintf(&sb, "<li>Cache hit rate: %.1f%%</li>\n", hitRate)
		sb.WriteString("</ul>\n")
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>Heliostat Statistics</title>
    <style>
        body { font-family: system-ui, sans-serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px; }
        h1, h2 { color: #333; }
        a { color: #0366d6; text-decoration: none; }
        a:hover { text-decoration: underline; }
        ul { list-style-type: none; padding-left: 20px; }
    </style>
</head>
<body>
    <h1>Log Statistics</h1>
    <p>This page shows the bytes served to BitTorrent clients since Heliostat's last restart.</p>
    %s
    <p><a href="/torrents">Back to Home</a></p>
</body>
</html>`, sb.String())
}

// formatNumber 为十进制整数插入千分位逗号。
func formatNumber(num uint64) string {
	raw := fmt.Sprintf("%d", num)
	var sb strings.Builder
	for i, c := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// formatBytes 将字节数渲染为人类可读单位。
func formatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)

	switch {
	case bytes < kb:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes < tb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	default:
		return fmt.Sprintf("%.2f TB", float64(bytes)/tb)
	}
}
