package version

import "fmt"

// Version/Commit 可在构建时通过 -ldflags 注入，默认使用开发占位符。
var (
	Version = "0.1.0"
	Commit  = "dev"
)

// Full 返回便于 CLI 打印的完整版本信息。
func Full() string {
	return fmt.Sprintf("heliostat %s (%s)", Version, Commit)
}

// UserAgent 拼接带抓取联系邮箱的 User-Agent，所有上游请求共用同一标识。
func UserAgent(contactEmail string) string {
	return fmt.Sprintf("Heliostat v%s scraper-contact:%s", Version, contactEmail)
}
