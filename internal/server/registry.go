package server

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/heliostat/heliostat/internal/config"
	"github.com/heliostat/heliostat/internal/tilecache"
)

// LogTarget 将日志源配置与派生属性（解析后的回源 URL、独享缓存、本地元数据
// 目录）聚合在一起，启动时构建一次，之后只读共享给路由与代理层。
type LogTarget struct {
	// Name 是日志源名称，同时也是 /webseed/<name>/ 挂载点与统计条目的 key。
	Name string
	// UpstreamURL 在构造 Registry 时提前解析完成，便于后续请求快速复用。
	UpstreamURL *url.URL
	// DataDir 指向 <data_dir>/<name>，README.md 等元数据文件从这里读取。
	DataDir string
	// Cache 是该日志源独享的 LRU 对象缓存。
	Cache *tilecache.Cache
}

// LogRegistry 提供日志名到 LogTarget 的查询能力，所有日志源共享同一组监听端口。
type LogRegistry struct {
	targets map[string]*LogTarget
	ordered []*LogTarget
}

// NewLogRegistry 根据配置构建日志源映射，并校验各自的数据目录已存在。
// 调用方应在启动阶段创建一次并复用。
func NewLogRegistry(cfg *config.Config) (*LogRegistry, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if info, err := os.Stat(cfg.DataDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("data directory does not exist: %s", cfg.DataDir)
	}
	if info, err := os.Stat(cfg.TorrentDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("torrent directory does not exist: %s", cfg.TorrentDir)
	}

	registry := &LogRegistry{
		targets: make(map[string]*LogTarget, len(cfg.Logs)),
	}

	for _, log := range cfg.Logs {
		if _, exists := registry.targets[log.Name]; exists {
			return nil, fmt.Errorf("duplicate log name: %s", log.Name)
		}

		upstreamURL, err := url.Parse(log.LogURL)
		if err != nil {
			return nil, fmt.Errorf("invalid log_url for log %s: %w", log.Name, err)
		}

		logDir := filepath.Join(cfg.DataDir, log.Name)
		if info, err := os.Stat(logDir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("log directory does not exist: %s", logDir)
		}

		target := &LogTarget{
			Name:        log.Name,
			UpstreamURL: upstreamURL,
			DataDir:     logDir,
			Cache:       tilecache.New(tilecache.DefaultCapacity),
		}
		registry.targets[log.Name] = target
		registry.ordered = append(registry.ordered, target)
	}

	return registry, nil
}

// Lookup 根据日志名查找 LogTarget。
func (r *LogRegistry) Lookup(name string) (*LogTarget, bool) {
	if r == nil {
		return nil, false
	}
	target, ok := r.targets[name]
	return target, ok
}

// List 返回配置定义顺序的 LogTarget 列表，用于调试输出。
func (r *LogRegistry) List() []*LogTarget {
	if r == nil || len(r.ordered) == 0 {
		return nil
	}
	result := make([]*LogTarget, len(r.ordered))
	copy(result, r.ordered)
	return result
}
