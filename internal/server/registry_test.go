package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/heliostat/heliostat/internal/config"
)

func testConfig(t *testing.T, logs ...string) *config.Config {
	t.Helper()

	dataDir := t.TempDir()
	torrentDir := t.TempDir()

	cfg := &config.Config{
		DataDir:    dataDir,
		TorrentDir: torrentDir,
		HTTPPort:   8080,
	}
	for _, name := range logs {
		if err := os.MkdirAll(filepath.Join(dataDir, name), 0o755); err != nil {
			t.Fatalf("创建日志目录失败: %v", err)
		}
		cfg.Logs = append(cfg.Logs, config.LogConfig{
			Name:   name,
			LogURL: "https://" + name + ".example.org/",
		})
	}
	return cfg
}

func TestNewLogRegistryBuildsTargets(t *testing.T) {
	cfg := testConfig(t, "sunlight", "tuscolo")

	registry, err := NewLogRegistry(cfg)
	if err != nil {
		t.Fatalf("构建注册表失败: %v", err)
	}

	target, ok := registry.Lookup("sunlight")
	if !ok {
		t.Fatalf("应能查到 sunlight")
	}
	if target.UpstreamURL.Host != "sunlight.example.org" {
		t.Fatalf("回源地址解析不符: %s", target.UpstreamURL)
	}
	if target.DataDir != filepath.Join(cfg.DataDir, "sunlight") {
		t.Fatalf("数据目录不符: %s", target.DataDir)
	}
	if target.Cache == nil {
		t.Fatalf("每个日志源都应有独享缓存")
	}

	if got := len(registry.List()); got != 2 {
		t.Fatalf("期望 2 个日志源, 得到 %d", got)
	}

	other, _ := registry.Lookup("tuscolo")
	if other.Cache == target.Cache {
		t.Fatalf("缓存实例不应在日志源之间共享")
	}
}

func TestNewLogRegistryRejectsMissingLogDir(t *testing.T) {
	cfg := testConfig(t, "sunlight")
	cfg.Logs = append(cfg.Logs, config.LogConfig{
		Name:   "ghost",
		LogURL: "https://ghost.example.org/",
	})

	if _, err := NewLogRegistry(cfg); err == nil {
		t.Fatalf("缺失日志目录应报错")
	}
}

func TestNewLogRegistryRejectsMissingDataDir(t *testing.T) {
	cfg := testConfig(t, "sunlight")
	cfg.DataDir = filepath.Join(cfg.DataDir, "missing")

	if _, err := NewLogRegistry(cfg); err == nil {
		t.Fatalf("缺失数据目录应报错")
	}
}

func TestLookupUnknownLog(t *testing.T) {
	cfg := testConfig(t, "sunlight")
	registry, err := NewLogRegistry(cfg)
	if err != nil {
		t.Fatalf("构建注册表失败: %v", err)
	}
	if _, ok := registry.Lookup("unknown"); ok {
		t.Fatalf("未配置的日志名不应命中")
	}
}
