package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// useBufferWriters swaps stdOut/stdErr with in-memory buffers for the duration
// of a test, allowing assertions on CLI output without polluting test logs.
func useBufferWriters(t *testing.T) {
	t.Helper()

	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	prevOut := stdOut
	prevErr := stdErr

	stdOut = outBuf
	stdErr = errBuf

	t.Cleanup(func() {
		stdOut = prevOut
		stdErr = prevErr
	})
}

// writeValidConfig 在临时目录生成一份可通过校验的 config.yaml，
// data_dir/torrent_dir 真实存在，但不创建日志子目录。
func writeValidConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	torrentDir := filepath.Join(dir, "torrents")
	for _, d := range []string{dataDir, torrentDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("创建目录失败: %v", err)
		}
	}

	content := fmt.Sprintf(`
scraper_contact_email: ops@example.org
data_dir: %s
torrent_dir: %s
http_port: 0
https_port: 38443
tls_cert: ""
tls_key: ""
logs:
  - name: sunlight
    log_url: https://sunlight.example.org/
`, dataDir, torrentDir)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	return path
}
