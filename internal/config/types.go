package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// LogConfig 描述单个被镜像的日志源：名称决定 /webseed/<name>/ 挂载点与
// data_dir 下的元数据子目录，log_url 是回源基地址。
type LogConfig struct {
	Name   string `mapstructure:"name"`
	LogURL string `mapstructure:"log_url"`
}

// Config 是 config.yaml 映射的整体结构，所有日志源共享同一份全局参数。
type Config struct {
	ScraperContactEmail string      `mapstructure:"scraper_contact_email"`
	DataDir             string      `mapstructure:"data_dir"`
	TorrentDir          string      `mapstructure:"torrent_dir"`
	HTTPPort            int         `mapstructure:"http_port"`
	HTTPSPort           int         `mapstructure:"https_port"`
	TLSCert             string      `mapstructure:"tls_cert"`
	TLSKey              string      `mapstructure:"tls_key"`
	UpstreamTimeout     Duration    `mapstructure:"upstream_timeout"`
	LogLevel            string      `mapstructure:"log_level"`
	LogFilePath         string      `mapstructure:"log_file_path"`
	LogMaxSize          int         `mapstructure:"log_max_size"`
	LogMaxBackups       int         `mapstructure:"log_max_backups"`
	LogCompress         bool        `mapstructure:"log_compress"`
	Logs                []LogConfig `mapstructure:"logs"`
}

// HasTLS 表示 HTTPS 端口已开启且证书/私钥路径齐全。
func (c *Config) HasTLS() bool {
	return c.HTTPSPort > 0 && c.TLSCert != "" && c.TLSKey != ""
}

// LogNames 返回配置顺序的日志名列表，供启动日志输出。
func (c *Config) LogNames() []string {
	if len(c.Logs) == 0 {
		return nil
	}
	names := make([]string, len(c.Logs))
	for i, log := range c.Logs {
		names[i] = log.Name
	}
	return names
}
