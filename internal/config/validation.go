package config

import (
	"errors"
	"net/url"
	"strings"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	if c.HTTPPort == 0 && c.HTTPSPort == 0 {
		return errors.New("http_port 与 https_port 至少需要配置一个")
	}
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return newFieldError("http_port", "必须在 1-65535")
	}
	if c.HTTPSPort < 0 || c.HTTPSPort > 65535 {
		return newFieldError("https_port", "必须在 1-65535")
	}
	if c.DataDir == "" {
		return newFieldError("data_dir", "不能为空")
	}
	if c.TorrentDir == "" {
		return newFieldError("torrent_dir", "不能为空")
	}
	if c.UpstreamTimeout.DurationValue() <= 0 {
		return newFieldError("upstream_timeout", "必须大于 0")
	}
	if c.LogMaxSize < 0 {
		return newFieldError("log_max_size", "不能为负数")
	}
	if c.LogMaxBackups < 0 {
		return newFieldError("log_max_backups", "不能为负数")
	}

	if len(c.Logs) == 0 {
		return errors.New("至少需要配置一个日志源")
	}

	seenNames := map[string]struct{}{}
	for i := range c.Logs {
		log := &c.Logs[i]

		name := strings.TrimSpace(log.Name)
		if name == "" {
			return newFieldError(logField("", "name"), "不能为空")
		}
		if strings.ContainsAny(name, "/\\") {
			return newFieldError(logField(name, "name"), "不能包含路径分隔符")
		}
		if _, dup := seenNames[name]; dup {
			return newFieldError(logField(name, "name"), "名称重复")
		}
		seenNames[name] = struct{}{}
		log.Name = name

		if err := validateUpstream(log); err != nil {
			return err
		}
	}

	return nil
}

func validateUpstream(log *LogConfig) error {
	raw := strings.TrimSpace(log.LogURL)
	if raw == "" {
		return newFieldError(logField(log.Name, "log_url"), "不能为空")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return newFieldError(logField(log.Name, "log_url"), "不是合法 URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return newFieldError(logField(log.Name, "log_url"), "仅支持 http/https")
	}
	if parsed.Host == "" {
		return newFieldError(logField(log.Name, "log_url"), "缺少主机名")
	}

	log.LogURL = raw
	return nil
}
