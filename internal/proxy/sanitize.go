package proxy

import "strings"

// SanitizePath 处理 /webseed/<log>/ 挂载点之后的原始路径尾。
//
// 第一个路径段是 torrent 名，仅作占位标识、不做任何校验、直接丢弃；
// 其余段必须是普通段（非空、非 . / ..、不带根标记），重新以 / 拼接后
// 作为缓存与回源 key。任何违规都返回空串哨兵，绝不部分处理。
func SanitizePath(raw string) string {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) < 2 {
		return ""
	}

	segments := strings.Split(parts[1], "/")
	cleaned := make([]string, 0, len(segments))
	for i, seg := range segments {
		switch seg {
		case "":
			// 开头的空段意味着绝对路径，后续的只是重复分隔符。
			if i == 0 {
				return ""
			}
			continue
		case ".":
			if i == 0 {
				return ""
			}
			continue
		case "..":
			return ""
		}
		cleaned = append(cleaned, seg)
	}

	if len(cleaned) == 0 {
		return ""
	}
	return strings.Join(cleaned, "/")
}
