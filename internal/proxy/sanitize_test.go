package proxy

import "testing"

func TestSanitizePathValid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"单层 tile", "torrent-name/data", "data"},
		{"多层 tile", "torrent-name/tile/data/000", "tile/data/000"},
		{"README 直通", "torrent-name/README.md", "README.md"},
		{"重复分隔符折叠", "torrent-name/tile//data", "tile/data"},
		{"中间的点段被丢弃", "torrent-name/tile/./data", "tile/data"},
		{"尾部斜杠", "torrent-name/tile/data/000/", "tile/data/000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizePath(tc.raw); got != tc.want {
				t.Fatalf("SanitizePath(%q) = %q, 期望 %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestSanitizePathInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"空输入", ""},
		{"只有 torrent 名", "torrent-name"},
		{"剩余部分为空", "torrent-name/"},
		{"向上跳转", "torrent-name/../secret"},
		{"深层向上跳转", "torrent-name/tile/../../secret"},
		{"绝对路径", "torrent-name//etc/passwd"},
		{"开头的当前目录", "torrent-name/./data"},
		{"单独的点点", "torrent-name/.."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizePath(tc.raw); got != "" {
				t.Fatalf("SanitizePath(%q) = %q, 期望空串哨兵", tc.raw, got)
			}
		})
	}
}
