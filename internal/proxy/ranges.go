package proxy

import (
	"strconv"
	"strings"
)

// RangeSpec 表示半开区间 [Start, End) 的字节窗口，随请求结束即丢弃。
type RangeSpec struct {
	Start int
	End   int
}

// ParseRange 只识别 `bytes=<start>-[<end>]` 这一种写法。逗号分隔的多段
// Range 以及其他不符合该格式的值都按“没有 Range 头”处理，调用方应回退
// 到完整的 200 响应，而不是报错。
func ParseRange(header string, length int) (RangeSpec, bool) {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return RangeSpec{}, false
	}

	parts := strings.Split(header[len(prefix):], "-")
	if len(parts) != 2 {
		return RangeSpec{}, false
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return RangeSpec{}, false
	}

	end := length
	if parts[1] != "" {
		last, err := strconv.Atoi(parts[1])
		if err != nil {
			return RangeSpec{}, false
		}
		// Range 头的 end 是闭区间，内部统一用开区间表示。
		end = last + 1
	}

	return RangeSpec{Start: start, End: end}, true
}

// Satisfiable 判断窗口是否完全落在长度为 length 的正文之内。
func (r RangeSpec) Satisfiable(length int) bool {
	return r.Start >= 0 && r.Start < length && r.End <= length && r.Start < r.End
}
