package xtrace

import "strings"

const (
	traceparentLen = 55
	zeroTraceID    = "00000000000000000000000000000000"
	zeroParentID   = "0000000000000000"
)

// parseTraceparent 返回 W3C traceparent 中的 trace-id（小写）。
//
// 格式 {version}-{trace-id}-{parent-id}-{flags}。version ff 无效；
// version 00 必须恰好 55 字符，更高版本允许在末尾追加字段。
func parseTraceparent(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if len(v) < traceparentLen {
		return "", false
	}
	parts := strings.SplitN(v, "-", 5)
	if len(parts) < 4 {
		return "", false
	}
	version, traceID, parentID, flags := parts[0], parts[1], parts[2], parts[3]

	switch {
	case len(version) != 2 || !isHex(version) || version == "ff":
		return "", false
	case version == "00" && len(v) != traceparentLen:
		return "", false
	case len(traceID) != 32 || !isHex(traceID) || traceID == zeroTraceID:
		return "", false
	case len(parentID) != 16 || !isHex(parentID) || parentID == zeroParentID:
		return "", false
	case len(flags) != 2 || !isHex(flags):
		return "", false
	}
	return strings.ToLower(traceID), true
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
