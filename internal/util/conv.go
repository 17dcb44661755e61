package util

import "regexp"

var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsUUID 判断测验访问标识是 UUID 还是 slug。
// 命中 8-4-4-4-12 十六进制分组形态的按主键查询，否则按 slug 查询。
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}
