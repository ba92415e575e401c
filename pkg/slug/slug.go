package slug

import (
	"regexp"
	"strings"
)

var (
	reInvalid    = regexp.MustCompile(`[^a-z0-9\s-]`)
	reWhitespace = regexp.MustCompile(`\s+`)
	reDashes     = regexp.MustCompile(`-+`)
)

// Make 将方向名称转换为 URL 安全的 slug
//
//	"DevOps & Cloud" → "devops-cloud"
//
// 结果可重复计算：Make(Make(s)) == Make(s)
func Make(s string) string {
	out := strings.ToLower(s)
	out = reInvalid.ReplaceAllString(out, "")
	out = reWhitespace.ReplaceAllString(out, "-")
	out = reDashes.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}
