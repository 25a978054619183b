package util

import (
	"Inkwell/internal/pkg/consts"
	"strings"
)

// NormalizeTags 去掉空白与重复项，保留首次出现的顺序
func NormalizeTags(raw []string) []string {
	tagSet := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(strings.TrimSpace(t), "#.,，。!?！？")
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, exists := tagSet[key]; exists {
			continue
		}
		tagSet[key] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}

// Ptr 返回 v 的指针
func Ptr[T any](v T) *T {
	return &v
}

// Page 规范化分页参数，返回 limit 与 offset
func Page(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = consts.DefaultPageSize
	}
	if limit > consts.MaxPageSize {
		limit = consts.MaxPageSize
	}
	return limit, (page - 1) * limit
}
