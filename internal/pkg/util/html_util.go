package util

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ExtractImageSources 按文档顺序返回富文本中 <img> 的 src，去重并忽略空值
func ExtractImageSources(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	srcs := make([]string, 0)
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		srcs = append(srcs, src)
	})
	return srcs
}

// PlainText 去掉标签后返回纯文本，limit > 0 时按字符截断
func PlainText(html string, limit int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if limit > 0 && utf8.RuneCountInString(text) > limit {
		runes := []rune(text)
		return string(runes[:limit]) + "..."
	}
	return text
}

// WordCount 逐个文本节点按空白分词计数，相邻块级元素的文字不会粘连
func WordCount(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0
	}

	count := 0
	var walk func(sel *goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				count += len(strings.Fields(c.Text()))
				return
			}
			walk(c)
		})
	}
	walk(doc.Selection)
	return count
}
