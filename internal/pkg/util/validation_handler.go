package util

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			first := vErrs[0]
			return fmt.Errorf("字段 [%s] 校验失败，规则 [%s]", first.Field(), first.Tag())
		}
		return err
	}
	return nil
}

// NormalizeContent 去除首尾空白，内容为空或超过 maxLen 个字符时 ok 为 false
func NormalizeContent(content string, maxLen int) (string, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", false
	}
	if maxLen > 0 && utf8.RuneCountInString(content) > maxLen {
		return "", false
	}
	return content, true
}
