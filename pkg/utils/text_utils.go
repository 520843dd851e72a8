package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 在空格处断行；单个词超过最大宽度时按字符强制断行。
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if MeasureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if MeasureTextWidth(candidate, font) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		// 词本身放不下一行
		for MeasureTextWidth(word, font) > maxWidth {
			head, rest := splitToWidth(word, font, maxWidth)
			lines = append(lines, head)
			word = rest
		}
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return []string{textStr}
	}
	return lines
}

// splitToWidth 取出能放进 maxWidth 的最长前缀，至少一个字符
func splitToWidth(word string, font *text.GoTextFace, maxWidth float64) (string, string) {
	end := 0
	for i, r := range word {
		next := i + utf8.RuneLen(r)
		if end > 0 && MeasureTextWidth(word[:next], font) > maxWidth {
			break
		}
		end = next
	}
	return word[:end], word[end:]
}

// MeasureTextWidth 测量文本宽度（像素）
func MeasureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	// 使用 Measure 方法测量文本尺寸
	width, _ := text.Measure(textStr, font, 0)
	return width
}

// TruncateText 将文本截断到指定宽度，超出部分以 "…" 结尾
// 用于卡片标题等只允许单行显示的场景
func TruncateText(textStr string, font *text.GoTextFace, maxWidth float64) string {
	if font == nil || MeasureTextWidth(textStr, font) <= maxWidth {
		return textStr
	}

	const ellipsis = "…"
	runes := []rune(textStr)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimRight(string(runes), " ,") + ellipsis
		if MeasureTextWidth(candidate, font) <= maxWidth {
			return candidate
		}
	}
	return ""
}
