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
// 换行规则:
//   - 文本中的换行符总是断行
//   - 优先在空格处断行
//   - 如果单词太长超过最大宽度，强制断行
//   - 支持中文和英文混合文本
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if font == nil {
		return []string{textStr}
	}
	return WrapTextFunc(textStr, func(s string) float64 {
		return measureTextWidth(s, font)
	}, maxWidth)
}

// WrapTextFunc 与 WrapText 相同，但使用任意宽度度量
// 终端前端用它按单元格宽度换行
func WrapTextFunc(textStr string, measure func(string) float64, maxWidth float64) []string {
	if textStr == "" || measure == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapLine(paragraph, measure, maxWidth)...)
	}
	return lines
}

func wrapLine(textStr string, measure func(string) float64, maxWidth float64) []string {
	// 如果文本宽度小于最大宽度，直接返回
	if measure(textStr) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	// 按字符遍历（支持多字节字符）
	for len(textStr) > 0 {
		r, size := utf8.DecodeRuneInString(textStr)
		char := string(r)
		textStr = textStr[size:]

		testLine := currentLine + char
		if measure(testLine) <= maxWidth {
			currentLine = testLine
			continue
		}

		// 单个字符就超宽，强制单独成行
		if currentLine == "" {
			lines = append(lines, char)
			continue
		}

		// 超宽的是空格：在此断行
		if char == " " {
			lines = append(lines, strings.TrimSpace(currentLine))
			currentLine = ""
			continue
		}

		// 回退到最后一个空格处断行，单词整体移到下一行
		if cut := strings.LastIndex(currentLine, " "); cut > 0 {
			lines = append(lines, strings.TrimSpace(currentLine[:cut]))
			currentLine = strings.TrimLeft(currentLine[cut:], " ") + char
			continue
		}

		lines = append(lines, strings.TrimSpace(currentLine))
		currentLine = char
	}

	if currentLine != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}

	// 使用 Measure 方法测量文本尺寸
	width, _ := text.Measure(textStr, font, 0)
	return width
}
