package render

import (
	"html/template"
	"strings"
)

// FuncMap returns the helpers available inside layouts.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"nl2br": NL2BR,
		"lines": SplitLines,
	}
}

// NL2BR escapes each line, then joins the lines with <br>.
func NL2BR(text string) template.HTML {
	lines := SplitLines(text)
	for i, line := range lines {
		lines[i] = template.HTMLEscapeString(line)
	}
	return template.HTML(strings.Join(lines, "<br>"))
}

// SplitLines 按 \n、\r\n、\r 切分；末尾换行不会产生额外空行，中间空行保留。
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
