// Package render turns stored résumé fields into HTML using the embedded
// layouts and page templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"resumeBuilder/internal/resume"
)

//go:embed templates static
var assets embed.FS

var stylesheet = mustReadAsset("static/style.css")

// Renderer 持有启动时解析好的模板集合，可被多个请求并发使用。
type Renderer struct {
	templates *template.Template
}

// New parses every page and layout template once.
func New() (*Renderer, error) {
	tmpl, err := template.New("pages").
		Funcs(FuncMap()).
		ParseFS(assets, "templates/*.html", "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for _, opt := range resume.Templates() {
		if tmpl.Lookup(string(opt.ID)) == nil {
			return nil, fmt.Errorf("layout %q is not defined", opt.ID)
		}
	}
	return &Renderer{templates: tmpl}, nil
}

// Templates exposes the parsed set so gin can render pages directly.
func (r *Renderer) Templates() *template.Template {
	return r.templates
}

// Resume 按记录选定的版式渲染 HTML 片段；未知版式使用默认版式。
func (r *Renderer) Resume(f resume.Fields) (template.HTML, error) {
	layout, _ := resume.ParseTemplate(string(f.Template))

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, string(layout), f); err != nil {
		return "", fmt.Errorf("render %s: %w", layout, err)
	}
	// 片段由 html/template 生成，已完成转义。
	return template.HTML(buf.String()), nil
}

// Page executes one of the page templates (form, preview, not_found).
func (r *Renderer) Page(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render page %s: %w", name, err)
	}
	return nil
}

// Stylesheet returns the fixed stylesheet shared by the pages and PDF export.
func Stylesheet() string {
	return stylesheet
}

// StaticFS serves the embedded static directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(fmt.Sprintf("static assets: %v", err))
	}
	return sub
}

// Document 将版式片段包装成内联样式的独立 HTML 文档，供 PDF 转换器使用。
func Document(fragment template.HTML) string {
	var b strings.Builder
	b.WriteString("<html><head><meta charset='utf-8'><style>")
	b.WriteString(stylesheet)
	b.WriteString("</style></head><body>")
	b.WriteString(string(fragment))
	b.WriteString("</body></html>")
	return b.String()
}

func mustReadAsset(name string) string {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read embedded asset %s: %v", name, err))
	}
	return string(data)
}
