package render

import (
	"html/template"

	"resumeBuilder/internal/resume"
)

// 页面模板名称。
const (
	PageForm     = "form"
	PagePreview  = "preview"
	PageNotFound = "not_found"
)

// FormPage is the data for the submission form.
type FormPage struct {
	Title     string
	Flashes   []string
	Errors    []string
	Form      resume.Submission
	Templates []resume.TemplateOption
	AIEnabled bool
}

// PreviewPage 用于预览页以及 PDF 失败后的回退页面。
type PreviewPage struct {
	Title   string
	Flashes []string
	ID      uint
	Record  resume.Fields
	Resume  template.HTML
}

// NotFoundPage is shown for unknown résumé IDs.
type NotFoundPage struct {
	Title   string
	Flashes []string
	Message string
}
