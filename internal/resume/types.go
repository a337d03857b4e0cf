package resume

import "strings"

// Template 标识三种固定版式之一。
type Template string

const (
	Template1 Template = "template1"
	Template2 Template = "template2"
	Template3 Template = "template3"
)

// DefaultTemplate is used when the form omits or garbles the template choice.
const DefaultTemplate = Template1

// DefaultFullName 在姓名留空时写入记录。
const DefaultFullName = "Unnamed"

// TemplateOption pairs a layout with the label shown on the form.
type TemplateOption struct {
	ID    Template
	Label string
}

var templateOptions = []TemplateOption{
	{ID: Template1, Label: "Professional Modern"},
	{ID: Template2, Label: "Two-Column Elegant"},
	{ID: Template3, Label: "Tech Developer"},
}

// Templates 按表单展示顺序返回全部版式。
func Templates() []TemplateOption {
	out := make([]TemplateOption, len(templateOptions))
	copy(out, templateOptions)
	return out
}

// ParseTemplate maps a raw identifier to a known layout. Unknown values fall
// back to DefaultTemplate and report false.
func ParseTemplate(raw string) (Template, bool) {
	candidate := Template(strings.ToLower(strings.TrimSpace(raw)))
	for _, opt := range templateOptions {
		if opt.ID == candidate {
			return candidate, true
		}
	}
	return DefaultTemplate, false
}

// Fields 是一份简历在渲染与持久化之间传递的字段集合。
type Fields struct {
	FullName    string
	Title       string
	Email       string
	Phone       string
	ProfileLink string
	Summary     string
	Experience  string
	Education   string
	Projects    string
	Skills      string
	Template    Template
}

// Submission mirrors the HTML form. Values are bound by gin and checked by
// Validate; the validate tags are resolved by this package's validator.
type Submission struct {
	FullName    string `form:"full_name"`
	Title       string `form:"title"`
	Email       string `form:"email"`
	Phone       string `form:"phone" validate:"omitempty,phone_digits"`
	ProfileLink string `form:"profile_link" validate:"omitempty,loose_url"`
	Summary     string `form:"summary" validate:"omitempty,min_words=30"`
	Experience  string `form:"experience"`
	Education   string `form:"education"`
	Projects    string `form:"projects"`
	Skills      string `form:"skills"`
	Template    string `form:"template"`
	EnhanceAI   string `form:"enhance_ai"`
}

// Normalize trims every field in place.
func (s *Submission) Normalize() {
	for _, field := range []*string{
		&s.FullName, &s.Title, &s.Email, &s.Phone, &s.ProfileLink,
		&s.Summary, &s.Experience, &s.Education, &s.Projects, &s.Skills,
		&s.Template, &s.EnhanceAI,
	} {
		*field = strings.TrimSpace(*field)
	}
}

// WantsEnhancement reports whether the AI checkbox was ticked.
func (s Submission) WantsEnhancement() bool {
	return s.EnhanceAI == "on"
}

// Fields 将表单转换为可入库的字段，并补齐默认姓名与版式。
func (s Submission) Fields() Fields {
	tmpl, _ := ParseTemplate(s.Template)
	name := s.FullName
	if name == "" {
		name = DefaultFullName
	}
	return Fields{
		FullName:    name,
		Title:       s.Title,
		Email:       s.Email,
		Phone:       s.Phone,
		ProfileLink: s.ProfileLink,
		Summary:     s.Summary,
		Experience:  s.Experience,
		Education:   s.Education,
		Projects:    s.Projects,
		Skills:      s.Skills,
		Template:    tmpl,
	}
}
