package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"", true},
		{"123", false},
		{"123-456-7890", true},
		{"+91-6006868686", true},
		{"(555) 12-34", false},
		{"phone: 555 123 4567 ext", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidatePhone(tc.phone), "phone %q", tc.phone)
	}
}

func TestValidateURL(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"", true},
		{"not a url", false},
		{"https://linkedin.com/in/me", true},
		{"http://www.example.co.uk", true},
		{"GitHub.com/Someone", true},
		{"example", false},
		{"https://example.c", false},
		{"ftp://example.com", false},
		{"https://exa mple.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidateURL(tc.url), "url %q", tc.url)
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   \n\t"))
	assert.Equal(t, 3, CountWords("one two three"))
	assert.Equal(t, 3, CountWords("  one\n two\t\tthree  "))
}

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "word"
	}
	return strings.Join(parts, " ")
}

func TestValidate_SummaryWordCount(t *testing.T) {
	short := Submission{Summary: words(10)}
	errs := Validate(short)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "at least 30 words")
	assert.Contains(t, errs[0], "currently 10")

	padded := Submission{Summary: words(10) + " " + words(20)}
	assert.Empty(t, Validate(padded))
}

func TestValidate_CollectsErrorsInFieldOrder(t *testing.T) {
	s := Submission{
		FullName:    "Ada",
		Phone:       "123",
		ProfileLink: "not a url",
		Summary:     "too short",
	}

	errs := Validate(s)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "Phone number")
	assert.Contains(t, errs[1], "valid URL")
	assert.Contains(t, errs[2], "Professional summary")
}

func TestValidate_EmptyOptionalFieldsPass(t *testing.T) {
	assert.Empty(t, Validate(Submission{}))
}

func TestSubmission_NormalizeAndFields(t *testing.T) {
	s := Submission{
		FullName:  "   ",
		Title:     "  Engineer ",
		Skills:    " Go, SQL ",
		Template:  " TEMPLATE3 ",
		EnhanceAI: "on",
	}
	s.Normalize()

	assert.Equal(t, "Engineer", s.Title)
	assert.True(t, s.WantsEnhancement())

	f := s.Fields()
	assert.Equal(t, DefaultFullName, f.FullName)
	assert.Equal(t, "Go, SQL", f.Skills)
	assert.Equal(t, Template3, f.Template)
}

func TestParseTemplate(t *testing.T) {
	tmpl, ok := ParseTemplate("template2")
	assert.True(t, ok)
	assert.Equal(t, Template2, tmpl)

	tmpl, ok = ParseTemplate("template9")
	assert.False(t, ok)
	assert.Equal(t, Template1, tmpl)

	tmpl, ok = ParseTemplate("")
	assert.False(t, ok)
	assert.Equal(t, DefaultTemplate, tmpl)

	assert.Len(t, Templates(), 3)
}
