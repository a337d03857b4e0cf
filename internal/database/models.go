package database

import (
	"time"

	"resumeBuilder/internal/resume"
)

// Resume 表示一次成功提交的简历，创建后不再修改。
type Resume struct {
	ID          uint   `gorm:"primaryKey"`
	FullName    string `gorm:"size:250;not null"`
	Title       string `gorm:"size:250"`
	Email       string `gorm:"size:250"`
	Phone       string `gorm:"size:100"`
	ProfileLink string `gorm:"size:500"`
	Summary     string `gorm:"type:text"`
	Experience  string `gorm:"type:text"`
	Education   string `gorm:"type:text"`
	Projects    string `gorm:"type:text"`
	Skills      string `gorm:"type:text"`
	Template    string `gorm:"size:80;default:template1"`
	CreatedAt   time.Time
}

// NewResume builds a model from validated form fields.
func NewResume(f resume.Fields) *Resume {
	return &Resume{
		FullName:    f.FullName,
		Title:       f.Title,
		Email:       f.Email,
		Phone:       f.Phone,
		ProfileLink: f.ProfileLink,
		Summary:     f.Summary,
		Experience:  f.Experience,
		Education:   f.Education,
		Projects:    f.Projects,
		Skills:      f.Skills,
		Template:    string(f.Template),
	}
}

// Fields 转换为渲染使用的字段；未知版式回落到默认版式。
func (r Resume) Fields() resume.Fields {
	tmpl, _ := resume.ParseTemplate(r.Template)
	return resume.Fields{
		FullName:    r.FullName,
		Title:       r.Title,
		Email:       r.Email,
		Phone:       r.Phone,
		ProfileLink: r.ProfileLink,
		Summary:     r.Summary,
		Experience:  r.Experience,
		Education:   r.Education,
		Projects:    r.Projects,
		Skills:      r.Skills,
		Template:    tmpl,
	}
}
