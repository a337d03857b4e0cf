package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ResumeRepository 封装简历表的插入与按 ID 查询。
type ResumeRepository struct {
	db *gorm.DB
}

// NewResumeRepository wraps an initialised GORM handle.
func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

// Create inserts the record and fills in its ID.
func (r *ResumeRepository) Create(ctx context.Context, record *Resume) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("create resume: %w", err)
	}
	return nil
}

// Get loads a record by ID. Missing rows surface as gorm.ErrRecordNotFound.
func (r *ResumeRepository) Get(ctx context.Context, id uint) (*Resume, error) {
	var record Resume
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, fmt.Errorf("get resume %d: %w", id, err)
	}
	return &record, nil
}
