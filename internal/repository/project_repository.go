package repository

import (
	"context"

	"gorm.io/gorm"

	"sitereport/internal/db"
	"sitereport/internal/model"
)

// ProjectRepository defines project read operations.
type ProjectRepository interface {
	ListActive(ctx context.Context) ([]model.Project, error)
	CountActive(ctx context.Context) (int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// ListActive lists projects with the Active status.
func (r *projectRepository) ListActive(ctx context.Context) ([]model.Project, error) {
	projects, err := activeProjects(r.db.WithContext(ctx))
	return projects, db.Classify("list active projects", err)
}

func (r *projectRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("status = ?", model.ProjectStatusActive).
		Count(&count).Error
	return count, db.Classify("count active projects", err)
}

func activeProjects(tx *gorm.DB) ([]model.Project, error) {
	var projects []model.Project
	err := tx.Where("status = ?", model.ProjectStatusActive).Order("name, id").Find(&projects).Error
	return projects, err
}
