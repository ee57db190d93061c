package member

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	FindByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Member, error) {
	var m Member
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) List(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Member{}, "id = ?", id).Error
}
