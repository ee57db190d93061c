package event

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repository) Update(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Event{}, "id = ?", id).Error
}
