package registration

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, reg *Registration) error
	FindByID(ctx context.Context, id string) (*Registration, error)
	ListDetailed(ctx context.Context) ([]RegistrationDetail, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reg *Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Registration, error) {
	var reg Registration
	if err := r.db.WithContext(ctx).First(&reg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *repository) ListDetailed(ctx context.Context) ([]RegistrationDetail, error) {
	var rows []registrationRow
	err := r.db.WithContext(ctx).
		Table("registrations").
		Select(`registrations.id, registrations.member_id, registrations.event_id, registrations.created_at,
			members.name AS member_name, members.email AS member_email,
			events.name AS event_name, events.date AS event_date`).
		Joins("JOIN members ON members.id = registrations.member_id").
		Joins("JOIN events ON events.id = registrations.event_id").
		Order("registrations.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	details := make([]RegistrationDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.toDetail())
	}
	return details, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Registration{}, "id = ?", id).Error
}
