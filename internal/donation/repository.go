package donation

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	FindByID(ctx context.Context, id string) (*Donation, error)
	List(ctx context.Context) ([]Donation, error)
	Update(ctx context.Context, d *Donation) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, now time.Time) (*Stats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Donation, error) {
	var d Donation
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) List(ctx context.Context) ([]Donation, error) {
	var donations []Donation
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *repository) Update(ctx context.Context, d *Donation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Donation{}, "id = ?", id).Error
}

// Stats buckets by created_at, matching the dashboard charts. Donor
// count is distinct names across all donations, not just this year.
func (r *repository) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	nextYear := yearStart.AddDate(1, 0, 0)

	var stats Stats
	err := r.db.WithContext(ctx).Model(&Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("created_at >= ? AND created_at < ?", monthStart, nextMonth).
		Scan(&stats.MonthTotal).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("created_at >= ? AND created_at < ?", yearStart, nextYear).
		Scan(&stats.YearTotal).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&Donation{}).
		Distinct("donor_name").
		Count(&stats.DonorCount).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
