package dashboard

import (
	"context"
	"time"

	"github.com/gracepoint/church-admin-backend/internal/donation"
	"github.com/gracepoint/church-admin-backend/internal/event"
	"github.com/gracepoint/church-admin-backend/internal/member"
	"github.com/gracepoint/church-admin-backend/internal/registration"
)

// Summary backs the dashboard landing cards.
type Summary struct {
	Members        int64   `json:"members"`
	Events         int64   `json:"events"`
	Registrations  int64   `json:"registrations"`
	Donations      int64   `json:"donations"`
	MonthDonations float64 `json:"month_donations"`
	DonationChange Change  `json:"donation_change"`
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
	RegistrationsByMonth(ctx context.Context, year int) ([12]int, error)
	DonationsByMonth(ctx context.Context, year int) ([12]float64, error)
	Years(ctx context.Context) ([]int, error)
	UpcomingEvents(ctx context.Context) ([]event.Event, error)
	UpcomingBirthdays(ctx context.Context) ([]member.Member, error)
}

type service struct {
	members       member.Repository
	events        event.Repository
	registrations registration.Repository
	donations     donation.Repository
}

func NewService(members member.Repository, events event.Repository, registrations registration.Repository, donations donation.Repository) Service {
	return &service{
		members:       members,
		events:        events,
		registrations: registrations,
		donations:     donations,
	}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrations.ListDetailed(ctx)
	if err != nil {
		return nil, err
	}
	dons, err := s.donations.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var monthSum float64
	for _, d := range dons {
		if d.CreatedAt.Year() == now.Year() && d.CreatedAt.Month() == now.Month() {
			monthSum += d.Amount
		}
	}

	return &Summary{
		Members:        int64(len(members)),
		Events:         int64(len(events)),
		Registrations:  int64(len(regs)),
		Donations:      int64(len(dons)),
		MonthDonations: monthSum,
		DonationChange: DonationChange(dons, now),
	}, nil
}

func (s *service) RegistrationsByMonth(ctx context.Context, year int) ([12]int, error) {
	regs, err := s.registrations.ListDetailed(ctx)
	if err != nil {
		return [12]int{}, err
	}
	return RegistrationsByMonth(regs, year), nil
}

func (s *service) DonationsByMonth(ctx context.Context, year int) ([12]float64, error) {
	dons, err := s.donations.List(ctx)
	if err != nil {
		return [12]float64{}, err
	}
	return DonationsByMonth(dons, year), nil
}

func (s *service) Years(ctx context.Context) ([]int, error) {
	regs, err := s.registrations.ListDetailed(ctx)
	if err != nil {
		return nil, err
	}
	dons, err := s.donations.List(ctx)
	if err != nil {
		return nil, err
	}
	return AvailableYears(regs, dons, time.Now()), nil
}

func (s *service) UpcomingEvents(ctx context.Context) ([]event.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	upcoming := UpcomingEvents(events, now.Format("2006-01-02"))
	for i := range upcoming {
		upcoming[i].Status = upcoming[i].DeriveStatus(now)
	}
	return upcoming, nil
}

func (s *service) UpcomingBirthdays(ctx context.Context) ([]member.Member, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}
	return UpcomingBirthdays(members, time.Now()), nil
}
