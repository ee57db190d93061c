package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/gracepoint/church-admin-backend/internal/donation"
	"github.com/gracepoint/church-admin-backend/internal/event"
	"github.com/gracepoint/church-admin-backend/internal/member"
	"github.com/gracepoint/church-admin-backend/internal/registration"
)

// Change is a month-over-month comparison for the dashboard card.
type Change struct {
	Percent  int  `json:"percent"`
	Increase bool `json:"increase"`
}

// RegistrationsByMonth buckets registrations into Jan..Dec counts for
// the given year. Records from other years are excluded.
func RegistrationsByMonth(regs []registration.RegistrationDetail, year int) [12]int {
	var buckets [12]int
	for _, reg := range regs {
		if reg.CreatedAt.Year() == year {
			buckets[reg.CreatedAt.Month()-1]++
		}
	}
	return buckets
}

// DonationsByMonth buckets donation amounts into Jan..Dec sums for the
// given year, keyed on when the donation was recorded.
func DonationsByMonth(dons []donation.Donation, year int) [12]float64 {
	var buckets [12]float64
	for _, d := range dons {
		if d.CreatedAt.Year() == year {
			buckets[d.CreatedAt.Month()-1] += d.Amount
		}
	}
	return buckets
}

// DonationChange compares this calendar month's donation sum to last
// month's. A zero last month reads as a 100% increase when this month
// is nonzero, and 0% otherwise.
func DonationChange(dons []donation.Donation, now time.Time) Change {
	thisStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastStart := thisStart.AddDate(0, -1, 0)

	var thisMonth, lastMonth float64
	for _, d := range dons {
		created := d.CreatedAt
		if created.Year() == thisStart.Year() && created.Month() == thisStart.Month() {
			thisMonth += d.Amount
		} else if created.Year() == lastStart.Year() && created.Month() == lastStart.Month() {
			lastMonth += d.Amount
		}
	}

	if lastMonth == 0 {
		if thisMonth > 0 {
			return Change{Percent: 100, Increase: true}
		}
		return Change{Percent: 0, Increase: true}
	}

	// Round halves toward positive infinity, so -12.5 lands on -12.
	pct := int(math.Floor((thisMonth-lastMonth)/lastMonth*100 + 0.5))
	if pct < 0 {
		pct = -pct
	}
	return Change{Percent: pct, Increase: thisMonth >= lastMonth}
}

// UpcomingEvents keeps events dated today or later, ascending, at most
// five. Event dates are YYYY-MM-DD strings so plain comparison sorts
// chronologically.
func UpcomingEvents(events []event.Event, today string) []event.Event {
	upcoming := make([]event.Event, 0, 5)
	for _, e := range events {
		if e.Date >= today {
			upcoming = append(upcoming, e)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Date < upcoming[j].Date })
	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}
	return upcoming
}

// UpcomingBirthdays projects each member's birthday onto the current
// year and keeps those landing within the next seven days inclusive.
// A late-December birthday checked in the last week of the year does
// not wrap into January.
func UpcomingBirthdays(members []member.Member, today time.Time) []member.Member {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	upcoming := make([]member.Member, 0)
	for _, m := range members {
		if m.Birthday == "" {
			continue
		}
		bday, err := time.Parse("2006-01-02", m.Birthday)
		if err != nil {
			continue
		}
		projected := time.Date(start.Year(), bday.Month(), bday.Day(), 0, 0, 0, 0, time.UTC)
		if !projected.Before(start) && !projected.After(end) {
			upcoming = append(upcoming, m)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		bi, _ := time.Parse("2006-01-02", upcoming[i].Birthday)
		bj, _ := time.Parse("2006-01-02", upcoming[j].Birthday)
		if bi.Month() != bj.Month() {
			return bi.Month() < bj.Month()
		}
		return bi.Day() < bj.Day()
	})
	return upcoming
}

// AvailableYears is the union of years seen across registrations and
// donations, newest first, defaulting to the current year.
func AvailableYears(regs []registration.RegistrationDetail, dons []donation.Donation, now time.Time) []int {
	seen := make(map[int]bool)
	for _, reg := range regs {
		seen[reg.CreatedAt.Year()] = true
	}
	for _, d := range dons {
		seen[d.CreatedAt.Year()] = true
	}
	if len(seen) == 0 {
		return []int{now.Year()}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
