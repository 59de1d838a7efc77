package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const recentLimit = 5

type AnalyticsRepository struct {
	db *DB
}

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Overview(ctx context.Context, monthStart, now time.Time) (*application.Overview, error) {
	var (
		o   application.Overview
		err error
	)

	if o.Donations.AllTime, err = r.validDonationTotal(ctx, nil); err != nil {
		return nil, err
	}
	if o.Donations.ThisMonth, err = r.validDonationTotal(ctx, &monthStart); err != nil {
		return nil, err
	}

	if o.Pets.Breakdown, err = r.groupByStatus(ctx, `SELECT status, COUNT(*) FROM pets WHERE is_deleted = FALSE GROUP BY status ORDER BY status`); err != nil {
		return nil, err
	}
	for _, c := range o.Pets.Breakdown {
		o.Pets.Total += c.Count
	}

	inquiries, err := r.groupByStatus(ctx, `SELECT status, COUNT(*) FROM adoption_inquiries GROUP BY status`)
	if err != nil {
		return nil, err
	}
	o.Inquiries = statusMap(inquiries, string(domain.InquiryNew), string(domain.InquiryContacted), string(domain.InquiryClosed))

	reviewStatuses := []string{string(domain.ReviewPending), string(domain.ReviewApproved), string(domain.ReviewRejected)}
	adoptions, err := r.groupByStatus(ctx, `SELECT status, COUNT(*) FROM adoption_applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	o.Adoptions = statusMap(adoptions, reviewStatuses...)

	volunteers, err := r.groupByStatus(ctx, `SELECT status, COUNT(*) FROM volunteer_applications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	o.Volunteers = statusMap(volunteers, reviewStatuses...)

	err = r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE start_date_time >= $1`, now).Scan(&o.Events.Upcoming)
	if err != nil {
		return nil, fmt.Errorf("count upcoming events: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+petColumns+` FROM pets p WHERE p.is_deleted = FALSE ORDER BY p.created_at DESC LIMIT $1`, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("query recent pets: %w", err)
	}
	o.RecentActivity.Pets, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Pet, error) {
		return scanPet(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan recent pets: %w", err)
	}

	if o.RecentActivity.Adoptions, err = queryAdoptions(ctx, r.db.Pool,
		adoptionSelect+` ORDER BY a.created_at DESC LIMIT $1`, recentLimit); err != nil {
		return nil, err
	}

	if o.RecentActivity.Donations, err = queryDonations(ctx, r.db.Pool,
		`SELECT `+donationColumns+` FROM donations ORDER BY created_at DESC LIMIT $1`, recentLimit); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *AnalyticsRepository) validDonationTotal(ctx context.Context, since *time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM donations
		WHERE ssl_status = 'VALID' AND ($1::timestamptz IS NULL OR created_at >= $1)
	`, since).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum valid donations: %w", err)
	}
	return total, nil
}

func (r *AnalyticsRepository) groupByStatus(ctx context.Context, query string) ([]application.StatusCount, error) {
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("group by status: %w", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (application.StatusCount, error) {
		var c application.StatusCount
		err := row.Scan(&c.Status, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan status counts: %w", err)
	}
	if counts == nil {
		counts = []application.StatusCount{}
	}
	return counts, nil
}

// statusMap zero-fills every known status so the dashboard keys are stable.
func statusMap(counts []application.StatusCount, known ...string) map[string]int {
	m := make(map[string]int, len(known))
	for _, s := range known {
		m[strings.ToLower(s)] = 0
	}
	for _, c := range counts {
		m[strings.ToLower(c.Status)] = c.Count
	}
	return m
}
