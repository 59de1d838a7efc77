package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
)

type AnalyticsService struct {
	reader application.AnalyticsReader
	logger *slog.Logger
	now    func() time.Time
}

func NewAnalyticsService(reader application.AnalyticsReader, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{reader: reader, logger: logger, now: time.Now}
}

// Overview builds the dashboard snapshot; "this month" starts at midnight UTC on the 1st.
func (s *AnalyticsService) Overview(ctx context.Context) (*application.Overview, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	overview, err := s.reader.Overview(ctx, monthStart, now)
	if err != nil {
		s.logger.Error("failed to build analytics overview", "error", err)
		return nil, application.NewInternalError(err)
	}
	return overview, nil
}
