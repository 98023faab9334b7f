package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/ganot/committee/internal/apperror"
)

const defaultListLimit = 100

// Service appends to and reads meeting activity logs.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Record appends entries in order, stamping any without a time. Every entry
// needs a meeting.
func (s *Service) Record(ctx context.Context, entries ...ActivityEntry) ([]ActivityEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	stamped := make([]ActivityEntry, len(entries))
	at := s.now().UTC()
	for i, e := range entries {
		if e.MeetingID == "" {
			return nil, ErrInvalidInput
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = at
		}
		stamped[i] = e
	}
	if err := s.repo.Append(ctx, stamped); err != nil {
		return nil, apperror.Persistence("recording activity", err)
	}
	if s.logger != nil {
		s.logger.Debug("activity recorded", "meeting_id", stamped[0].MeetingID, "entries", len(stamped))
	}
	return stamped, nil
}

// GetRecentActivity lists a meeting's entries, newest first.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	if opts.MeetingID == "" {
		return nil, ErrInvalidInput
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, apperror.Persistence("listing activity", err)
	}
	return entries, nil
}
