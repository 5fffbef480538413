package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/pkg/idx"
	"github.com/openummah/masjidhub/pkg/jwtx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

// DefaultEventLimit bounds a listing when the caller does not ask for a
// specific page size.
const DefaultEventLimit = 10

type EventService struct {
	Store store.Store
}

type ListEventsParams struct {
	MasjidID string
	Upcoming bool
	Limit    int
}

func (s *EventService) List(ctx context.Context, p ListEventsParams) ([]domain.Event, error) {
	limit := p.Limit
	if limit <= 0 || limit > 100 {
		limit = DefaultEventLimit
	}
	return s.Store.Events().ListEvents(ctx, store.EventFilter{
		MasjidID: p.MasjidID,
		Upcoming: p.Upcoming,
		After:    time.Now().UTC(),
		Limit:    limit,
	})
}

// Create publishes an event for a mosque. Only the mosque's admin or a site
// admin may publish.
func (s *EventService) Create(ctx context.Context, actor jwtx.Identity, e domain.Event) (domain.Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	if e.MasjidID == "" || e.Title == "" || e.Date.IsZero() {
		return domain.Event{}, fmt.Errorf("%w: masjid id, title and date are required", ErrValidation)
	}
	if e.IsRecurring && !e.RecurringPattern.Valid() {
		return domain.Event{}, fmt.Errorf("%w: unknown recurring pattern %q", ErrValidation, e.RecurringPattern)
	}
	if !e.IsRecurring {
		e.RecurringPattern = ""
	}

	if err := s.authorize(ctx, actor, e.MasjidID); err != nil {
		return domain.Event{}, err
	}

	now := time.Now().UTC()
	e.ID = idx.New().String()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.Store.Events().CreateEvent(ctx, e); err != nil {
		return domain.Event{}, err
	}

	slogx.FromContext(ctx).Info("event created",
		slog.String("event_id", e.ID),
		slog.String("masjid_id", e.MasjidID))
	return e, nil
}

func (s *EventService) authorize(ctx context.Context, actor jwtx.Identity, masjidID string) error {
	if actor.Role == string(domain.RoleAdmin) || actor.Role == string(domain.RoleSuperAdmin) {
		return nil
	}

	mosque, err := s.Store.Mosques().GetMosqueByID(ctx, masjidID)
	if err != nil {
		return err
	}
	if mosque.AdminID != actor.UserID {
		return ErrForbidden
	}
	return nil
}
