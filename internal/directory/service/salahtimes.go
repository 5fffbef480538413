package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/pkg/idx"
	"github.com/openummah/masjidhub/pkg/jwtx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

type SalahTimesService struct {
	Store store.Store
}

// Get returns the schedule for a mosque on the given day. The date is
// normalized so callers can pass any timestamp within the day.
func (s *SalahTimesService) Get(ctx context.Context, masjidID string, date time.Time) (domain.SalahTimes, error) {
	if masjidID == "" {
		return domain.SalahTimes{}, fmt.Errorf("%w: masjid id is required", ErrValidation)
	}
	return s.Store.SalahTimes().GetSalahTimes(ctx, masjidID, domain.NormalizeDate(date))
}

// Upsert writes a day's schedule, replacing any existing record for that
// mosque and day. Only the mosque's admin or a site admin may write. The
// second return reports whether a new record was created rather than an
// existing day replaced.
func (s *SalahTimesService) Upsert(ctx context.Context, actor jwtx.Identity, st domain.SalahTimes) (domain.SalahTimes, bool, error) {
	if st.MasjidID == "" {
		return domain.SalahTimes{}, false, fmt.Errorf("%w: masjid id is required", ErrValidation)
	}
	if err := st.Validate(); err != nil {
		return domain.SalahTimes{}, false, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.authorize(ctx, actor, st.MasjidID); err != nil {
		return domain.SalahTimes{}, false, err
	}

	now := time.Now().UTC()
	if st.Date.IsZero() {
		st.Date = now
	}
	st.Date = domain.NormalizeDate(st.Date)
	st.ID = idx.New().String()
	st.CreatedAt = now
	st.UpdatedAt = now

	created := false
	if _, err := s.Store.SalahTimes().GetSalahTimes(ctx, st.MasjidID, st.Date); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return domain.SalahTimes{}, false, err
		}
		created = true
	}

	if err := s.Store.SalahTimes().UpsertSalahTimes(ctx, st); err != nil {
		return domain.SalahTimes{}, false, err
	}

	stored, err := s.Store.SalahTimes().GetSalahTimes(ctx, st.MasjidID, st.Date)
	if err != nil {
		return domain.SalahTimes{}, false, err
	}

	slogx.FromContext(ctx).Info("salah times updated",
		slog.String("masjid_id", st.MasjidID),
		slog.Time("date", st.Date),
		slog.Bool("created", created))
	return stored, created, nil
}

func (s *SalahTimesService) authorize(ctx context.Context, actor jwtx.Identity, masjidID string) error {
	if actor.Role == string(domain.RoleAdmin) || actor.Role == string(domain.RoleSuperAdmin) {
		return nil
	}

	mosque, err := s.Store.Mosques().GetMosqueByID(ctx, masjidID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("load mosque: %w", err)
	}
	if mosque.AdminID != actor.UserID {
		return ErrForbidden
	}
	return nil
}
