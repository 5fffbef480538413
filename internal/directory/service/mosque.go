package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/store"
	"github.com/openummah/masjidhub/pkg/cryptox"
	"github.com/openummah/masjidhub/pkg/idx"
	"github.com/openummah/masjidhub/pkg/jwtx"
	"github.com/openummah/masjidhub/pkg/slogx"
)

// ErrForbidden means the caller is authenticated but does not administer the
// mosque in question.
var ErrForbidden = errors.New("forbidden")

// SearchLimit caps a mosque listing regardless of the requested page size.
const SearchLimit = 50

type MosqueService struct {
	Store store.Store
}

// MosqueDetail is a listing page payload: the mosque plus today's schedule
// and its next few events. The schedule and events are best-effort; a mosque
// without times for today still renders.
type MosqueDetail struct {
	Mosque         domain.Mosque
	SalahTimes     *domain.SalahTimes
	UpcomingEvents []domain.Event
}

type RegisterMosqueParams struct {
	Mosque domain.Mosque
	Admin  RegisterParams
}

// Search lists approved mosques matching the name/city filter, sorted by
// name and capped at SearchLimit.
func (s *MosqueService) Search(ctx context.Context, name, city string) ([]domain.Mosque, error) {
	return s.Store.Mosques().SearchMosques(ctx, store.MosqueFilter{
		Name:  strings.TrimSpace(name),
		City:  strings.TrimSpace(city),
		Limit: SearchLimit,
	})
}

// Get assembles the detail payload for one mosque.
func (s *MosqueService) Get(ctx context.Context, id string) (MosqueDetail, error) {
	mosque, err := s.Store.Mosques().GetMosqueByID(ctx, id)
	if err != nil {
		return MosqueDetail{}, err
	}

	detail := MosqueDetail{Mosque: mosque, UpcomingEvents: []domain.Event{}}

	now := time.Now().UTC()
	times, err := s.Store.SalahTimes().GetSalahTimes(ctx, id, domain.NormalizeDate(now))
	switch {
	case err == nil:
		detail.SalahTimes = &times
	case errors.Is(err, store.ErrNotFound):
		// no schedule published for today
	default:
		return MosqueDetail{}, fmt.Errorf("load salah times: %w", err)
	}

	events, err := s.Store.Events().ListEvents(ctx, store.EventFilter{
		MasjidID: id,
		Upcoming: true,
		After:    now,
		Limit:    5,
	})
	if err != nil {
		return MosqueDetail{}, fmt.Errorf("load events: %w", err)
	}
	detail.UpcomingEvents = events

	return detail, nil
}

// Register creates a mosque together with its admin account: the user is
// created first, then the mosque with AdminID set, then the mosque id is
// attached back to the user. The document store has no multi-collection
// transaction; on a partial failure the orphaned user simply retries
// registration and hits the email conflict, which is the original system's
// behavior too.
func (s *MosqueService) Register(ctx context.Context, p RegisterMosqueParams) (domain.Mosque, domain.User, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(p.Mosque.Name) == "" || strings.TrimSpace(p.Mosque.Address) == "" ||
		strings.TrimSpace(p.Mosque.City) == "" || strings.TrimSpace(p.Mosque.Country) == "" {
		return domain.Mosque{}, domain.User{}, fmt.Errorf("%w: mosque name, address, city and country are required", ErrValidation)
	}

	p.Admin.Email = strings.ToLower(strings.TrimSpace(p.Admin.Email))
	p.Admin.Name = strings.TrimSpace(p.Admin.Name)
	if p.Admin.Email == "" || p.Admin.Password == "" || p.Admin.Name == "" {
		return domain.Mosque{}, domain.User{}, fmt.Errorf("%w: admin email, password and name are required", ErrValidation)
	}

	hash, err := cryptox.HashPassword(p.Admin.Password)
	if err != nil {
		return domain.Mosque{}, domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := domain.User{
		ID:           idx.New().String(),
		Email:        p.Admin.Email,
		Name:         p.Admin.Name,
		PasswordHash: hash,
		Role:         domain.RoleMasjidAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Mosque{}, domain.User{}, ErrEmailTaken
		}
		return domain.Mosque{}, domain.User{}, fmt.Errorf("create admin user: %w", err)
	}

	mosque := p.Mosque
	mosque.ID = idx.New().String()
	mosque.AdminID = admin.ID
	mosque.IsApproved = false // every new listing awaits review
	mosque.CreatedAt = now
	mosque.UpdatedAt = now

	if err := s.Store.Mosques().CreateMosque(ctx, mosque); err != nil {
		return domain.Mosque{}, domain.User{}, fmt.Errorf("create mosque: %w", err)
	}

	if err := s.Store.Users().SetMasjidID(ctx, admin.ID, mosque.ID); err != nil {
		return domain.Mosque{}, domain.User{}, fmt.Errorf("attach mosque to admin: %w", err)
	}
	admin.MasjidID = mosque.ID

	log.Info("mosque registered",
		slog.String("masjid_id", mosque.ID),
		slog.String("admin_id", admin.ID),
		slog.String("city", mosque.City))

	return mosque, admin.Sanitized(), nil
}

// Update replaces a mosque's mutable fields. Only the mosque's own admin or
// a site admin may update it, and only site admins may flip approval.
func (s *MosqueService) Update(ctx context.Context, actor jwtx.Identity, m domain.Mosque) (domain.Mosque, error) {
	existing, err := s.Store.Mosques().GetMosqueByID(ctx, m.ID)
	if err != nil {
		return domain.Mosque{}, err
	}

	siteAdmin := actor.Role == string(domain.RoleAdmin) || actor.Role == string(domain.RoleSuperAdmin)
	if !siteAdmin && actor.UserID != existing.AdminID {
		return domain.Mosque{}, ErrForbidden
	}

	if !siteAdmin {
		// approval is a moderation decision, not an owner edit
		m.IsApproved = existing.IsApproved
	}

	if err := s.Store.Mosques().UpdateMosque(ctx, m); err != nil {
		return domain.Mosque{}, err
	}
	return s.Store.Mosques().GetMosqueByID(ctx, m.ID)
}
