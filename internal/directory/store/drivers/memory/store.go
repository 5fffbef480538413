// Package memory is a map-backed store driver used by unit tests and dev
// mode. It mirrors the mongo driver's semantics, including the unique keys
// and the sentinel errors, and can simulate an unreachable store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/store"
)

type Store struct {
	mu sync.RWMutex

	users      map[string]domain.User
	emailIndex map[string]string // lowercase email -> user id
	mosques    map[string]domain.Mosque
	salah      map[string]domain.SalahTimes // masjidID + "|" + date
	events     map[string]domain.Event

	down bool
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]domain.User),
		emailIndex: make(map[string]string),
		mosques:    make(map[string]domain.Mosque),
		salah:      make(map[string]domain.SalahTimes),
		events:     make(map[string]domain.Event),
	}
}

// SetAvailable toggles simulated reachability. While unavailable every
// operation, Ping included, returns ErrUnavailable.
func (s *Store) SetAvailable(up bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = !up
}

func (s *Store) Users() store.Users           { return &usersRepo{s} }
func (s *Store) Mosques() store.Mosques       { return &mosquesRepo{s} }
func (s *Store) SalahTimes() store.SalahTimes { return &salahTimesRepo{s} }
func (s *Store) Events() store.Events         { return &eventsRepo{s} }

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.down {
		return store.ErrUnavailable
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error { return nil }

// checkUp must be called with at least a read lock held.
func (s *Store) checkUp() error {
	if s.down {
		return store.ErrUnavailable
	}
	return nil
}

func salahKey(masjidID string, date time.Time) string {
	return masjidID + "|" + date.UTC().Format("2006-01-02")
}

type usersRepo struct {
	s *Store
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.checkUp(); err != nil {
		return domain.User{}, err
	}

	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.checkUp(); err != nil {
		return domain.User{}, err
	}

	id, ok := r.s.emailIndex[strings.ToLower(email)]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUp(); err != nil {
		return err
	}

	key := strings.ToLower(u.Email)
	if _, taken := r.s.emailIndex[key]; taken {
		return store.ErrAlreadyExists
	}
	if _, taken := r.s.users[u.ID]; taken {
		return store.ErrAlreadyExists
	}

	r.s.users[u.ID] = u
	r.s.emailIndex[key] = u.ID
	return nil
}

func (r *usersRepo) SetMasjidID(ctx context.Context, userID, masjidID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUp(); err != nil {
		return err
	}

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.MasjidID = masjidID
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

type mosquesRepo struct {
	s *Store
}

func (r *mosquesRepo) GetMosqueByID(ctx context.Context, id string) (domain.Mosque, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.checkUp(); err != nil {
		return domain.Mosque{}, err
	}

	m, ok := r.s.mosques[id]
	if !ok {
		return domain.Mosque{}, store.ErrNotFound
	}
	return m, nil
}

func (r *mosquesRepo) SearchMosques(ctx context.Context, f store.MosqueFilter) ([]domain.Mosque, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.checkUp(); err != nil {
		return nil, err
	}

	matches := []domain.Mosque{}
	for _, m := range r.s.mosques {
		if !m.IsApproved {
			continue
		}
		if f.Name != "" {
			needle := strings.ToLower(f.Name)
			if !strings.Contains(strings.ToLower(m.Name), needle) &&
				!strings.Contains(strings.ToLower(m.Address), needle) {
				continue
			}
		}
		if f.City != "" && !strings.Contains(strings.ToLower(m.City), strings.ToLower(f.City)) {
			continue
		}
		// listings are public; the owning account stays out of them
		m.AdminID = ""
		matches = append(matches, m)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *mosquesRepo) CreateMosque(ctx context.Context, m domain.Mosque) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUp(); err != nil {
		return err
	}

	if _, taken := r.s.mosques[m.ID]; taken {
		return store.ErrAlreadyExists
	}
	r.s.mosques[m.ID] = m
	return nil
}

func (r *mosquesRepo) UpdateMosque(ctx context.Context, m domain.Mosque) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUp(); err != nil {
		return err
	}

	existing, ok := r.s.mosques[m.ID]
	if !ok {
		return store.ErrNotFound
	}
	m.AdminID = existing.AdminID
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now().UTC()
	r.s.mosques[m.ID] = m
	return nil
}

type salahTimesRepo struct {
	s *Store
}

func (r *salahTimesRepo) GetSalahTimes(ctx context.Context, masjidID string, date time.Time) (domain.SalahTimes, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.checkUp(); err != nil {
		return domain.SalahTimes{}, err
	}

	st, ok := r.s.salah[salahKey(masjidID, date)]
	if !ok {
		return domain.SalahTimes{}, store.ErrNotFound
	}
	return st, nil
}

func (r *salahTimesRepo) UpsertSalahTimes(ctx context.Context, st domain.SalahTimes) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUp(); err != nil {
		return err
	}

	key := salahKey(st.MasjidID, st.Date)
	if existing, ok := r.s.salah[key]; ok {
		st.ID = existing.ID
		st.CreatedAt = existing.CreatedAt
	}
	r.s.salah[key] = st
	return nil
}

type eventsRepo struct {
	s *Store
}

func (r *eventsRepo) ListEvents(ctx context.Context, f store.EventFilter) ([]domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.s.checkUp(); err != nil {
		return nil, err
	}

	matches := []domain.Event{}
	for _, e := range r.s.events {
		if f.MasjidID != "" && e.MasjidID != f.MasjidID {
			continue
		}
		if f.Upcoming && e.Date.Before(f.After) {
			continue
		}
		matches = append(matches, e)
	}

	if f.Upcoming {
		sort.Slice(matches, func(i, j int) bool { return matches[i].Date.Before(matches[j].Date) })
	} else {
		sort.Slice(matches, func(i, j int) bool { return matches[i].Date.After(matches[j].Date) })
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUp(); err != nil {
		return err
	}

	if _, taken := r.s.events[e.ID]; taken {
		return store.ErrAlreadyExists
	}
	r.s.events[e.ID] = e
	return nil
}
