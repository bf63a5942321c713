package memory

import (
	"context"
	"sync"

	"github.com/lvapl/StayFinder/internal/domain"
)

// Repo holds the fixture dataset in memory. Hotels are read-only after
// construction; the user table takes writes (register, profile update) for
// the lifetime of the process.
type Repo struct {
	hotels []domain.Hotel
	byCode map[int64]int

	mu     sync.RWMutex
	users  map[string]domain.UserAccount // keyed by email
	nextID int64
}

// New builds a repo from the embedded fixture dataset and the two seed
// accounts.
func New() (*Repo, error) {
	hotels, err := loadHotels()
	if err != nil {
		return nil, err
	}
	return NewWith(hotels, seedUsers()), nil
}

// NewWith builds a repo over caller-supplied data. Used by tests.
func NewWith(hotels []domain.Hotel, users []domain.UserAccount) *Repo {
	r := &Repo{
		hotels: hotels,
		byCode: make(map[int64]int, len(hotels)),
		users:  make(map[string]domain.UserAccount, len(users)),
	}
	for i, h := range hotels {
		r.byCode[h.Code] = i
	}
	for _, u := range users {
		r.users[u.Email] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *Repo) ListHotels(_ context.Context) ([]domain.Hotel, error) {
	// copy so callers can sort without touching the canonical order
	out := make([]domain.Hotel, len(r.hotels))
	copy(out, r.hotels)
	return out, nil
}

func (r *Repo) GetHotel(_ context.Context, code int64) (domain.Hotel, error) {
	i, ok := r.byCode[code]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return r.hotels[i], nil
}

// Cities returns the distinct cities in fixture order.
func (r *Repo) Cities(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{}, 8)
	var out []string
	for _, h := range r.hotels {
		if _, ok := seen[h.City]; ok {
			continue
		}
		seen[h.City] = struct{}{}
		out = append(out, h.City)
	}
	return out, nil
}

func (r *Repo) FindByEmail(_ context.Context, email string) (domain.UserAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return domain.UserAccount{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *Repo) Create(_ context.Context, u domain.UserAccount) (domain.UserAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return domain.UserAccount{}, domain.ErrEmailTaken
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.Email] = u
	return u, nil
}

func (r *Repo) Update(_ context.Context, email string, p domain.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return domain.ErrNotFound
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Country != nil {
		u.Country = *p.Country
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	r.users[email] = u
	return nil
}
