package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
)

// UserRepo is an in-memory implementation of the user port. It backs unit
// tests; production always uses the postgres repo.
type UserRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byLogin map[string]string // login -> id
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byLogin: make(map[string]string),
	}
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byLogin[login]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) LoginExists(ctx context.Context, login string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byLogin[login]
	return ok, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byLogin[u.Login]; ok {
		return domain.User{}, domain.ErrLoginExists()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.byID[u.ID] = u
	r.byLogin[u.Login] = u.ID
	return u, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	delete(r.byID, userID)
	delete(r.byLogin, u.Login)
	return nil
}

func (r *UserRepo) List(ctx context.Context, page, limit int, search string) ([]domain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []domain.User
	for _, u := range r.byID {
		if search == "" || strings.Contains(strings.ToLower(u.Login), strings.ToLower(search)) {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	offset := (page - 1) * limit
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *UserRepo) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.User
	for _, u := range r.byID {
		if strings.Contains(strings.ToLower(u.Login), strings.ToLower(query)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Login < out[j].Login })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
