package memory

import (
	"context"
	"sync"
	"time"

	"github.com/novachat/nova-chat-server/internal/domain"
)

type refreshRecord struct {
	userID    string
	expiresAt time.Time
}

// RefreshRepo stores refresh-token fingerprints in a map.
type RefreshRepo struct {
	mu      sync.Mutex
	records map[string]refreshRecord // token_hash -> record
}

func NewRefreshRepo() *RefreshRepo {
	return &RefreshRepo{records: make(map[string]refreshRecord)}
}

func (r *RefreshRepo) Store(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[tokenHash] = refreshRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *RefreshRepo) UserIDByHash(ctx context.Context, tokenHash string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[tokenHash]
	if !ok || !rec.expiresAt.After(time.Now()) {
		return "", domain.ErrInvalidRefreshToken()
	}
	return rec.userID, nil
}

func (r *RefreshRepo) Rotate(ctx context.Context, oldHash, newHash, userID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[newHash] = refreshRecord{userID: userID, expiresAt: expiresAt}
	delete(r.records, oldHash)
	return nil
}

func (r *RefreshRepo) Delete(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, tokenHash)
	return nil
}

func (r *RefreshRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for hash, rec := range r.records {
		if !rec.expiresAt.After(now) {
			delete(r.records, hash)
			n++
		}
	}
	return n, nil
}

// Len reports the live record count, for tests.
func (r *RefreshRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
