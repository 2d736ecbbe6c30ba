package security

import (
	"context"
	"sync"
	"time"
)

// RevocationSet is the process-local token blacklist. Entries live until
// their embedded expiry passes; Sweep drops the expired ones. Not durable and
// not shared across nodes.
type RevocationSet struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewRevocationSet() *RevocationSet {
	return &RevocationSet{tokens: make(map[string]time.Time)}
}

// Add records token -> expiry. Empty tokens are ignored.
func (s *RevocationSet) Add(token string, expiresAt time.Time) {
	if token == "" {
		return
	}
	s.mu.Lock()
	s.tokens[token] = expiresAt
	s.mu.Unlock()
}

// IsRevoked is true iff the token was added and its expiry is still ahead.
func (s *RevocationSet) IsRevoked(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[token]
	return ok && exp.After(time.Now())
}

// Sweep removes all entries whose expiry has passed and returns the number
// removed.
func (s *RevocationSet) Sweep() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for tok, exp := range s.tokens {
		if !exp.After(now) {
			delete(s.tokens, tok)
			removed++
		}
	}
	return removed
}

func (s *RevocationSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (s *RevocationSet) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Sweep()
			}
		}
	}()
}
