package auth

import "sync"

// RevocationList is a denylist of bearer tokens that must be rejected
// before their natural expiry. Membership is monotonic: tokens are only
// ever added, and the list lives for the lifetime of the process.
//
// It is constructed once in main and shared by the auth middleware and
// the logout handler, so it must be safe for concurrent use.
type RevocationList struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]struct{})}
}

// Revoke marks a token as invalid. Revoking the same token twice is a
// no-op; the token does not have to have been issued by this process.
func (l *RevocationList) Revoke(token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.revoked[token] = struct{}{}
}

// IsRevoked reports whether the exact token string has been revoked.
func (l *RevocationList) IsRevoked(token string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.revoked[token]
	return ok
}
