package auth

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevocationListMembership(t *testing.T) {
	l := NewRevocationList()

	assert.False(t, l.IsRevoked("token-a"))

	l.Revoke("token-a")

	assert.True(t, l.IsRevoked("token-a"))
	assert.False(t, l.IsRevoked("token-b"))
}

func TestRevokeIdempotent(t *testing.T) {
	l := NewRevocationList()

	l.Revoke("token-a")
	l.Revoke("token-a")

	assert.True(t, l.IsRevoked("token-a"))
}

func TestRevocationListConcurrent(t *testing.T) {
	l := NewRevocationList()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		token := fmt.Sprintf("token-%d", i)
		go func() {
			defer wg.Done()
			l.Revoke(token)
		}()
		go func() {
			defer wg.Done()
			l.IsRevoked(token)
		}()
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.True(t, l.IsRevoked(fmt.Sprintf("token-%d", i)))
	}
}
