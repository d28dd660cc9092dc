package secrets

import (
	"sync"
	"time"

	"github.com/kevin07696/eway-gateway/internal/adapters/ports"
)

// credentialCache holds one resolved credential triple with a TTL.
// Credential sources are consulted on every gateway call, so without a
// cache every card charge would also round-trip to the secret store.
type credentialCache struct {
	mu        sync.Mutex
	enabled   bool
	ttl       time.Duration
	creds     ports.Credentials
	expiresAt time.Time
}

func (c *credentialCache) get() (ports.Credentials, bool) {
	if !c.enabled {
		return ports.Credentials{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.expiresAt.IsZero() || time.Now().After(c.expiresAt) {
		return ports.Credentials{}, false
	}
	return c.creds, true
}

func (c *credentialCache) set(creds ports.Credentials) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = creds
	c.expiresAt = time.Now().Add(c.ttl)
}
