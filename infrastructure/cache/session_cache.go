package cache

import (
	"sync"
	"time"

	"keepstock/models"
)

// UserSessionCache stores live sessions by token so most requests skip the
// sessions table.
type UserSessionCache struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewUserSessionCache() *UserSessionCache {
	return &UserSessionCache{sessions: make(map[string]models.Session)}
}

func (c *UserSessionCache) AddSession(s models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = s
}

func (c *UserSessionCache) FindSessionBySessionToken(token string) (models.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[token]
	return s, ok
}

func (c *UserSessionCache) DeleteSessionBySessionToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
}

// PurgeExpired drops sessions that expired before now and returns how many.
func (c *UserSessionCache) PurgeExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for token, s := range c.sessions {
		if s.ExpiredAt(now) {
			delete(c.sessions, token)
			n++
		}
	}
	return n
}

func (c *UserSessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// ReplaceUser swaps the user on every cached session it owns and lets
// decorate recompute what depends on it. Returns the number of sessions
// touched.
func (c *UserSessionCache) ReplaceUser(user models.User, decorate func(*models.Session)) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for token, s := range c.sessions {
		if s.UserID != user.ID {
			continue
		}
		s.User = user
		if decorate != nil {
			decorate(&s)
		}
		c.sessions[token] = s
		n++
	}
	return n
}
