package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const flashCookie = "pilot_flash"

// flashTTL bounds how long undelivered flashes are retained. Clients that
// never come back for the redirect (cookie-less POSTs, closed tabs) would
// otherwise pin their buckets forever.
const flashTTL = 30 * time.Minute

// Flash is a one-shot user-facing message. Category is one of success,
// info, warning, error.
type Flash struct {
	Category string
	Message  string
}

// flashBucket holds one browser's pending flashes plus the time the
// bucket was opened, for expiry.
type flashBucket struct {
	flashes []Flash
	created time.Time
}

// flashStore keeps pending flash messages server-side, keyed by a random
// cookie token, so they survive the POST-redirect-GET round trip.
type flashStore struct {
	mu      sync.Mutex
	pending map[string]flashBucket
}

func newFlashStore() *flashStore {
	return &flashStore{pending: make(map[string]flashBucket)}
}

func (fs *flashStore) add(token string, f Flash) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	now := time.Now()
	fs.pruneLocked(now)

	b := fs.pending[token]
	if b.flashes == nil {
		b.created = now
	}
	b.flashes = append(b.flashes, f)
	fs.pending[token] = b
}

func (fs *flashStore) take(token string) []Flash {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	b, ok := fs.pending[token]
	if !ok {
		return nil
	}
	delete(fs.pending, token)
	return b.flashes
}

// pruneLocked evicts buckets older than flashTTL. Caller holds fs.mu.
func (fs *flashStore) pruneLocked(now time.Time) {
	for token, b := range fs.pending {
		if now.Sub(b.created) > flashTTL {
			delete(fs.pending, token)
		}
	}
}

// flash queues a message for display on the next rendered page.
func (s *Server) flash(c echo.Context, category, message string) {
	token := ""
	if cookie, err := c.Cookie(flashCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		token = uuid.NewString()
		c.SetCookie(&http.Cookie{
			Name:     flashCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})
	}
	s.flashes.add(token, Flash{Category: category, Message: message})
}

// takeFlashes pops any pending messages for this browser.
func (s *Server) takeFlashes(c echo.Context) []Flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return s.flashes.take(cookie.Value)
}
