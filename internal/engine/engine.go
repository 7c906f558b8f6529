package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/nkov/cogwatt/internal/core"
	"github.com/nkov/cogwatt/internal/store"
)

// ioTimeout bounds every store-backed call so a wedged database surfaces as
// a storage error instead of a hang.
const ioTimeout = 5 * time.Second

// Engine owns the budget ledger, forecasting, and suggestion selection for
// all users. Per-user access goes through a Session handle; there is no
// ambient current-user state.
type Engine struct {
	DB      *store.DB
	Clock   core.Clock
	Catalog []core.RestorativeActivity

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates an Engine with the system clock, the built-in catalog, and a
// time-seeded random source.
func New(db *store.DB) *Engine {
	return &Engine{
		DB:      db,
		Clock:   core.SystemClock(),
		Catalog: core.DefaultCatalog,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the suggestion random source. Tests inject a seeded one.
func (e *Engine) SetRand(r *rand.Rand) {
	e.rngMu.Lock()
	e.rng = r
	e.rngMu.Unlock()
}

// newRand derives a fresh rand for one selection. rand.Rand is not safe
// for concurrent use and suggestion requests run in parallel, so the
// shared source is only ever touched under the lock, to seed.
func (e *Engine) newRand() *rand.Rand {
	e.rngMu.Lock()
	seed := e.rng.Int63()
	e.rngMu.Unlock()
	return rand.New(rand.NewSource(seed))
}

// Session binds engine calls to one user. Sessions are cheap; create one
// per request.
func (e *Engine) Session(userID string) (*Session, error) {
	if userID == "" {
		return nil, core.Invalidf("user", "user id required")
	}
	return &Session{eng: e, userID: userID}, nil
}

// Session is a per-user handle over the engine. All reads and the single
// mutation path (LogActivity) hang off it.
type Session struct {
	eng    *Engine
	userID string
}

// UserID returns the user this session is bound to.
func (s *Session) UserID() string { return s.userID }
