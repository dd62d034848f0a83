// Package store holds the session-scoped state containers: session, catalog,
// categories, cart, favorites and orders. Each container mirrors one slice of
// backend state, mutates itself only after the backend has confirmed the
// corresponding change, and fires a pkg/event notification so UI layers can
// re-render.
//
// There are no globals: store.New builds one set of containers around one
// api.Client, and that set belongs to one session.
package store

import (
	"context"
	"sync"

	"github.com/shashiranjanraj/dokon/config"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/logger"
	"github.com/shashiranjanraj/dokon/pkg/workerpool"
)

// base carries the loading flag and last-error message every container
// exposes.
//
// Two locks on purpose: opMu serializes mutating operations and is held
// across the remote call, which is what keeps two in-flight mutations on the
// same container from interleaving (the backend applies them in the order we
// send them, and so do we). mu guards the state fields and is only ever held
// briefly, so Loading/Err/snapshot reads never block behind a slow call.
type base struct {
	opMu sync.Mutex
	mu   sync.RWMutex

	loading bool
	errMsg  string
}

// Loading reports whether an operation is in flight.
func (b *base) Loading() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loading
}

// Err returns the human-readable message of the last failed operation, or ""
// after a success. UI layers poll this instead of handling error returns.
func (b *base) Err() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.errMsg
}

func (b *base) start() {
	b.mu.Lock()
	b.loading = true
	b.errMsg = ""
	b.mu.Unlock()
}

func (b *base) finish() {
	b.mu.Lock()
	b.loading = false
	b.mu.Unlock()
}

func (b *base) fail(err error) {
	b.mu.Lock()
	b.loading = false
	b.errMsg = api.MessageOf(err)
	b.mu.Unlock()
}

// Stores is one session's full set of containers.
type Stores struct {
	API        *api.Client
	Session    *Session
	Catalog    *Catalog
	Categories *Categories
	Cart       *Cart
	Favorites  *Favorites
	Orders     *Orders
}

// New builds the containers for one session against the configured backend.
func New(opts ...api.Option) *Stores {
	return NewWithClient(api.New(config.APIBaseURL(), opts...))
}

// NewWithClient builds the containers around an existing api.Client.
// Tests use this to inject a client with a mock transport.
func NewWithClient(c *api.Client) *Stores {
	s := &Stores{
		API:        c,
		Session:    NewSession(c),
		Catalog:    NewCatalog(c),
		Categories: NewCategories(c),
		Favorites:  NewFavorites(c),
	}
	s.Cart = NewCart(c)
	s.Orders = NewOrders(c, s.Cart)
	return s
}

// Sync is the app-start / post-login recovery path: refresh the session
// first, then fan the read-only fetches out through a bounded pool. Per-store
// failures land in each store's Err field, as any fetch failure does.
func (s *Stores) Sync(ctx context.Context) {
	user := s.Session.Refresh(ctx)

	pool := workerpool.New(4)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		if err := pool.SubmitWait(func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				logger.Debug("store: sync fetch failed", "store", name, "error", err)
			}
		}); err != nil {
			wg.Done()
		}
	}

	run("catalog", s.Catalog.Fetch)
	run("categories", s.Categories.Fetch)
	if user != nil {
		run("cart", s.Cart.Fetch)
		run("favorites", s.Favorites.Fetch)
		run("orders", s.Orders.Fetch)
	}

	wg.Wait()
}
