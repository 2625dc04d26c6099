// internal/services/editor.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abinexis/homepage-admin/internal/metrics"
	"github.com/abinexis/homepage-admin/internal/models"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Snapshot is a consistent copy of an editor's state.
type Snapshot[T any] struct {
	Status     Status `json:"status"`
	Items      []T    `json:"items"`
	Error      string `json:"error,omitempty"`
	Submitting bool   `json:"submitting"`
}

// CollectionSpec describes one homepage collection.
type CollectionSpec[T any] struct {
	Name models.Collection
	Key  func(T) string
	// Extract builds the collection from a freshly fetched document. current
	// is the collection as it was before the load.
	Extract func(ctx context.Context, doc *models.HomepageDocument, current []T) []T
}

// EditorDeps are shared by all collection editors of one console.
type EditorDeps struct {
	API     HomepageAPI
	Catalog *CatalogCache
	Tokens  TokenProvider
	Auditor Auditor
}

// Editor keeps a local copy of one homepage collection and reconciles it
// with the backend: mutations are applied optimistically, then either the
// server's version is adopted or the collection is reloaded.
type Editor[T any] struct {
	spec    CollectionSpec[T]
	api     HomepageAPI
	catalog *CatalogCache
	tokens  TokenProvider
	auditor Auditor
	log     *logrus.Entry

	mu       sync.Mutex
	status   Status
	items    []T
	lastErr  error
	inFlight bool
	loadSeq  uint64
}

func NewEditor[T any](spec CollectionSpec[T], deps EditorDeps) *Editor[T] {
	if deps.Catalog == nil {
		deps.Catalog = NewCatalogCache()
	}
	if deps.Tokens == nil {
		deps.Tokens = StaticToken("")
	}
	return &Editor[T]{
		spec:    spec,
		api:     deps.API,
		catalog: deps.Catalog,
		tokens:  deps.Tokens,
		auditor: deps.Auditor,
		log:     logrus.WithField("collection", string(spec.Name)),
		status:  StatusIdle,
		items:   []T{},
	}
}

func (e *Editor[T]) Name() models.Collection {
	return e.spec.Name
}

func (e *Editor[T]) Catalog() *CatalogCache {
	return e.catalog
}

// Load fetches the homepage document and the product catalog and replaces
// the collection wholesale.
func (e *Editor[T]) Load(ctx context.Context) error {
	return e.load(ctx, false)
}

// LoadSilent is Load without the loading state: on failure the previous
// data and status are kept and the error is only logged.
func (e *Editor[T]) LoadSilent(ctx context.Context) {
	if err := e.load(ctx, true); err != nil {
		e.log.WithError(err).Debug("Silent reload failed")
	}
}

func (e *Editor[T]) load(ctx context.Context, silent bool) error {
	e.mu.Lock()
	e.loadSeq++
	seq := e.loadSeq
	if !silent {
		e.status = StatusLoading
	}
	current := e.copyItems()
	e.mu.Unlock()
	gen := e.catalog.Begin()

	var (
		doc      *models.HomepageDocument
		products []models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = e.api.GetHomepage(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = e.api.GetProducts(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		err = fmt.Errorf("load %s: %w", e.spec.Name, err)
		if !silent {
			e.mu.Lock()
			if seq == e.loadSeq {
				e.status = StatusFailed
				e.lastErr = err
			}
			e.mu.Unlock()
			e.log.WithError(err).Error("Failed to load collection")
		}
		return err
	}
	if doc == nil {
		doc = &models.HomepageDocument{}
	}

	items := e.spec.Extract(ctx, doc, current)
	if items == nil {
		items = []T{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	// A newer load owns the state.
	if seq != e.loadSeq {
		return nil
	}
	e.catalog.Replace(gen, products)
	e.items = items
	e.status = StatusReady
	e.lastErr = nil
	return nil
}

func (e *Editor[T]) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Editor[T]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyItems()
}

func (e *Editor[T]) Snapshot() Snapshot[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot[T]{
		Status:     e.status,
		Items:      e.copyItems(),
		Submitting: e.inFlight,
	}
	if e.lastErr != nil {
		s.Error = e.lastErr.Error()
	}
	return s
}

func (e *Editor[T]) Contains(key string) bool {
	_, ok := e.Find(key)
	return ok
}

func (e *Editor[T]) Find(key string) (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, item := range e.items {
		if e.spec.Key(item) == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// copyItems must be called with mu held.
func (e *Editor[T]) copyItems() []T {
	items := make([]T, len(e.items))
	copy(items, e.items)
	return items
}

// mutation is one reconciled change to the collection.
type mutation[T any] struct {
	op         string
	resourceID string

	// skip reports that the change is already reflected locally.
	skip func(items []T) bool
	// prepare runs after the guards and before the optimistic update.
	prepare    func(ctx context.Context) error
	optimistic func(items []T) []T
	call       func(ctx context.Context, token string) ([]T, error)

	// reload replaces adoption of call's result with a full Load.
	reload bool
	// quietRollback uses LoadSilent instead of Load after a failure.
	quietRollback bool
	// done runs after a successful reconciliation.
	done func()
}

func (e *Editor[T]) apply(ctx context.Context, m mutation[T]) error {
	token, err := e.tokens.Token(ctx)
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			err = fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
		e.record(ctx, m, models.OutcomeRejected, err)
		return err
	}

	if err := e.begin(m); err != nil {
		if errors.Is(err, errNoop) {
			return nil
		}
		e.record(ctx, m, models.OutcomeRejected, err)
		return err
	}
	defer e.end()

	// Rollback and reload must survive the caller going away.
	bg := context.WithoutCancel(ctx)

	if m.prepare != nil {
		if err := m.prepare(ctx); err != nil {
			return e.rollback(bg, m, err)
		}
	}

	if m.optimistic != nil {
		e.mu.Lock()
		e.items = m.optimistic(e.copyItems())
		e.mu.Unlock()
	}

	result, err := m.call(ctx, token)
	if err != nil {
		return e.rollback(bg, m, err)
	}

	if m.reload {
		if err := e.Load(bg); err != nil {
			e.log.WithError(err).Warn("Reload after successful change failed")
		}
		e.record(ctx, m, models.OutcomeReloaded, nil)
	} else {
		e.adopt(result)
		e.record(ctx, m, models.OutcomeAdopted, nil)
	}

	if m.done != nil {
		m.done()
	}
	return nil
}

// begin checks readiness, idempotency and the in-flight guard, in that
// order, and marks a mutation as in flight.
func (e *Editor[T]) begin(m mutation[T]) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusReady {
		return ErrNotReady
	}
	if m.skip != nil && m.skip(e.items) {
		return errNoop
	}
	if e.inFlight {
		return ErrBusy
	}
	e.inFlight = true
	return nil
}

func (e *Editor[T]) end() {
	e.mu.Lock()
	e.inFlight = false
	e.mu.Unlock()
}

func (e *Editor[T]) adopt(items []T) {
	if items == nil {
		items = []T{}
	}
	e.mu.Lock()
	e.items = items
	e.mu.Unlock()
}

func (e *Editor[T]) rollback(ctx context.Context, m mutation[T], err error) error {
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		netErr = &NetworkError{Op: m.op + " " + string(e.spec.Name), Err: err}
	}

	e.log.WithFields(logrus.Fields{
		"operation": m.op,
		"resource":  m.resourceID,
		"status":    netErr.StatusCode,
		"detail":    netErr.Detail(),
	}).Warn("Change rejected by backend, reloading")

	if m.quietRollback {
		e.LoadSilent(ctx)
	} else if loadErr := e.Load(ctx); loadErr != nil {
		e.log.WithError(loadErr).Warn("Reload after failed change failed")
	}

	e.record(ctx, m, models.OutcomeRolledBack, netErr)
	return netErr
}

func (e *Editor[T]) record(ctx context.Context, m mutation[T], outcome models.ReconcileOutcome, err error) {
	metrics.RecordReconciliation(string(e.spec.Name), m.op, string(outcome))
	if e.auditor == nil {
		return
	}
	e.auditor.Record(ctx, AuditEntry{
		Collection: e.spec.Name,
		Action:     m.op,
		ResourceID: m.resourceID,
		Outcome:    outcome,
		Err:        err,
		Keys:       e.keys(),
	})
}

func (e *Editor[T]) keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]string, len(e.items))
	for i, item := range e.items {
		keys[i] = e.spec.Key(item)
	}
	return keys
}
