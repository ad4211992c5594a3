// Package feed keeps live per-owner snapshots of the file set and pushes
// them to subscribers whenever a change event arrives.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"academic-hub/internal/domain/filerecord"
)

// subscriber buffers one snapshot: a newer one replaces an unread older one.
const subscriberBuffer = 1

type subscriber struct {
	ch chan filerecord.FileRecords
}

type Hub struct {
	repo   filerecord.Repository
	logger *zap.Logger
	cache  *expirable.LRU[uuid.UUID, filerecord.FileRecords]

	mu   sync.Mutex
	subs map[uuid.UUID]map[*subscriber]struct{}
	// versions counts Notify calls per owner. A fetch only fills the cache
	// if no Notify happened while it was in flight.
	versions map[uuid.UUID]uint64
}

func NewHub(repo filerecord.Repository, logger *zap.Logger, cacheSize int, ttl time.Duration) *Hub {
	return &Hub{
		repo:     repo,
		logger:   logger,
		cache:    expirable.NewLRU[uuid.UUID, filerecord.FileRecords](cacheSize, nil, ttl),
		subs:     make(map[uuid.UUID]map[*subscriber]struct{}),
		versions: make(map[uuid.UUID]uint64),
	}
}

// Subscribe returns a channel that first yields the current snapshot and then
// a fresh one after each change. It is closed when ctx is done.
func (h *Hub) Subscribe(ctx context.Context, owner uuid.UUID) (<-chan filerecord.FileRecords, error) {
	snap, version, err := h.snapshot(ctx, owner)
	if err != nil {
		return nil, err
	}

	s := &subscriber{ch: make(chan filerecord.FileRecords, subscriberBuffer)}
	s.ch <- snap

	h.mu.Lock()
	if h.subs[owner] == nil {
		h.subs[owner] = make(map[*subscriber]struct{})
	}
	h.subs[owner][s] = struct{}{}
	// a change landed before the subscriber was visible to Notify
	stale := h.versions[owner] != version
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[owner], s)
		if len(h.subs[owner]) == 0 {
			delete(h.subs, owner)
		}
		close(s.ch)
		h.mu.Unlock()
	}()

	if stale {
		h.Notify(ctx, owner)
	}

	return s.ch, nil
}

// Snapshot serves the cached record set, loading it on a miss.
func (h *Hub) Snapshot(ctx context.Context, owner uuid.UUID) (filerecord.FileRecords, error) {
	snap, _, err := h.snapshot(ctx, owner)
	return snap, err
}

func (h *Hub) snapshot(ctx context.Context, owner uuid.UUID) (filerecord.FileRecords, uint64, error) {
	h.mu.Lock()
	version := h.versions[owner]
	snap, ok := h.cache.Get(owner)
	h.mu.Unlock()
	if ok {
		return snap, version, nil
	}

	snap, err := h.repo.FetchFiles(ctx, owner)
	if err != nil {
		return nil, version, err
	}
	if snap == nil {
		snap = filerecord.FileRecords{}
	}

	h.mu.Lock()
	if h.versions[owner] == version {
		h.cache.Add(owner, snap)
	}
	h.mu.Unlock()

	return snap, version, nil
}

// Notify reloads the owner's record set and fans it out. If the reload fails
// the cached snapshot is dropped and subscribers keep their last one.
func (h *Hub) Notify(ctx context.Context, owner uuid.UUID) {
	h.mu.Lock()
	h.versions[owner]++
	h.cache.Remove(owner)
	n := len(h.subs[owner])
	h.mu.Unlock()

	if n == 0 {
		return
	}

	snap, version, err := h.snapshot(ctx, owner)
	if err != nil {
		h.logger.Warn("refresh file snapshot failed, live view is stale",
			zap.Stringer("owner", owner),
			zap.Error(err),
		)
		return
	}

	h.broadcast(owner, snap, version)
}

// broadcast skips snap if a later Notify has started; that one delivers instead.
func (h *Hub) broadcast(owner uuid.UUID, snap filerecord.FileRecords, version uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.versions[owner] != version {
		return
	}

	for s := range h.subs[owner] {
		// drop the unread snapshot, if any, so the newest one fits
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- snap:
		default:
		}
	}
}

func (h *Hub) subscribers(owner uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[owner])
}
