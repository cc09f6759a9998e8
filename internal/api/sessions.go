package api

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/youruser/talingdeck/internal/cards"
	"github.com/youruser/talingdeck/internal/deck"
	"github.com/youruser/talingdeck/internal/store"
)

// ErrUnknownDeck is returned for session ids that are neither open nor stored.
var ErrUnknownDeck = errors.New("unknown deck")

// DefaultMaxOpen bounds the decks kept in memory when a store backs them.
const DefaultMaxOpen = 1024

// SnapshotStore persists decks between requests and restarts.
type SnapshotStore interface {
	Save(ctx context.Context, id string, snap deck.Snapshot) error
	Load(ctx context.Context, id string) (deck.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

type session struct {
	mu      sync.Mutex
	deck    *deck.Deck // nil until loaded from the store
	dropped bool

	// guarded by Sessions.mu
	refs int
	used uint64
}

// Sessions holds one deck per session id. Each deck is only touched while
// its session lock is held; the registry lock never covers store reads.
type Sessions struct {
	// MaxOpen caps idle decks kept in memory. Least recently used idle
	// decks are dropped from memory first and reload from the store.
	MaxOpen int

	mu      sync.Mutex
	open    map[string]*session
	clock   uint64
	store   SnapshotStore
	catalog *cards.Catalog
	logger  *zap.Logger
}

func NewSessions(st SnapshotStore, catalog *cards.Catalog, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		MaxOpen: DefaultMaxOpen,
		open:    map[string]*session{},
		store:   st,
		catalog: catalog,
		logger:  logger,
	}
}

// Created describes a new session. Missing lists snapshot rule names the
// catalog does not know; Rejected lists snapshot cards refused by admission.
type Created struct {
	ID       string
	Missing  []string
	Rejected []deck.Result
}

// Create starts a new session. A client snapshot is replayed through the
// admission rules with banlist, so the new deck never breaks them.
func (s *Sessions) Create(ctx context.Context, snap *deck.Snapshot, banlist cards.Banlist) (Created, error) {
	var out Created
	d := deck.New()
	if snap != nil {
		d, out.Missing, out.Rejected = deck.Rebuild(*snap, s.catalog, banlist)
		if len(out.Missing) > 0 {
			s.logger.Warn("snapshot references unknown cards", zap.Strings("rule_names", out.Missing))
		}
		if len(out.Rejected) > 0 {
			s.logger.Info("snapshot cards rejected", zap.Int("rejected", len(out.Rejected)))
		}
	}
	out.ID = uuid.NewString()
	if s.store != nil {
		if err := s.store.Save(ctx, out.ID, d.Snapshot()); err != nil {
			return Created{}, err
		}
	}
	s.mu.Lock()
	s.clock++
	s.open[out.ID] = &session{deck: d, used: s.clock}
	s.evictLocked()
	s.mu.Unlock()
	s.logger.Info("deck session created", zap.String("deck_id", out.ID), zap.Int("cards", d.Len()))
	return out, nil
}

// pin returns the session for id with a reference taken, inserting an
// unloaded placeholder when a store may hold the deck.
func (s *Sessions) pin(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.open[id]
	if !ok {
		if s.store == nil {
			return nil, false
		}
		sess = &session{}
		s.open[id] = sess
	}
	s.clock++
	sess.refs++
	sess.used = s.clock
	return sess, true
}

func (s *Sessions) unpin(id string, sess *session, forget bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.refs--
	if forget && sess.refs == 0 && s.open[id] == sess {
		delete(s.open, id)
	}
	s.evictLocked()
}

// evictLocked drops least recently used idle decks above MaxOpen. Decks
// without a store are never evicted since they exist nowhere else.
func (s *Sessions) evictLocked() {
	if s.store == nil || s.MaxOpen <= 0 {
		return
	}
	for len(s.open) > s.MaxOpen {
		var (
			victim string
			oldest *session
		)
		for id, sess := range s.open {
			if sess.refs > 0 {
				continue
			}
			if oldest == nil || sess.used < oldest.used {
				victim, oldest = id, sess
			}
		}
		if oldest == nil {
			return
		}
		delete(s.open, victim)
	}
}

// load fills a placeholder from the store. The session lock must be held.
func (s *Sessions) load(ctx context.Context, id string, sess *session) error {
	snap, err := s.store.Load(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnknownDeck
	}
	if err != nil {
		return err
	}
	d, missing := deck.Restore(snap, s.catalog)
	if len(missing) > 0 {
		s.logger.Warn("stored deck references unknown cards",
			zap.String("deck_id", id),
			zap.Strings("rule_names", missing))
	}
	sess.deck = d
	return nil
}

// With runs fn on the session's deck while holding its lock. When fn
// reports a change the new snapshot is saved before the lock is released.
func (s *Sessions) With(ctx context.Context, id string, fn func(d *deck.Deck) (changed bool)) error {
	sess, ok := s.pin(id)
	if !ok {
		return ErrUnknownDeck
	}
	sess.mu.Lock()
	err := s.with(ctx, id, sess, fn)
	// a failed load leaves a placeholder that must not be served again
	forget := sess.deck == nil || sess.dropped
	sess.mu.Unlock()
	s.unpin(id, sess, forget)
	return err
}

func (s *Sessions) with(ctx context.Context, id string, sess *session, fn func(d *deck.Deck) bool) error {
	if sess.dropped {
		return ErrUnknownDeck
	}
	if sess.deck == nil {
		if err := s.load(ctx, id, sess); err != nil {
			return err
		}
	}
	if !fn(sess.deck) || s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, id, sess.deck.Snapshot()); err != nil {
		return errors.Wrapf(err, "persist deck %s", id)
	}
	return nil
}

// Drop forgets the session and its stored snapshot. Requests waiting on the
// deck while it is dropped see ErrUnknownDeck.
func (s *Sessions) Drop(ctx context.Context, id string) error {
	sess, ok := s.pin(id)
	if !ok {
		return ErrUnknownDeck
	}
	sess.mu.Lock()
	wasLoaded := sess.deck != nil && !sess.dropped
	var err error
	if s.store != nil {
		err = s.store.Delete(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			err = nil
			if !wasLoaded {
				err = ErrUnknownDeck
			}
		}
	}
	if err == nil || errors.Is(err, ErrUnknownDeck) {
		sess.dropped = true
	}
	dropped := sess.dropped
	sess.mu.Unlock()
	s.unpin(id, sess, dropped)
	return err
}
