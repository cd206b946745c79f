// Package engine ties the query pipeline together: source text is parsed,
// evaluated against the session catalog and the resulting relations are
// kept for later programs.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tuannm99/novarel/internal/query/interpreter"
	"github.com/tuannm99/novarel/internal/query/parser"
	"github.com/tuannm99/novarel/internal/relation"
)

var (
	ErrNilRelation = errors.New("novarel: nil relation")
	ErrEmptyName   = errors.New("novarel: empty relation name")
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used by the session. The default is
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session holds a catalog of named relations. Every successful Exec adds
// its results to the catalog so later programs can refer to them.
type Session struct {
	mu        sync.RWMutex
	relations map[string]*relation.Relation
	log       *slog.Logger
}

// NewSession creates a session seeded with catalog. The map is copied.
func NewSession(catalog map[string]*relation.Relation, opts ...Option) *Session {
	s := &Session{
		relations: make(map[string]*relation.Relation, len(catalog)),
		log:       slog.Default(),
	}
	for name, r := range catalog {
		if r != nil {
			s.relations[name] = r
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exec parses and evaluates src against a snapshot of the session catalog.
// On success every assigned relation is stored in the session, replacing
// any relation of the same name. On failure the session is unchanged.
func (s *Session) Exec(src string) (*interpreter.Result, error) {
	start := time.Now()

	res, err := Run(src, s.snapshot())
	if err != nil {
		s.log.Debug("session: exec failed", "err", err)
		return nil, err
	}

	s.mu.Lock()
	for _, name := range res.Names {
		if _, ok := s.relations[name]; ok {
			s.log.Warn("session: relation replaced", "name", name)
		}
		s.relations[name] = res.Relations[name]
	}
	s.mu.Unlock()

	s.log.Debug("session: exec done",
		"statements", len(res.Names),
		"elapsed", time.Since(start),
	)
	return res, nil
}

// Relations returns the names in the session catalog, sorted.
func (s *Session) Relations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.relations))
	for name := range s.relations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Relation returns the relation stored under name.
func (s *Session) Relation(name string) (*relation.Relation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.relations[name]
	return r, ok
}

// Add stores r under name, replacing any previous relation.
func (s *Session) Add(name string, r *relation.Relation) error {
	if name == "" {
		return ErrEmptyName
	}
	if r == nil {
		return fmt.Errorf("add %s: %w", name, ErrNilRelation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.relations[name]; ok {
		s.log.Warn("session: relation replaced", "name", name)
	}
	s.relations[name] = r
	return nil
}

// Remove deletes name from the session and reports whether it was present.
func (s *Session) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.relations[name]
	delete(s.relations, name)
	return ok
}

func (s *Session) snapshot() interpreter.MapCatalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cat := make(interpreter.MapCatalog, len(s.relations))
	for name, r := range s.relations {
		cat[name] = r
	}
	return cat
}

// Run parses src and evaluates it against catalog without keeping any
// state. catalog may be nil.
func Run(src string, catalog interpreter.Catalog) (*interpreter.Result, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return interpreter.Evaluate(prog, catalog)
}
