// Package local implements the record store over a single key/value slot
// holding the whole collection as a JSON array.
package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ghuser/recipelog/pkg/logger"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
	"github.com/ghuser/recipelog/services/recipe/domain/models"
	"github.com/ghuser/recipelog/services/recipe/domain/services"
	"github.com/ghuser/recipelog/services/recipe/infrastructure/persistence/fields"
)

var emptyCollection = []byte("[]")

// element is one stored record. raw holds the bytes it was read as and is
// written back verbatim until the record is changed.
type element struct {
	obj rawRecord
	raw json.RawMessage
}

func (e *element) changed() { e.raw = nil }

// Store implements repositories.RecipeStore. Every operation loads the whole
// collection, changes it and writes it back under one mutex, so a process
// never interleaves two read-modify-write cycles.
type Store struct {
	slot Slot
	log  logger.Logger
	now  func() time.Time

	mu     sync.Mutex
	lastID int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used for IDs and CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store over slot.
func NewStore(slot Slot, log logger.Logger, opts ...Option) *Store {
	s := &Store{slot: slot, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Recipe, 0, len(recs))
	for _, e := range recs {
		id, _ := recordID(e.obj)
		out = append(out, toRecipe(e.obj, id))
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id models.RecipeID) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return nil, fmt.Errorf("get %s: %w", id, recipedomain.ErrRecipeNotFound)
	}
	return toRecipe(recs[i].obj, id), nil
}

func (s *Store) Search(ctx context.Context, keyword string) ([]*models.Recipe, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return services.Filter(all, keyword), nil
}

func (s *Store) Create(ctx context.Context, d models.RecipeDraft) (models.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return models.WriteResult{}, err
	}

	now := s.now()
	r := models.NewRecipe(s.nextID(now, recs), d, now)
	recs = append(recs, &element{obj: newRawRecord(r)})
	if err := s.save(ctx, recs); err != nil {
		return models.Failed(err.Error()), nil
	}
	return models.Succeeded(r), nil
}

// Update shallow-merges p into the stored object. Keys p does not supply,
// including ones this package does not know, are left as they are.
func (s *Store) Update(ctx context.Context, id models.RecipeID, p models.RecipePatch) (models.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return models.WriteResult{}, err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return models.WriteResult{}, fmt.Errorf("update %s: %w", id, recipedomain.ErrRecipeNotFound)
	}
	merge(recs[i].obj, p)
	recs[i].changed()
	if err := s.save(ctx, recs); err != nil {
		return models.Failed(err.Error()), nil
	}
	return models.Succeeded(toRecipe(recs[i].obj, id)), nil
}

func (s *Store) Delete(ctx context.Context, id models.RecipeID) (models.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.load(ctx)
	if err != nil {
		return models.WriteResult{}, err
	}
	i := indexOf(recs, id)
	if i < 0 {
		return models.WriteResult{}, fmt.Errorf("delete %s: %w", id, recipedomain.ErrRecipeNotFound)
	}
	removed := toRecipe(recs[i].obj, id)
	recs = append(recs[:i], recs[i+1:]...)
	if err := s.save(ctx, recs); err != nil {
		return models.Failed(err.Error()), nil
	}
	return models.Succeeded(removed), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.slot.Ping(ctx)
}

// load reads the slot. An absent slot is initialised to an empty array; a value
// that is not a JSON array is logged and replaced. Elements that are not
// objects with an id are dropped and vanish on the next write.
func (s *Store) load(ctx context.Context) ([]*element, error) {
	data, present, err := s.slot.Load(ctx)
	if err != nil {
		return nil, &recipedomain.StoreError{Op: "load", Message: "local slot unreadable", Err: err}
	}
	if !present {
		if err := s.slot.Store(ctx, emptyCollection); err != nil {
			return nil, &recipedomain.StoreError{Op: "init", Message: "local slot unwritable", Err: err}
		}
		return []*element{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil || elems == nil {
		s.log.WarnContext(ctx, "local store: slot does not hold a JSON array, resetting",
			"bytes", len(data), "error", err)
		if err := s.slot.Store(ctx, emptyCollection); err != nil {
			return nil, &recipedomain.StoreError{Op: "reset", Message: "local slot unwritable", Err: err}
		}
		return []*element{}, nil
	}

	recs := make([]*element, 0, len(elems))
	for i, e := range elems {
		var r rawRecord
		if err := json.Unmarshal(e, &r); err != nil || r == nil {
			s.log.WarnContext(ctx, "local store: dropping element that is not an object", "index", i)
			continue
		}
		if _, ok := recordID(r); !ok {
			s.log.WarnContext(ctx, "local store: dropping element without id", "index", i)
			continue
		}
		recs = append(recs, &element{obj: r, raw: e})
	}
	return recs, nil
}

// save writes unchanged elements back as they were read and encodes only
// the changed ones.
func (s *Store) save(ctx context.Context, recs []*element) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range recs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if e.raw != nil {
			buf.Write(e.raw)
			continue
		}
		b, err := fields.Encode(e.obj)
		if err != nil {
			return &recipedomain.StoreError{Op: "save", Message: "encode record", Err: err}
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	if err := s.slot.Store(ctx, buf.Bytes()); err != nil {
		return &recipedomain.StoreError{Op: "save", Message: "local slot unwritable", Err: err}
	}
	return nil
}

// nextID returns a millisecond timestamp strictly greater than any ID this
// store handed out and not already present in recs.
func (s *Store) nextID(now time.Time, recs []*element) models.RecipeID {
	taken := make(map[models.RecipeID]bool, len(recs))
	for _, e := range recs {
		id, _ := recordID(e.obj)
		taken[id] = true
	}
	n := now.UnixMilli()
	if n <= s.lastID {
		n = s.lastID + 1
	}
	for taken[models.RecipeID(strconv.FormatInt(n, 10))] {
		n++
	}
	s.lastID = n
	return models.RecipeID(strconv.FormatInt(n, 10))
}

func indexOf(recs []*element, id models.RecipeID) int {
	for i, e := range recs {
		if rid, ok := recordID(e.obj); ok && rid == id {
			return i
		}
	}
	return -1
}
