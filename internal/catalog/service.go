// Package catalog implements the store-scoped catalog operations. Every
// mutation runs the same sequence: identify the caller, validate the input,
// check store ownership, then persist; failures are reported as *Error.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/erazemk/katalog/internal/events"
	"github.com/erazemk/katalog/internal/store"
)

// Cache stores public list responses per store. Get reports the store
// generation it looked under; Set must store under that generation so a
// value loaded before Invalidate is never served after it.
type Cache interface {
	Get(ctx context.Context, storeID, key string, dst any) (gen int64, hit bool, err error)
	Set(ctx context.Context, storeID string, gen int64, key string, value any) error
	Invalidate(ctx context.Context, storeID string) error
}

// Publisher receives an event for every committed mutation.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Service runs catalog operations against the database. Cache and Events
// are optional.
type Service struct {
	DB     *sqlx.DB
	Cache  Cache
	Events Publisher

	validate *validator.Validate
}

// NewService creates a service. Pass nil for cache or publisher to disable them.
func NewService(db *sqlx.DB, cache Cache, publisher Publisher) *Service {
	return &Service{
		DB:       db,
		Cache:    cache,
		Events:   publisher,
		validate: newValidator(),
	}
}

// authorize runs the checks shared by every store-scoped mutation, in order:
// caller present, input valid, store id present, store owned by caller.
// in may be nil for deletes.
func (s *Service) authorize(ctx context.Context, userID, storeID string, in any) error {
	if userID == "" {
		return newError(Unauthenticated, MsgUnauthenticated, nil)
	}
	if in != nil {
		if err := s.check(in); err != nil {
			return err
		}
	}
	if storeID == "" {
		return newError(Missing, MsgStoreIDRequired, nil)
	}

	st, err := store.GetOwnedStore(ctx, s.DB, storeID, userID)
	if err != nil {
		return unexpected(err)
	}
	if st == nil {
		return newError(Forbidden, MsgForbidden, nil)
	}
	return nil
}

// Authorize reports whether userID may modify storeID, for operations that
// live outside the catalog such as uploads.
func (s *Service) Authorize(ctx context.Context, userID, storeID string) error {
	return s.authorize(ctx, userID, storeID, nil)
}

// entity describes the per-type messages of a catalog row.
type entity struct {
	name       string // event and log name, e.g. "billboard"
	conflict   string // unique index violation
	referenced string // delete blocked by dependents
	badRef     string // write references a row missing from the store
}

// persistErr maps a store error to a catalog error.
func persistErr(e entity, err error) error {
	switch {
	case errors.Is(err, store.ErrDuplicate) && e.conflict != "":
		return newError(Conflict, e.conflict, err)
	case errors.Is(err, store.ErrReferenced):
		msg := e.referenced
		if msg == "" {
			msg = "Make sure you removed all dependent records first"
		}
		return newError(ReferentialConflict, msg, err)
	case errors.Is(err, store.ErrInvalidReference):
		msg := e.badRef
		if msg == "" {
			msg = MsgInvalid
		}
		return newError(Invalid, msg, err)
	case errors.Is(err, store.ErrNotFound):
		return newError(NotFound, capitalize(e.name)+" not found", err)
	}
	return unexpected(err)
}

// changed runs the side effects of a committed mutation. Failures are logged;
// the mutation itself has already succeeded.
func (s *Service) changed(ctx context.Context, e entity, action, userID, storeID, id string) {
	slog.Info(e.name+" "+action, "user", userID, "store", storeID, "id", id)

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, storeID); err != nil {
			slog.Warn("failed to invalidate cache", "store", storeID, "error", err)
		}
	}
	if s.Events != nil {
		ev := events.Event{
			Type:     e.name + "." + action,
			StoreID:  storeID,
			EntityID: id,
			UserID:   userID,
			At:       time.Now().UTC(),
		}
		if err := s.Events.Publish(ctx, ev); err != nil {
			slog.Warn("failed to publish event", "type", ev.Type, "error", err)
		}
	}
}

// cachedList serves a public list from the cache when possible.
func cachedList[T any](ctx context.Context, s *Service, storeID, key string, load func() ([]T, error)) ([]T, error) {
	if storeID == "" {
		return nil, newError(Missing, MsgStoreIDRequired, nil)
	}

	var gen int64
	cacheable := false
	if s.Cache != nil {
		var cached []T
		g, hit, err := s.Cache.Get(ctx, storeID, key, &cached)
		switch {
		case err != nil:
			slog.Warn("cache read failed", "store", storeID, "key", key, "error", err)
		case hit:
			return cached, nil
		default:
			gen, cacheable = g, true
		}
	}

	items, err := load()
	if err != nil {
		return nil, unexpected(err)
	}

	if cacheable {
		if err := s.Cache.Set(ctx, storeID, gen, key, items); err != nil {
			slog.Warn("cache write failed", "store", storeID, "key", key, "error", err)
		}
	}
	return items, nil
}

// found converts a (nil, nil) store lookup into NotFound.
func found[T any](e entity, storeID string, v *T, err error) (*T, error) {
	if storeID == "" {
		return nil, newError(Missing, MsgStoreIDRequired, nil)
	}
	if err != nil {
		return nil, unexpected(err)
	}
	if v == nil {
		return nil, newError(NotFound, capitalize(e.name)+" not found", nil)
	}
	return v, nil
}

// Overview returns row counts for the dashboard of an owned store.
func (s *Service) Overview(ctx context.Context, userID, storeID string) (*store.StoreCounts, error) {
	if err := s.authorize(ctx, userID, storeID, nil); err != nil {
		return nil, err
	}
	counts, err := store.CountStore(ctx, s.DB, storeID)
	if err != nil {
		return nil, unexpected(err)
	}
	return counts, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
