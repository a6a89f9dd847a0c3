package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
)

// ErrUnauthorized is returned by Save when the credential does not match
// the configured admin token. No write happens in that case.
var ErrUnauthorized = errors.New("Unauthorized")

// SaveResult acknowledges a successful save.
type SaveResult struct {
	Created bool
}

// DataService fronts the store with the single-entry cache and gates
// writes behind the static admin token. It is constructed once at startup
// and passed to the handlers; there is no ambient global state.
type DataService struct {
	store  DataStore
	cache  docCache
	token  string
	logger *slog.Logger
}

func NewDataService(store DataStore, token string, logger *slog.Logger) *DataService {
	return &DataService{
		store:  store,
		token:  token,
		logger: logger,
	}
}

// Fetch returns the current document: the cached value when present,
// otherwise a store read that populates the cache. An absent document is
// an empty object, never an error.
func (s *DataService) Fetch(ctx context.Context) (map[string]any, error) {
	if doc, ok := s.cache.Get(); ok {
		s.logger.Debug("fetch served from cache")
		return doc, nil
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("fetch failed", "error", err)
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	s.cache.Set(doc)
	s.logger.Info("fetch served from store")
	return doc, nil
}

// Save replaces the singleton document after an exact credential match.
// On success the cache is refreshed to the new value. Last writer wins:
// no merge against whatever was stored before.
func (s *DataService) Save(ctx context.Context, doc map[string]any, credential string) (SaveResult, error) {
	if subtle.ConstantTimeCompare([]byte(credential), []byte(s.token)) != 1 {
		s.logger.Warn("save rejected: bad credential")
		return SaveResult{}, ErrUnauthorized
	}

	created, err := s.store.Replace(ctx, doc)
	if err != nil {
		s.logger.Error("save failed", "error", err)
		return SaveResult{}, err
	}
	s.cache.Set(doc)
	s.logger.Info("document saved", "created", created)
	return SaveResult{Created: created}, nil
}
