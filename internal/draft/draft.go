// Package draft keeps unsent form input so a dismissed creation form can be reopened as it was.
package draft

import (
	"context"
	"strings"

	"swiftpost/internal/logger"
	"swiftpost/internal/storage"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// KeyPrefix namespaces draft entries in the shared storage
const KeyPrefix = "swiftpost_form_"

var ErrEmptyForm = errors.New("form name is required")

type Store struct {
	store storage.Storage
	log   *logger.Logger
}

func NewStore(store storage.Storage, log *logger.Logger) *Store {
	return &Store{store: store, log: log}
}

func key(form string) string {
	return KeyPrefix + form
}

// Save snapshots the form values, replacing any earlier snapshot
func (s *Store) Save(ctx context.Context, form string, values interface{}) error {
	if form == "" {
		return ErrEmptyForm
	}
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Wrapf(err, "encode draft %s", form)
	}
	return s.store.Set(ctx, key(form), string(data))
}

// Load decodes the saved snapshot into out. It reports false when no usable draft exists;
// a corrupt entry is dropped and reported as absent.
func (s *Store) Load(ctx context.Context, form string, out interface{}) (bool, error) {
	if form == "" {
		return false, ErrEmptyForm
	}
	raw, ok, err := s.store.Get(ctx, key(form))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warnw("discarding corrupt form draft", "form", form, "error", err)
		if derr := s.store.Delete(ctx, key(form)); derr != nil {
			s.log.Errorw("failed to drop corrupt form draft", "form", form, "error", derr)
		}
		return false, nil
	}
	return true, nil
}

func (s *Store) Has(ctx context.Context, form string) bool {
	_, ok, err := s.store.Get(ctx, key(form))
	return err == nil && ok
}

// Clear removes the draft of one form. Called after a successful submit.
func (s *Store) Clear(ctx context.Context, form string) error {
	return s.store.Delete(ctx, key(form))
}

// Forms lists the names of forms that currently hold a draft
func (s *Store) Forms(ctx context.Context) ([]string, error) {
	keys, err := s.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	forms := make([]string, 0, len(keys))
	for _, k := range keys {
		forms = append(forms, strings.TrimPrefix(k, KeyPrefix))
	}
	return forms, nil
}

// ClearAll drops every draft, e.g. when the operator signs out
func (s *Store) ClearAll(ctx context.Context) error {
	forms, err := s.Forms(ctx)
	if err != nil {
		return err
	}
	for _, f := range forms {
		if err := s.Clear(ctx, f); err != nil {
			return errors.Wrapf(err, "clear draft %s", f)
		}
	}
	return nil
}
