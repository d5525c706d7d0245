package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"expenseit/pkg/extract"
	"expenseit/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce lets editors finish writing before the file is re-read.
const reloadDebounce = 200 * time.Millisecond

// preferenceStore holds the current preferences. A bad edit to the file is
// logged and the previous preferences stay in effect.
type preferenceStore struct {
	path string
	cur  atomic.Pointer[extract.Preferences]
	log  logger.Logger
}

// loadPreferences reads path over the defaults. An empty path means the
// defaults are used and never reloaded.
func loadPreferences(path string, log logger.Logger) (*preferenceStore, error) {
	s := &preferenceStore{path: path, log: log}
	p := extract.DefaultPreferences()
	s.cur.Store(&p)
	if path == "" {
		return s, nil
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *preferenceStore) Get() extract.Preferences {
	return *s.cur.Load()
}

func (s *preferenceStore) reload() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}
	p := extract.DefaultPreferences()
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("parse preferences: %w", err)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	s.cur.Store(&p)
	s.log.Info().
		Str("date_format", string(p.DateFormat)).
		Str("default_currency", p.DefaultCurrency).
		Bool("auto_categorize", p.AutoCategorizeMerchants).
		Msg("preferences loaded")
	return nil
}

// Watch reloads the preferences file whenever it changes until ctx ends.
// The directory is watched so that editors replacing the file are noticed.
func (s *preferenceStore) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		return err
	}
	name := filepath.Clean(s.path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(reloadDebounce)
			}
		case <-pending:
			pending = nil
			if err := s.reload(); err != nil {
				s.log.Warn().Err(err).Msg("keeping previous preferences")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("watch error")
		}
	}
}
