// Package inbox scans a directory of receipt images and writes one JSON
// result next to each receipt. It can keep watching the directory and pick
// up new files as they land.
package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"expenseit/pkg/extract"
	"expenseit/pkg/logger"
	"expenseit/pkg/ocr"
	"expenseit/pkg/scan"

	"github.com/fsnotify/fsnotify"
)

const (
	resultExt = ".json"
	// settleTime is how long a file must go without events before it is scanned.
	settleTime   = 300 * time.Millisecond
	pollInterval = 250 * time.Millisecond
)

// Scanner is the part of scan.Scanner the inbox needs.
type Scanner interface {
	Scan(ctx context.Context, data []byte, prefs extract.Preferences, progress ocr.ProgressFunc) (*scan.Result, error)
}

// Entry is the document written for each scanned receipt.
type Entry struct {
	File        string       `json:"file"`
	ScannedAt   time.Time    `json:"scanned_at"`
	DisplayDate string       `json:"display_date,omitempty"`
	CardNote    string       `json:"card_note,omitempty"`
	Result      *scan.Result `json:"result"`
}

// Stats counts what a run did.
type Stats struct {
	Scanned int64
	Skipped int64
	Failed  int64
}

// Processor scans receipts found in Dir.
type Processor struct {
	Dir     string
	Scanner Scanner
	Prefs   func() extract.Preferences
	Workers int
	// Force rescans files that already have a result.
	Force bool
	Log   logger.Logger

	scanned, skipped, failed atomic.Int64
}

// Stats returns the counters accumulated so far.
func (p *Processor) Stats() Stats {
	return Stats{Scanned: p.scanned.Load(), Skipped: p.skipped.Load(), Failed: p.failed.Load()}
}

// EffectiveWorkers resolves a worker count, where zero or less means one per CPU.
func EffectiveWorkers(w int) int {
	if w <= 0 {
		return runtime.NumCPU()
	}
	return w
}

// IsSupported reports whether name looks like a receipt the scanner can read.
func IsSupported(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".pdf", ".heic", ".heif":
		return true
	}
	return false
}

// List returns the supported files in dir, sorted by name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsSupported(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// ResultPath is where the result for a receipt is written.
func ResultPath(dir, name string) string {
	return filepath.Join(dir, name+resultExt)
}

// Run scans every supported file currently in the directory and returns when
// all of them are done or ctx ends.
func (p *Processor) Run(ctx context.Context) error {
	files, err := List(p.Dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", p.Dir, err)
	}
	p.Log.Info().Int("files", len(files)).Int("workers", EffectiveWorkers(p.Workers)).Msg("scanning inbox")

	ch := make(chan string)
	go func() {
		defer close(ch)
		for _, f := range files {
			select {
			case ch <- f:
			case <-ctx.Done():
				return
			}
		}
	}()
	p.runWorkers(ctx, ch)
	return ctx.Err()
}

// Watch runs over the existing files and then scans new or rewritten files
// until ctx ends.
func (p *Processor) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(p.Dir); err != nil {
		return err
	}
	if err := p.Run(ctx); err != nil {
		return err
	}
	p.Log.Info().Str("dir", p.Dir).Msg("watching inbox")

	ch := make(chan string, 256)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.runWorkers(ctx, ch)
	}()
	defer wg.Wait()
	defer close(ch)

	pending := map[string]time.Time{}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !IsSupported(name) {
				continue
			}
			pending[name] = time.Now()
		case now := <-ticker.C:
			for name, t := range pending {
				if now.Sub(t) < settleTime {
					continue
				}
				delete(pending, name)
				select {
				case ch <- name:
				case <-ctx.Done():
					return nil
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.Log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (p *Processor) runWorkers(ctx context.Context, files <-chan string) {
	var wg sync.WaitGroup
	for i := 0; i < EffectiveWorkers(p.Workers); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range files {
				if ctx.Err() != nil {
					continue
				}
				p.processFile(ctx, name)
			}
		}()
	}
	wg.Wait()
}

func (p *Processor) processFile(ctx context.Context, name string) {
	log := p.Log.With().Str("file", name).Logger()
	out := ResultPath(p.Dir, name)
	src := filepath.Join(p.Dir, name)
	if !p.Force && isFresh(out, src) {
		p.skipped.Add(1)
		log.Debug().Msg("result exists, skipping")
		return
	}

	data, err := os.ReadFile(src)
	if err != nil {
		p.failed.Add(1)
		log.Warn().Err(err).Msg("read receipt")
		return
	}
	prefs := extract.DefaultPreferences()
	if p.Prefs != nil {
		prefs = p.Prefs()
	}
	res, err := p.Scanner.Scan(ctx, data, prefs, nil)
	if err != nil {
		p.failed.Add(1)
		log.Warn().Err(err).Msg("scan failed")
		return
	}
	entry := Entry{
		File:        name,
		ScannedAt:   time.Now().UTC(),
		DisplayDate: extract.FormatDateForDisplay(res.Record.Date, prefs.DateFormat),
		CardNote:    res.Record.CardNote(),
		Result:      res,
	}
	if err := writeJSON(out, entry); err != nil {
		p.failed.Add(1)
		log.Error().Err(err).Msg("write result")
		return
	}
	p.scanned.Add(1)
	log.Info().Str("amount", res.Record.Amount).Str("merchant", res.Record.Merchant).Msg("receipt scanned")
}

// isFresh reports whether the result exists and is not older than the receipt.
func isFresh(result, src string) bool {
	ri, err := os.Stat(result)
	if err != nil {
		return false
	}
	si, err := os.Stat(src)
	if err != nil {
		return true
	}
	return !ri.ModTime().Before(si.ModTime())
}

// writeJSON writes through a temporary file so readers never see a partial result.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
