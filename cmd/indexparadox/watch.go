package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ivlev/indexparadox/internal/engine"
)

// settle lets editors finish writing before the config is re-read.
const settle = 150 * time.Millisecond

func (w *WatchCmd) Run(g *Globals) error {
	if g.Config == "" {
		g.Config = DefaultConfigFile
	}
	path, err := filepath.Abs(g.Config)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	w.render(ctx, g)
	fmt.Printf("[*] Ожидание изменений: %s (Ctrl+C для выхода)\n", path)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer = time.After(settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[!] Ошибка наблюдения: %v", err)
		case <-timer:
			timer = nil
			w.render(ctx, g)
		}
	}
}

// render runs one pass and logs failures instead of stopping the watch.
func (w *WatchCmd) render(ctx context.Context, g *Globals) {
	cfg, err := g.load()
	if err != nil {
		log.Printf("[!] %v", err)
		return
	}
	w.apply(cfg)
	p, err := engine.NewProject(cfg)
	if err != nil {
		log.Printf("[!] %v", err)
		return
	}
	if _, err := p.Run(ctx); err != nil {
		log.Printf("[!] %v", err)
	}
}
