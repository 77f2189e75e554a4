package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/service"
	"github.com/m3tools/m3cd/src/internal/storage"
)

// WatchCommand re-runs the merge job whenever its job file or a delta file
// changes.
type WatchCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	debounce time.Duration
	dryRun   bool

	configHasher *config.ConfigHasher
}

func CreateWatchCommand() Runner {
	return &WatchCommand{}
}

func (c *WatchCommand) Name() string {
	return "watch"
}

func (c *WatchCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet(c.Name(), flag.ExitOnError)
	c.fs.DurationVar(&c.debounce, "debounce", 500*time.Millisecond, "Wait this long after the last change before merging")
	c.fs.BoolVar(&c.dryRun, "dry-run", false, "Report merges without writing files")

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.configHasher = config.NewConfigHasher(ctx.ConfigPath, ctx.deps().Fs())

	return nil
}

func (c *WatchCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := NewRestartableRunner(RunnerConfig{
		Name:        "delta watcher",
		MaxRestarts: 10,
		StableAfter: time.Minute,
	}, c.watch)

	if err := runner.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		log.Infof("Stopping delta watcher...")
		return runner.Stop()
	case <-runner.Done():
		return runner.LastError()
	}
}

// watch merges once and then after every burst of relevant file events.
// Merge failures are logged; only watcher failures end the loop.
func (c *WatchCommand) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := c.addWatches(watcher); err != nil {
		return err
	}

	c.mergeAndLog()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, ev.Name); err != nil {
						log.Warnf("Failed to watch %s: %v", ev.Name, err)
					}
				}
			}
			if !c.isRelevant(ev) {
				continue
			}
			log.Debugf("Change detected: %s", ev)
			if timer == nil {
				timer = time.NewTimer(c.debounce)
			} else {
				timer.Reset(c.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			c.mergeAndLog()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// addWatches registers the job file directory and every directory under
// each enabled delta source.
func (c *WatchCommand) addWatches(watcher *fsnotify.Watcher) error {
	if err := watcher.Add(filepath.Dir(c.ctx.ConfigPath)); err != nil {
		return fmt.Errorf("failed to watch job directory: %w", err)
	}
	for _, source := range c.cfg.EnabledDeltas() {
		dir := c.cfg.GetAbsDeltaDir(source)
		if err := addTree(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch delta source [%s]: %w", source.Name, err)
		}
		log.Infof("Watching delta source [%s] in %s", source.Name, dir)
	}
	return nil
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func (c *WatchCommand) isRelevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Clean(ev.Name) == filepath.Clean(c.ctx.ConfigPath) {
		return true
	}
	return strings.EqualFold(filepath.Ext(ev.Name), storage.DeltaExtension)
}

func (c *WatchCommand) mergeAndLog() {
	rep, err := c.mergeIfChanged()
	if err != nil {
		log.Errorf("Merge failed: %v", err)
		return
	}
	if rep != nil {
		printMergeReport(c.ctx.out(), rep)
	}
}

// mergeIfChanged reloads the job and merges it unless its hash matches the
// last successful merge. It returns a nil report when the merge was skipped.
func (c *WatchCommand) mergeIfChanged() (*service.MergeReport, error) {
	cfg, err := loadAndValidateConfigOrFail(c.ctx.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg

	hash, err := c.configHasher.CalculateHash(cfg)
	if err != nil {
		return nil, err
	}
	if c.configHasher.IsApplied(hash) {
		log.Debugf("Merge job unchanged (%s), skipping", hash)
		return nil, nil
	}

	rep, err := c.ctx.deps().Merger().Run(cfg, service.MergeOptions{DryRun: c.dryRun})
	if err != nil {
		return nil, err
	}
	c.configHasher.SetAppliedConfigHash(hash)
	return rep, nil
}
