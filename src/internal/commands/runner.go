package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m3tools/m3cd/src/internal/log"
)

// RestartableRunner runs a long-lived loop, such as a file watcher, in a
// goroutine and restarts it with exponential backoff when it fails or panics.
type RestartableRunner struct {
	name    string
	runFunc func(ctx context.Context) error

	mu           sync.RWMutex
	running      bool
	ctx          context.Context
	cancel       context.CancelFunc
	done         chan struct{}
	lastError    error
	restartCount int

	maxRestarts    int
	restartBackoff time.Duration
	maxBackoff     time.Duration
	stableAfter    time.Duration
}

// RunnerConfig configures a RestartableRunner. The watch command uses a
// limited number of restarts so a broken job directory is eventually reported.
type RunnerConfig struct {
	// Name prefixes the runner's log lines.
	Name string
	// MaxRestarts stops the runner after that many consecutive failures; 0 never gives up.
	MaxRestarts int
	// RestartBackoff is the first delay before a restart (default: 1s). It doubles up to MaxBackoff.
	RestartBackoff time.Duration
	MaxBackoff     time.Duration // default: 30s
	// StableAfter is how long a run must last before a failure counts as
	// fresh: backoff and restart count start over. 0 disables the reset.
	StableAfter time.Duration
}

// NewRestartableRunner returns a stopped runner for runFunc. runFunc must
// return when its context is cancelled.
func NewRestartableRunner(cfg RunnerConfig, runFunc func(ctx context.Context) error) *RestartableRunner {
	if cfg.RestartBackoff == 0 {
		cfg.RestartBackoff = 1 * time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 30 * time.Second
	}

	return &RestartableRunner{
		name:           cfg.Name,
		runFunc:        runFunc,
		maxRestarts:    cfg.MaxRestarts,
		restartBackoff: cfg.RestartBackoff,
		maxBackoff:     cfg.MaxBackoff,
		stableAfter:    cfg.StableAfter,
	}
}

// Start runs the loop in a goroutine until ctx is cancelled or Stop is called.
func (r *RestartableRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("%s is already running", r.name)
	}

	r.ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	r.running = true
	r.restartCount = 0
	r.lastError = nil

	go r.runLoop()

	return nil
}

// Stop cancels the loop and waits for it to return.
func (r *RestartableRunner) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}

	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		return fmt.Errorf("%s: timeout waiting for stop", r.name)
	}

	return nil
}

// Done is closed when the loop has returned, either because it was
// stopped, exited cleanly or gave up after too many restarts.
// It is nil before Start.
func (r *RestartableRunner) Done() <-chan struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.done
}

// IsRunning reports whether the loop goroutine is alive, including while it
// waits to restart.
func (r *RestartableRunner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// LastError returns the error of the most recent run, nil after a clean exit.
func (r *RestartableRunner) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastError
}

// RestartCount returns the number of restarts since the last stable run.
func (r *RestartableRunner) RestartCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.restartCount
}

func (r *RestartableRunner) runLoop() {
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
		close(r.done)
	}()

	backoff := r.restartBackoff

	for {
		if r.ctx.Err() != nil {
			log.Infof("%s: stopped", r.name)
			return
		}

		started := time.Now()
		err := r.runWithRecovery()

		r.mu.Lock()
		r.lastError = err
		r.mu.Unlock()

		if err == nil {
			log.Infof("%s: finished", r.name)
			return
		}

		if r.ctx.Err() != nil {
			log.Infof("%s: stopped while running", r.name)
			return
		}

		r.mu.Lock()
		if r.stableAfter > 0 && time.Since(started) >= r.stableAfter {
			r.restartCount = 0
			backoff = r.restartBackoff
		}
		r.restartCount++
		restartCount := r.restartCount
		r.mu.Unlock()

		if r.maxRestarts > 0 && restartCount >= r.maxRestarts {
			log.Errorf("%s: giving up after %d failed runs: %v", r.name, r.maxRestarts, err)
			return
		}

		log.Errorf("%s: %v; restarting in %v (attempt %d)", r.name, err, backoff, restartCount)

		select {
		case <-r.ctx.Done():
			return
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > r.maxBackoff {
			backoff = r.maxBackoff
		}
	}
}

func (r *RestartableRunner) runWithRecovery() (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%s panicked: %v", r.name, recovered)
		}
	}()

	return r.runFunc(r.ctx)
}
