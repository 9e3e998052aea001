// Package netstatus tracks connectivity to the sync server.
package netstatus

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

//go:generate moq -out prober_mock.go . Prober

// Prober actively checks that the server is reachable.
type Prober interface {
	Ping(ctx context.Context) error
}

// Listener receives connectivity transitions.
type Listener func(online bool)

// Detector is the single source of truth for connectivity.
// Listeners fire only on transitions, outside the lock.
type Detector struct {
	prober       Prober
	logger       *slog.Logger
	listeners    map[int]Listener
	probeTimeout time.Duration
	nextID       int
	mu           sync.RWMutex
	online       bool
}

// NewDetector creates a Detector with an initial state.
func NewDetector(prober Prober, initialOnline bool, logger *slog.Logger) *Detector {
	return &Detector{
		prober:       prober,
		logger:       logger,
		listeners:    make(map[int]Listener),
		probeTimeout: 5 * time.Second,
		online:       initialOnline,
	}
}

// IsOnline reports the current connectivity.
func (d *Detector) IsOnline() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.online
}

// GetStatus is an alias of IsOnline.
func (d *Detector) GetStatus() bool {
	return d.IsOnline()
}

// SetOnline records a platform connectivity signal.
func (d *Detector) SetOnline(online bool) {
	d.mu.Lock()
	if d.online == online {
		d.mu.Unlock()
		return
	}
	d.online = online
	listeners := make([]Listener, 0, len(d.listeners))
	for _, l := range d.listeners {
		listeners = append(listeners, l)
	}
	d.mu.Unlock()

	d.logger.Info("Connectivity changed", "online", online)

	for _, l := range listeners {
		l(online)
	}
}

// Subscribe registers l and returns a function that removes it.
func (d *Detector) Subscribe(l Listener) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = l
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

// Probe pings the server once and updates the state.
func (d *Detector) Probe(ctx context.Context) bool {
	if d.prober == nil {
		return d.IsOnline()
	}

	probeCtx, cancel := context.WithTimeout(ctx, d.probeTimeout)
	defer cancel()

	err := d.prober.Ping(probeCtx)
	if err != nil {
		d.logger.Debug("Connectivity probe failed", "error", err)
	}
	// Отмена родительского контекста не означает потерю сети
	if ctx.Err() != nil {
		return d.IsOnline()
	}

	d.SetOnline(err == nil)
	return err == nil
}

// Run probes every interval until ctx is done.
func (d *Detector) Run(ctx context.Context, interval time.Duration) {
	d.Probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Probe(ctx)
		}
	}
}
