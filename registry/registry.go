// Package registry tracks one history buffer per observed sensor metric.
//
// The ingestion pipeline calls Observe for every decoded reading; the first
// observation of a metric key creates its buffer from the configured
// profile, later ones reuse it. Rendering code looks buffers up by key.
//
// The registry map is safe for concurrent use. The buffers themselves are
// not: each one must keep a single writer, per the history package contract.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/xtxerr/pelorus/config"
	"github.com/xtxerr/pelorus/history"
	"github.com/xtxerr/pelorus/internal/logging"
	"github.com/xtxerr/pelorus/internal/validation"
)

var registryLog = logging.Component("registry")

// ErrInvalidMetricKey indicates a metric key that fails validation.
var ErrInvalidMetricKey = errors.New("invalid metric key")

// Registry is a keyed set of history buffers, one per tracked metric.
type Registry struct {
	mu      sync.RWMutex
	buffers map[string]*history.Buffer

	cfg *config.Config

	// Singleflight so concurrent first observations of the same metric
	// create exactly one buffer.
	group singleflight.Group
}

// New creates a registry resolving buffer options from cfg.
// A nil cfg uses config.DefaultConfig.
func New(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Registry{
		buffers: make(map[string]*history.Buffer),
		cfg:     cfg,
	}
}

// GetOrCreate returns the buffer tracking metric, creating it from the
// configured profile on first observation.
func (r *Registry) GetOrCreate(metric string) (*history.Buffer, error) {
	r.mu.RLock()
	buf, ok := r.buffers[metric]
	r.mu.RUnlock()
	if ok {
		return buf, nil
	}

	if err := validation.ValidateMetricKey(metric); err != nil {
		return nil, fmt.Errorf("metric %q: %v: %w", metric, err, ErrInvalidMetricKey)
	}

	v, err, _ := r.group.Do(metric, func() (interface{}, error) {
		r.mu.RLock()
		buf, ok := r.buffers[metric]
		r.mu.RUnlock()
		if ok {
			return buf, nil
		}

		profile := r.cfg.ProfileFor(metric)
		buf = history.New(profile.Options())

		r.mu.Lock()
		r.buffers[metric] = buf
		r.mu.Unlock()

		registryLog.Info("tracking metric",
			"metric", metric,
			"max_points", profile.MaxPoints,
			"recent_window", time.Duration(profile.RecentWindow).String())
		return buf, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*history.Buffer), nil
}

// Observe ingests a reading for metric, creating its buffer if needed.
func (r *Registry) Observe(metric string, p history.Point) error {
	buf, err := r.GetOrCreate(metric)
	if err != nil {
		return err
	}
	buf.Add(p)
	return nil
}

// Buffer returns the buffer for metric, if it is tracked.
func (r *Registry) Buffer(metric string) (*history.Buffer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	buf, ok := r.buffers[metric]
	return buf, ok
}

// Remove stops tracking metric and discards its history.
// Returns true if the metric was tracked.
func (r *Registry) Remove(metric string) bool {
	r.mu.Lock()
	_, ok := r.buffers[metric]
	delete(r.buffers, metric)
	r.mu.Unlock()

	if ok {
		registryLog.Debug("metric untracked", "metric", metric)
	}
	return ok
}

// Metrics returns the tracked metric keys in sorted order.
func (r *Registry) Metrics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.buffers))
	for k := range r.buffers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of tracked metrics.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buffers)
}

// Clear discards every tracked metric and its history.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.buffers = make(map[string]*history.Buffer)
	r.mu.Unlock()
}
