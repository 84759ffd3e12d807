// Package service provides the core business service that implements the
// dependencies required by the HTTP API: chart registration, current chart
// queries, and transit scoring against stored natal charts.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/meridianlab/meridian/internal/adapters/ephemeris"
	"github.com/meridianlab/meridian/internal/adapters/repository"
	"github.com/meridianlab/meridian/internal/domain/chart"
	"github.com/meridianlab/meridian/internal/domain/dedupe"
	"github.com/meridianlab/meridian/internal/domain/transit"
	"github.com/meridianlab/meridian/pkg/logger"
	"github.com/meridianlab/meridian/pkg/metrics"
)

// Service wires the ephemeris provider, chart calculator, transit engine,
// profile store, and calendar-entry registry behind the API contract.
type Service struct {
	mu sync.RWMutex

	provider ephemeris.Provider
	calc     *chart.Calculator
	engine   *transit.Engine
	store    repository.Store
	entries  dedupe.Registry

	maxEvents int
	lookahead time.Duration

	started bool
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithProvider injects the ephemeris provider. Defaults to the meeus
// strategy with its default initialization timeout.
func WithProvider(p ephemeris.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithStore injects the profile store. Defaults to the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEntryRegistry injects the calendar-entry registry.
func WithEntryRegistry(reg dedupe.Registry) Option {
	return func(s *Service) {
		if reg != nil {
			s.entries = reg
		}
	}
}

// WithMaxTransitEvents caps the number of events returned per query.
func WithMaxTransitEvents(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxEvents = n
		}
	}
}

// WithApplyingLookahead sets the applying/separating sampling offset.
func WithApplyingLookahead(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lookahead = d
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxEvents: 100,
		lookahead: time.Hour,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider == nil {
		s.provider = ephemeris.NewMeeusProvider()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	if s.entries == nil {
		s.entries = dedupe.NewInMemoryRegistry()
	}
	s.calc = chart.NewCalculator(s.provider, chart.WithLogger(s.log.Named("chart")))
	s.engine = transit.NewEngine(s.provider,
		transit.WithLookahead(s.lookahead),
		transit.WithLogger(s.log.Named("transit")))
	return s
}

// Start triggers ephemeris initialization. Provider failure is not fatal
// here: queries fail fast with a typed error and the process keeps serving
// health and stats.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.started = true

	if err := s.provider.EnsureReady(ctx); err != nil {
		s.log.Warn(ctx, "ephemeris provider unavailable; chart queries will fail fast",
			logger.Error(err))
	} else {
		s.log.Info(ctx, "ephemeris provider ready")
	}
	metrics.SetProviderState(int(s.provider.State()))
	return nil
}

// Stop releases service resources. Present for lifecycle symmetry; the
// computation core owns no background workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// RegisterProfile computes a natal chart from birth data and persists it.
// A nil tzOffset selects the longitude-based estimate.
func (s *Service) RegisterProfile(ctx context.Context, name, date, clock string, latitude, longitude float64, tzOffset *float64) (repository.Profile, error) {
	ch, err := s.calc.Natal(ctx, date, clock, latitude, longitude, tzOffset)
	if err != nil {
		metrics.RecordChartError(chartErrorReason(err))
		return repository.Profile{}, fmt.Errorf("natal chart: %w", err)
	}
	metrics.RecordChartComputed("natal")

	p, err := s.store.Save(ctx, repository.Profile{
		Name:          name,
		BirthDate:     date,
		BirthTime:     clock,
		Latitude:      latitude,
		Longitude:     longitude,
		TZOffsetHours: ch.TZOffsetHours,
		Chart:         ch,
	})
	if err != nil {
		return repository.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	metrics.SetProfileCount(s.store.Count(ctx))

	s.log.Info(ctx, "profile registered",
		logger.String("profile_id", p.ID),
		logger.String("sun", ch.Sun.String()),
		logger.String("ascendant", ch.Ascendant.String()),
		logger.String("house_system", string(ch.HouseSystem)))
	return p, nil
}

// Profile returns a stored profile by id.
func (s *Service) Profile(ctx context.Context, id string) (repository.Profile, error) {
	return s.store.Get(ctx, id)
}

// CurrentChart computes a chart for an instant and location without
// persisting it. A zero instant means now.
func (s *Service) CurrentChart(ctx context.Context, latitude, longitude float64, at time.Time) (*chart.Chart, error) {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	ch, err := s.calc.At(ctx, at, latitude, longitude)
	if err != nil {
		metrics.RecordChartError(chartErrorReason(err))
		return nil, err
	}
	metrics.RecordChartComputed("current")
	return ch, nil
}

// TransitEvents returns the ranked transit events for a profile and date,
// filtered against user calendar entries and truncated to limit (or the
// configured maximum when limit is zero). An unknown profile yields an
// empty list: without a natal chart there is nothing to transit.
func (s *Service) TransitEvents(ctx context.Context, profileID string, date time.Time, limit int) ([]transit.Event, error) {
	p, err := s.store.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Debug(ctx, "transit query without natal chart",
				logger.String("profile_id", profileID))
			return []transit.Event{}, nil
		}
		return nil, err
	}

	start := time.Now()
	events, err := s.engine.EventsForDate(ctx, date, p.Chart)
	if err != nil {
		return nil, err
	}

	// Drop events colliding with user-created calendar entries.
	filtered := events[:0]
	for _, ev := range events {
		if s.entries.Contains(ctx, ev.ID) {
			continue
		}
		filtered = append(filtered, ev)
	}
	events = filtered

	metrics.RecordTransitQuery(len(events), float64(time.Since(start).Milliseconds()))

	if limit <= 0 || limit > s.maxEvents {
		limit = s.maxEvents
	}
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// RecordCalendarEntry registers a user-created calendar entry id.
func (s *Service) RecordCalendarEntry(ctx context.Context, id string) bool {
	return s.entries.Record(ctx, id)
}

// RemoveCalendarEntry drops a user-created calendar entry id.
func (s *Service) RemoveCalendarEntry(ctx context.Context, id string) {
	s.entries.Remove(ctx, id)
}

// GetStats returns service statistics for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	return map[string]interface{}{
		"profiles":         s.store.Count(ctx),
		"calendar_entries": s.entries.Size(),
		"provider_state":   s.provider.State().String(),
		"max_events":       s.maxEvents,
	}
}

// chartErrorReason maps chart failures onto stable metric labels.
func chartErrorReason(err error) string {
	switch {
	case errors.Is(err, ephemeris.ErrUnavailable):
		return "provider_unavailable"
	case errors.Is(err, chart.ErrIncompletePositions):
		return "incomplete_positions"
	case errors.Is(err, chart.ErrInvalidBirthData):
		return "invalid_birth_data"
	default:
		return "internal"
	}
}
