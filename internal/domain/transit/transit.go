// Package transit computes and ranks the daily aspects between transiting
// bodies and a fixed natal chart. The composite score exists to cut the
// combinatorial daily aspect list (up to 100 pairs) down to a ranked list
// the calendar UI can truncate.
package transit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/meridianlab/meridian/internal/adapters/ephemeris"
	"github.com/meridianlab/meridian/internal/domain/aspect"
	"github.com/meridianlab/meridian/internal/domain/astro"
	"github.com/meridianlab/meridian/internal/domain/body"
	"github.com/meridianlab/meridian/internal/domain/chart"
	"github.com/meridianlab/meridian/pkg/logger"
)

// Composite score parameters. Sub-scores are weighted, summed, clamped to
// [0,1], then Moon damping is applied multiplicatively.
const (
	closenessWeight   = 0.50
	aspectTypeWeight  = 0.20
	importanceWeight  = 0.15
	angularHouseBonus = 0.12
	applyingBonus     = 0.05

	// importanceScale normalizes the summed 0-10 body importances.
	importanceScale = 20.0

	// Moon aspects wider than this orb are halved; lunar transits are so
	// frequent that loose ones are noise.
	moonDampingOrb    = 3.0
	moonDampingFactor = 0.5
)

const defaultLookahead = time.Hour

// Event is one scored transit-to-natal aspect for a calendar date.
// Ephemeral: regenerated per query, never stored. The ID is deterministic
// from (date, transit body, natal body, aspect) so downstream consumers can
// de-duplicate against user-created calendar entries.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	TransitBody body.Body `json:"transit_body"`
	NatalBody   body.Body `json:"natal_body"`
	Aspect      string    `json:"aspect"`
	Orb         float64   `json:"orb"`
	Angle       float64   `json:"angle"`
	Score       float64   `json:"score"`

	// Applying is true when the aspect is still tightening at the sample
	// instant.
	Applying bool `json:"applying"`
}

// EventID composes the deterministic identifier for a transit event.
func EventID(date string, transitBody, natalBody body.Body, aspectName string) string {
	return fmt.Sprintf("transit:%s:%s:%s:%s",
		date, transitBody.Key(), strings.ToLower(aspectName), natalBody.Key())
}

// Engine scores transit aspects against natal charts. It only reads the
// natal chart and never mutates it.
type Engine struct {
	provider  ephemeris.Provider
	lookahead time.Duration
	log       logger.Logger
}

// NewEngine creates an Engine around an ephemeris provider.
func NewEngine(provider ephemeris.Provider, opts ...Option) *Engine {
	e := &Engine{
		provider:  provider,
		lookahead: defaultLookahead,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventsForDate returns every qualifying transit-to-natal aspect for the
// calendar date, sorted by descending score with ascending orb as the
// tie-break. Transiting positions are sampled once, at local noon of the
// date in the natal chart's timezone. A nil natal chart yields an empty
// list; bodies absent from the natal chart or unavailable from the
// provider are skipped.
func (e *Engine) EventsForDate(ctx context.Context, date time.Time, natal *chart.Chart) ([]Event, error) {
	if natal == nil {
		return []Event{}, nil
	}
	if err := e.provider.EnsureReady(ctx); err != nil {
		return nil, err
	}

	sample := noonFor(date, natal.TZOffsetHours)
	later := sample.Add(e.lookahead)
	dateStr := date.Format(chart.DateLayout)

	events := make([]Event, 0, body.Count*body.Count/2)
	for _, tb := range body.All() {
		lon, err := e.provider.Longitude(tb, sample)
		if err != nil {
			e.log.Debug(ctx, "transiting body skipped",
				logger.String("body", tb.Key()),
				logger.Error(err))
			continue
		}
		lonLater, laterErr := e.provider.Longitude(tb, later)

		for _, nb := range body.All() {
			np := natal.Position(nb)
			if np == nil {
				continue
			}
			angle := astro.AngularSeparation(lon, np.AbsoluteDegree)
			m, ok := aspect.Classify(angle)
			if !ok {
				continue
			}

			applying := laterErr == nil &&
				astro.AngularSeparation(lonLater, np.AbsoluteDegree) < angle

			events = append(events, Event{
				ID:          EventID(dateStr, tb, nb, m.Name),
				Title:       eventTitle(tb, nb, m.Name),
				Date:        dateStr,
				TransitBody: tb,
				NatalBody:   nb,
				Aspect:      m.Name,
				Orb:         m.Orb,
				Angle:       angle,
				Score:       score(tb, nb, np, m, applying),
				Applying:    applying,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Score != events[j].Score {
			return events[i].Score > events[j].Score
		}
		return events[i].Orb < events[j].Orb
	})
	return events, nil
}

// score computes the composite ranking score in [0,1].
func score(tb, nb body.Body, np *chart.CelestialPosition, m aspect.Match, applying bool) float64 {
	closeness := (m.MaxOrb - m.Orb) / m.MaxOrb
	importance := float64(tb.Importance()+nb.Importance()) / importanceScale

	s := closenessWeight*closeness + aspectTypeWeight*m.Weight + importanceWeight*importance
	if angularHouse(np.House) {
		s += angularHouseBonus
	}
	if applying {
		s += applyingBonus
	}
	s = clamp01(s)

	if tb == body.Moon && m.Orb > moonDampingOrb {
		s *= moonDampingFactor
	}
	return s
}

// angularHouse reports whether a house is one of the four angular houses.
func angularHouse(house int) bool {
	return house == 1 || house == 4 || house == 7 || house == 10
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func eventTitle(tb, nb body.Body, aspectName string) string {
	return fmt.Sprintf("%s %s natal %s", tb, strings.ToLower(aspectName), nb)
}

// noonFor returns the UTC instant of local noon on the given calendar date
// for a timezone offset in hours. Transits are a single-instant snapshot,
// not continuously resolved through the day.
func noonFor(date time.Time, tzOffsetHours float64) time.Time {
	y, m, d := date.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return noon.Add(-time.Duration(tzOffsetHours * float64(time.Hour)))
}
