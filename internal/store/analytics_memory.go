package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-api/internal/models"
)

// MemoryAnalyticsStore is an in-memory AnalyticsStore. The aggregations
// mirror the Mongo pipelines so handler tests can assert on real numbers.
type MemoryAnalyticsStore struct {
	mu     sync.RWMutex
	events []models.Event
}

func NewMemoryAnalyticsStore() *MemoryAnalyticsStore {
	return &MemoryAnalyticsStore{}
}

func (s *MemoryAnalyticsStore) Record(ctx context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	s.events = append(s.events, *e)
	return nil
}

func (s *MemoryAnalyticsStore) inPeriod(p Period) []models.Event {
	out := []models.Event{}
	for _, e := range s.events {
		if p.Contains(e.Timestamp) {
			out = append(out, e)
		}
	}
	return out
}

func (s *MemoryAnalyticsStore) Overview(ctx context.Context, p Period) (*Overview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.inPeriod(p)
	sessions := map[string]bool{}
	viewsPerSession := map[string]int64{}
	var pageViews int64
	for _, e := range events {
		sessions[e.SessionID] = true
		if e.Type == models.EventTypePageView {
			pageViews++
			viewsPerSession[e.SessionID]++
		}
	}
	var bounced int64
	for _, n := range viewsPerSession {
		if n == 1 {
			bounced++
		}
	}
	ov := &Overview{
		TotalEvents:    int64(len(events)),
		UniqueVisitors: int64(len(sessions)),
		PageViews:      pageViews,
	}
	if ov.UniqueVisitors > 0 {
		ov.BounceRate = float64(bounced) / float64(ov.UniqueVisitors) * 100
	}
	return ov, nil
}

func topRows(counts map[string]int64) []CountRow {
	rows := make([]CountRow, 0, len(counts))
	for label, n := range counts {
		rows = append(rows, CountRow{Label: label, Count: n})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	if len(rows) > breakdownLimit {
		rows = rows[:breakdownLimit]
	}
	return rows
}

func (s *MemoryAnalyticsStore) TopPages(ctx context.Context, p Period) ([]CountRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int64{}
	for _, e := range s.inPeriod(p) {
		if e.Type == models.EventTypePageView {
			counts[e.Path]++
		}
	}
	return topRows(counts), nil
}

func (s *MemoryAnalyticsStore) TopReferrers(ctx context.Context, p Period) ([]CountRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int64{}
	for _, e := range s.inPeriod(p) {
		if e.Referrer != "" {
			counts[e.Referrer]++
		}
	}
	return topRows(counts), nil
}

func (s *MemoryAnalyticsStore) Breakdown(ctx context.Context, p Period, field string) ([]CountRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int64{}
	for _, e := range s.inPeriod(p) {
		var v string
		switch field {
		case BreakdownDevice:
			v = e.Device
		case BreakdownBrowser:
			v = e.Browser
		case BreakdownCountry:
			v = e.Country
		}
		if v != "" {
			counts[v]++
		}
	}
	return topRows(counts), nil
}

func (s *MemoryAnalyticsStore) DailySeries(ctx context.Context, p Period) ([]SeriesPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[string]int64{}
	for _, e := range s.inPeriod(p) {
		counts[e.Timestamp.UTC().Format("2006-01-02")]++
	}
	out := make([]SeriesPoint, 0, len(counts))
	for day, n := range counts {
		out = append(out, SeriesPoint{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *MemoryAnalyticsStore) TotalEvents(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.events)), nil
}
