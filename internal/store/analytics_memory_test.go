package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/models"
)

func recordEvent(t *testing.T, s *MemoryAnalyticsStore, typ, session, page string, at time.Time) {
	t.Helper()
	e := &models.Event{Type: typ, SessionID: session, Path: page, Timestamp: at}
	require.NoError(t, s.Record(context.Background(), e))
}

func TestMemoryAnalyticsOverviewBounceRate(t *testing.T) {
	s := NewMemoryAnalyticsStore()
	now := time.Now()
	p := Period{Start: now.Add(-time.Hour), End: now.Add(time.Hour)}

	// session a: two page views (not bounced)
	recordEvent(t, s, models.EventTypePageView, "a", "/", now)
	recordEvent(t, s, models.EventTypePageView, "a", "/blog", now)
	// session b: one page view (bounced)
	recordEvent(t, s, models.EventTypePageView, "b", "/", now)
	// session c: click only, no page view
	recordEvent(t, s, models.EventTypeClick, "c", "/", now)

	ov, err := s.Overview(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(4), ov.TotalEvents)
	assert.Equal(t, int64(3), ov.UniqueVisitors)
	assert.Equal(t, int64(3), ov.PageViews)
	// 1 bounced of 3 sessions
	assert.InDelta(t, 100.0/3.0, ov.BounceRate, 0.01)
}

func TestMemoryAnalyticsOverviewEmptyPeriod(t *testing.T) {
	s := NewMemoryAnalyticsStore()
	now := time.Now()
	recordEvent(t, s, models.EventTypePageView, "a", "/", now.Add(-48*time.Hour))

	ov, err := s.Overview(context.Background(), Period{Start: now.Add(-time.Hour), End: now})
	require.NoError(t, err)
	assert.Zero(t, ov.TotalEvents)
	assert.Zero(t, ov.BounceRate)
}

func TestMemoryAnalyticsTopPagesLimit(t *testing.T) {
	s := NewMemoryAnalyticsStore()
	now := time.Now()
	p := Period{Start: now.Add(-time.Hour), End: now.Add(time.Hour)}

	for i := 0; i < 15; i++ {
		page := fmt.Sprintf("/page-%02d", i)
		// page i gets i+1 views
		for j := 0; j <= i; j++ {
			recordEvent(t, s, models.EventTypePageView, fmt.Sprintf("s%d-%d", i, j), page, now)
		}
	}

	rows, err := s.TopPages(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, rows, breakdownLimit)
	assert.Equal(t, "/page-14", rows[0].Label)
	assert.Equal(t, int64(15), rows[0].Count)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Count, rows[i].Count)
	}
}

func TestMemoryAnalyticsDailySeries(t *testing.T) {
	s := NewMemoryAnalyticsStore()
	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	recordEvent(t, s, models.EventTypePageView, "a", "/", day1)
	recordEvent(t, s, models.EventTypePageView, "b", "/", day1)
	recordEvent(t, s, models.EventTypePageView, "c", "/", day2)

	points, err := s.DailySeries(context.Background(), Period{Start: day1.Add(-time.Hour), End: day2.Add(time.Hour)})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2026-08-01", points[0].Date)
	assert.Equal(t, int64(2), points[0].Count)
	assert.Equal(t, "2026-08-02", points[1].Date)
	assert.Equal(t, int64(1), points[1].Count)
}

func TestParsePeriod(t *testing.T) {
	p := ParsePeriod("7d", "", "")
	assert.InDelta(t, 7*24*time.Hour, p.End.Sub(p.Start), float64(time.Minute))

	p = ParsePeriod("", "2026-01-01", "2026-02-01")
	assert.Equal(t, 2026, p.Start.Year())
	assert.Equal(t, time.February, p.End.Month())

	// unknown names fall back to 30d
	p = ParsePeriod("bogus", "", "")
	assert.InDelta(t, 30*24*time.Hour, p.End.Sub(p.Start), float64(time.Minute))

	// end before start is ignored in favor of the default window
	p = ParsePeriod("", "2026-02-01", "2026-01-01")
	assert.InDelta(t, 30*24*time.Hour, p.End.Sub(p.Start), float64(time.Minute))
}
