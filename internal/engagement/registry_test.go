package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadengine/internal/analytics"
	"leadengine/internal/analytics/events"
	"leadengine/internal/analytics/sink"
	id "leadengine/pkg/domain"
	"leadengine/pkg/requestcontext"
)

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	newRegistry := func() (*Registry, *sink.Queue) {
		q := sink.NewQueue(0)
		return NewRegistry(analytics.NewEmitter(q), WithClock(clock)), q
	}

	t.Run("start then end flushes summary", func(t *testing.T) {
		reg, q := newRegistry()
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		viewID, agg := reg.Start(ctx, events.PageTypeLocation, "reston")
		got, ok := reg.Get(ctx, viewID)
		require.True(t, ok)
		assert.Same(t, agg, got)

		now = now.Add(3 * time.Minute)
		found, emitted := reg.End(ctx, viewID)
		assert.True(t, found)
		assert.True(t, emitted)
		assert.Equal(t, []string{events.NamePageEngagement}, q.Names())
		assert.Zero(t, reg.Len())
	})

	t.Run("ending twice reports not found", func(t *testing.T) {
		reg, q := newRegistry()
		viewID, _ := reg.Start(ctx, "homepage", "")
		reg.End(ctx, viewID)

		found, emitted := reg.End(ctx, viewID)
		assert.False(t, found)
		assert.False(t, emitted)
		assert.Zero(t, q.Len())
	})

	t.Run("unknown view", func(t *testing.T) {
		reg, _ := newRegistry()
		_, ok := reg.Get(ctx, id.NewPageViewID())
		assert.False(t, ok)
	})

	t.Run("sweep flushes abandoned views only", func(t *testing.T) {
		reg, q := newRegistry()
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		stale, _ := reg.Start(ctx, "homepage", "")
		now = now.Add(20 * time.Minute)
		fresh, _ := reg.Start(ctx, "homepage", "")
		now = now.Add(time.Minute)

		assert.Equal(t, 1, reg.Sweep(ctx, 10*time.Minute))
		_, ok := reg.Get(ctx, stale)
		assert.False(t, ok)
		_, ok = reg.Get(ctx, fresh)
		assert.True(t, ok)
		assert.Equal(t, []string{events.NamePageEngagement}, q.Names())
	})

	t.Run("swept summary keeps the page and visitor it was started under", func(t *testing.T) {
		reg, q := newRegistry()
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		visitorID := id.NewVisitorID()
		reqCtx := requestcontext.WithPage(
			requestcontext.WithVisitorID(ctx, visitorID),
			requestcontext.Page{URL: "https://site/reston", Title: "Reston"},
		)
		viewID, agg := reg.Start(reqCtx, events.PageTypeLocation, "reston")
		agg.Scroll(reqCtx, 30)
		assert.Equal(t, visitorID, agg.Owner())

		now = now.Add(10 * time.Minute)
		assert.Equal(t, 1, reg.Sweep(context.Background(), time.Minute))
		_, ok := reg.Get(reqCtx, viewID)
		assert.False(t, ok)

		records := q.Records()
		require.Len(t, records, 2)
		summary := records[1]
		assert.Equal(t, events.NamePageEngagement, summary.Name())
		assert.Equal(t, "https://site/reston", summary[events.KeyPageURL])
		assert.Equal(t, "Reston", summary[events.KeyPageTitle])
	})

	t.Run("flush context page wins over the mount-time page", func(t *testing.T) {
		reg, q := newRegistry()
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		mountCtx := requestcontext.WithPage(ctx, requestcontext.Page{URL: "https://site/", Title: "Home"})
		viewID, _ := reg.Start(mountCtx, "homepage", "")

		now = now.Add(2 * time.Minute)
		endCtx := requestcontext.WithPage(ctx, requestcontext.Page{URL: "https://site/?ref=beacon", Title: "Home"})
		_, emitted := reg.End(endCtx, viewID)
		require.True(t, emitted)
		assert.Equal(t, "https://site/?ref=beacon", q.Records()[0][events.KeyPageURL])
	})

	t.Run("views are only visible to the visitor who started them", func(t *testing.T) {
		reg, q := newRegistry()
		owner := requestcontext.WithVisitorID(ctx, id.NewVisitorID())
		intruder := requestcontext.WithVisitorID(ctx, id.NewVisitorID())
		viewID, _ := reg.Start(owner, "homepage", "")

		_, ok := reg.Get(intruder, viewID)
		assert.False(t, ok)
		found, _ := reg.End(intruder, viewID)
		assert.False(t, found)
		assert.Equal(t, 1, reg.Len())
		assert.Zero(t, q.Len())

		_, ok = reg.Get(owner, viewID)
		assert.True(t, ok)
		found, _ = reg.End(owner, viewID)
		assert.True(t, found)
	})
}
