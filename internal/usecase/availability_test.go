package usecase

import (
	"testing"
	"time"

	"vivelo/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuffers(t *testing.T) {
	service := &entity.Service{
		BufferBeforeMinutes: 30,
		BufferBeforeDays:    1,
		BufferAfterMinutes:  45,
	}

	t.Run("service buffers by default", func(t *testing.T) {
		b := ResolveBuffers(service, &entity.Profile{})

		assert.Equal(t, 24*time.Hour+30*time.Minute, b.Before)
		assert.Equal(t, 45*time.Minute, b.After)
	})

	t.Run("nil profile falls back to service buffers", func(t *testing.T) {
		b := ResolveBuffers(service, nil)

		assert.Equal(t, 24*time.Hour+30*time.Minute, b.Before)
	})

	t.Run("global override replaces service buffers entirely", func(t *testing.T) {
		profile := &entity.Profile{
			ApplyBuffersToAll:         true,
			GlobalBufferBeforeMinutes: 15,
			GlobalBufferAfterMinutes:  0,
		}

		b := ResolveBuffers(service, profile)

		// No merging: the day-level service buffer is gone too.
		assert.Equal(t, 15*time.Minute, b.Before)
		assert.Equal(t, time.Duration(0), b.After)
	})
}

func TestResolveEventWindow(t *testing.T) {
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	t.Run("same day event", func(t *testing.T) {
		w, err := ResolveEventWindow(date, "14:00", "18:00", Buffers{Before: time.Hour, After: 30 * time.Minute})
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 9, 20, 14, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC), w.End)
		assert.Equal(t, time.Date(2026, 9, 20, 13, 0, 0, 0, time.UTC), w.EffectiveStart)
		assert.Equal(t, time.Date(2026, 9, 20, 18, 30, 0, 0, time.UTC), w.EffectiveEnd)
	})

	t.Run("overnight event ends the next day", func(t *testing.T) {
		w, err := ResolveEventWindow(date, "20:00", "02:00", Buffers{})
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 9, 20, 20, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2026, 9, 21, 2, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("end equal to start is treated as overnight", func(t *testing.T) {
		w, err := ResolveEventWindow(date, "10:00", "10:00", Buffers{})
		require.NoError(t, err)

		assert.Equal(t, 24*time.Hour, w.End.Sub(w.Start))
	})

	t.Run("invalid clock string", func(t *testing.T) {
		_, err := ResolveEventWindow(date, "25:00", "26:00", Buffers{})
		assert.Error(t, err)
	})
}

func TestEventHours(t *testing.T) {
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	w, err := ResolveEventWindow(date, "14:00", "18:30", Buffers{})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, EventHours(w), 0.001)

	// Ten-minute event still bills the half-hour floor.
	short, err := ResolveEventWindow(date, "14:00", "14:10", Buffers{})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, EventHours(short), 0.001)
}

func TestResolveEventHours(t *testing.T) {
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	w, err := ResolveEventWindow(date, "14:00", "22:00", Buffers{})
	require.NoError(t, err)

	t.Run("fixed-price service bills its configured duration", func(t *testing.T) {
		service := &entity.Service{PriceUnit: entity.PriceUnitPerEvent, BaseEventHours: 5}

		// Eight wall-clock hours, five billable ones.
		assert.InDelta(t, 5, ResolveEventHours(service, w), 0.001)
	})

	t.Run("fixed-price service without a duration bills the window", func(t *testing.T) {
		service := &entity.Service{PriceUnit: entity.PriceUnitPerEvent}

		assert.InDelta(t, 8, ResolveEventHours(service, w), 0.001)
	})

	t.Run("configured duration keeps the half-hour floor", func(t *testing.T) {
		service := &entity.Service{PriceUnit: entity.PriceUnitPerEvent, BaseEventHours: 0.25}

		assert.InDelta(t, 0.5, ResolveEventHours(service, w), 0.001)
	})

	t.Run("hourly service bills the window", func(t *testing.T) {
		service := &entity.Service{PriceUnit: entity.PriceUnitPerHour, BaseEventHours: 5}

		assert.InDelta(t, 8, ResolveEventHours(service, w), 0.001)
	})
}

func TestResolveServiceWindow(t *testing.T) {
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	buffers := Buffers{Before: time.Hour, After: 30 * time.Minute}

	t.Run("fixed duration overrides the requested end", func(t *testing.T) {
		service := &entity.Service{PriceUnit: entity.PriceUnitPerEvent, BaseEventHours: 4}

		w, err := ResolveServiceWindow(service, date, "14:00", "22:00", buffers)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 9, 20, 14, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC), w.End)
		assert.Equal(t, time.Date(2026, 9, 20, 13, 0, 0, 0, time.UTC), w.EffectiveStart)
		assert.Equal(t, time.Date(2026, 9, 20, 18, 30, 0, 0, time.UTC), w.EffectiveEnd)
	})

	t.Run("hourly service keeps the requested end", func(t *testing.T) {
		service := &entity.Service{PriceUnit: entity.PriceUnitPerHour, BaseEventHours: 4}

		w, err := ResolveServiceWindow(service, date, "14:00", "22:00", buffers)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 9, 20, 22, 0, 0, 0, time.UTC), w.End)
		assert.Equal(t, time.Date(2026, 9, 20, 22, 30, 0, 0, time.UTC), w.EffectiveEnd)
	})
}

func TestAddBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		days  int
		want  time.Time
	}{
		{
			"midweek stays in week",
			time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC), // Monday
			3,
			time.Date(2026, 9, 17, 10, 0, 0, 0, time.UTC), // Thursday
		},
		{
			"friday skips the weekend",
			time.Date(2026, 9, 18, 10, 0, 0, 0, time.UTC), // Friday
			3,
			time.Date(2026, 9, 23, 10, 0, 0, 0, time.UTC), // Wednesday
		},
		{
			"saturday start counts from monday",
			time.Date(2026, 9, 19, 10, 0, 0, 0, time.UTC), // Saturday
			1,
			time.Date(2026, 9, 21, 10, 0, 0, 0, time.UTC), // Monday
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddBusinessDays(tt.start, tt.days))
		})
	}
}
