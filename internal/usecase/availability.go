package usecase

import (
	"fmt"
	"time"

	"vivelo/internal/data/entity"
)

// Buffers is the resolved padding applied around a booking window for
// conflict detection.
type Buffers struct {
	Before time.Duration
	After  time.Duration
}

// ResolveBuffers picks the effective buffers for a service. A provider with
// ApplyBuffersToAll set replaces the service buffers entirely, days included;
// there is no merging of the two sources.
func ResolveBuffers(service *entity.Service, profile *entity.Profile) Buffers {
	if profile != nil && profile.ApplyBuffersToAll {
		return Buffers{
			Before: time.Duration(profile.GlobalBufferBeforeMinutes) * time.Minute,
			After:  time.Duration(profile.GlobalBufferAfterMinutes) * time.Minute,
		}
	}
	return Buffers{
		Before: time.Duration(service.BufferBeforeDays)*24*time.Hour +
			time.Duration(service.BufferBeforeMinutes)*time.Minute,
		After: time.Duration(service.BufferAfterDays)*24*time.Hour +
			time.Duration(service.BufferAfterMinutes)*time.Minute,
	}
}

// EventWindow is the absolute timing of a booking: the event itself plus the
// buffer-padded effective window used for overlap checks.
type EventWindow struct {
	Start          time.Time
	End            time.Time
	EffectiveStart time.Time
	EffectiveEnd   time.Time
}

// ResolveEventWindow combines a civil event date with "15:04" start and end
// times into absolute instants and pads them with the given buffers. An end
// time at or before the start time means the event runs past midnight, so
// the end lands on the following day.
func ResolveEventWindow(eventDate time.Time, startTime, endTime string, buffers Buffers) (EventWindow, error) {
	start, err := combineDateTime(eventDate, startTime)
	if err != nil {
		return EventWindow{}, fmt.Errorf("parse start time %q: %w", startTime, err)
	}
	end, err := combineDateTime(eventDate, endTime)
	if err != nil {
		return EventWindow{}, fmt.Errorf("parse end time %q: %w", endTime, err)
	}
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	return EventWindow{
		Start:          start,
		End:            end,
		EffectiveStart: start.Add(-buffers.Before),
		EffectiveEnd:   end.Add(buffers.After),
	}, nil
}

func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// EventHours returns the billable duration of a window in hours, never less
// than half an hour.
func EventHours(w EventWindow) float64 {
	hours := w.End.Sub(w.Start).Hours()
	if hours < 0.5 {
		return 0.5
	}
	return hours
}

// ResolveEventHours returns the billable hours for a booking of the given
// service. A "por_evento" service with a configured duration bills that
// duration no matter how long the requested wall-clock window is; every other
// pricing model bills the window itself.
func ResolveEventHours(service *entity.Service, w EventWindow) float64 {
	if service.PriceUnit == entity.PriceUnitPerEvent && service.BaseEventHours > 0 {
		if service.BaseEventHours < 0.5 {
			return 0.5
		}
		return service.BaseEventHours
	}
	return EventHours(w)
}

// ResolveServiceWindow resolves the window for a booking of a concrete
// service. For a fixed-duration service the end is derived from the start
// plus the configured hours, overriding the requested end time, and the
// effective end is re-padded accordingly.
func ResolveServiceWindow(service *entity.Service, eventDate time.Time, startTime, endTime string, buffers Buffers) (EventWindow, error) {
	w, err := ResolveEventWindow(eventDate, startTime, endTime, buffers)
	if err != nil {
		return EventWindow{}, err
	}
	if service.PriceUnit == entity.PriceUnitPerEvent && service.BaseEventHours > 0 {
		hours := ResolveEventHours(service, w)
		w.End = w.Start.Add(time.Duration(hours * float64(time.Hour)))
		w.EffectiveEnd = w.End.Add(buffers.After)
	}
	return w, nil
}

// AddBusinessDays advances t by n days, skipping Saturdays and Sundays. Used
// for the end-code deadline after an event starts.
func AddBusinessDays(t time.Time, n int) time.Time {
	for added := 0; added < n; {
		t = t.Add(24 * time.Hour)
		if wd := t.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return t
}
