package usecase

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"vivelo/internal/data/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func hoursBefore(event time.Time, h float64) time.Time {
	return event.Add(-time.Duration(h * float64(time.Hour)))
}

func TestEvaluateRefund(t *testing.T) {
	maxHours := 168.0
	rules := []entity.CancellationRule{
		{MinHours: 168, RefundPercent: 100},
		{MinHours: 48, MaxHours: &maxHours, RefundPercent: 50},
	}
	event := time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(1000)

	t.Run("full refund with generous lead time", func(t *testing.T) {
		percent, amount := EvaluateRefund(rules, event, total, hoursBefore(event, 200))

		assert.Equal(t, entity.RefundPercent(100), percent)
		assert.Equal(t, "1000.00", amount.StringFixed(2))
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		percent, amount := EvaluateRefund(rules, event, total, hoursBefore(event, 48))

		assert.Equal(t, entity.RefundPercent(50), percent)
		assert.Equal(t, "500.00", amount.StringFixed(2))
	})

	t.Run("just under the threshold drops a tier", func(t *testing.T) {
		percent, _ := EvaluateRefund(rules, event, total, hoursBefore(event, 167.99))

		assert.Equal(t, entity.RefundPercent(50), percent)
	})

	t.Run("too late for any tier", func(t *testing.T) {
		percent, amount := EvaluateRefund(rules, event, total, hoursBefore(event, 2))

		assert.Equal(t, entity.RefundPercent(0), percent)
		assert.True(t, amount.IsZero())
	})

	t.Run("event already started", func(t *testing.T) {
		percent, amount := EvaluateRefund(rules, event, total, event.Add(2*time.Hour))

		assert.Equal(t, entity.RefundPercent(0), percent)
		assert.True(t, amount.IsZero())
	})

	t.Run("no rules means no refund", func(t *testing.T) {
		percent, amount := EvaluateRefund(nil, event, total, hoursBefore(event, 500))

		assert.Equal(t, entity.RefundPercent(0), percent)
		assert.True(t, amount.IsZero())
	})
}

func TestEvaluateRefundUnsortedRules(t *testing.T) {
	// Rule order in storage must not matter: the most demanding matching
	// tier wins.
	rules := []entity.CancellationRule{
		{MinHours: 24, RefundPercent: 25},
		{MinHours: 168, RefundPercent: 100},
		{MinHours: 72, RefundPercent: 50},
	}
	event := time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(400)

	percent, amount := EvaluateRefund(rules, event, total, hoursBefore(event, 80))

	assert.Equal(t, entity.RefundPercent(50), percent)
	assert.Equal(t, "200.00", amount.StringFixed(2))

	// Input order is preserved.
	assert.Equal(t, entity.RefundPercent(25), rules[0].RefundPercent)
	assert.InDelta(t, 24, rules[0].MinHours, 0.001)
}

// randomRules builds a valid rule set: distinct thresholds whose refund
// percent never decreases as the threshold grows. Storage order is shuffled
// so sortedness is never an accident of construction.
func randomRules(rng *rand.Rand) []entity.CancellationRule {
	count := 1 + rng.Intn(5)

	thresholds := make([]float64, 0, count)
	seen := map[int]bool{}
	for len(thresholds) < count {
		h := rng.Intn(336)
		if seen[h] {
			continue
		}
		seen[h] = true
		thresholds = append(thresholds, float64(h))
	}
	sort.Float64s(thresholds)

	percents := make([]int, count)
	for i := range percents {
		percents[i] = rng.Intn(101)
	}
	sort.Ints(percents)

	rules := make([]entity.CancellationRule, count)
	for i := range rules {
		rules[i] = entity.CancellationRule{
			MinHours:      thresholds[i],
			RefundPercent: entity.RefundPercent(percents[i]),
		}
	}
	rng.Shuffle(count, func(i, j int) { rules[i], rules[j] = rules[j], rules[i] })
	return rules
}

func TestEvaluateRefundMonotonicity(t *testing.T) {
	// Cancelling earlier must never pay out a smaller share than cancelling
	// later, whatever the rule set looks like.
	rng := rand.New(rand.NewSource(42))
	event := time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(1000)

	for i := 0; i < 200; i++ {
		rules := randomRules(rng)

		prev := entity.RefundPercent(0)
		for lead := 0.0; lead <= 400; lead += 0.5 + rng.Float64()*8 {
			percent, amount := EvaluateRefund(rules, event, total, hoursBefore(event, lead))

			assert.GreaterOrEqual(t, percent, prev,
				"lead %.2fh paid less than a shorter lead with rules %+v", lead, rules)
			assert.False(t, amount.IsNegative())
			prev = percent
		}
	}
}

func TestEvaluateRefundClampsPercent(t *testing.T) {
	event := time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(100)

	percent, amount := EvaluateRefund(
		[]entity.CancellationRule{{MinHours: 0, RefundPercent: 150}},
		event, total, hoursBefore(event, 10),
	)

	assert.Equal(t, entity.RefundPercent(100), percent)
	assert.Equal(t, "100.00", amount.StringFixed(2))
}

func TestEvaluateRefundRounding(t *testing.T) {
	event := time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC)
	total := decimal.RequireFromString("333.33")

	_, amount := EvaluateRefund(
		[]entity.CancellationRule{{MinHours: 0, RefundPercent: 50}},
		event, total, hoursBefore(event, 10),
	)

	assert.Equal(t, "166.67", amount.StringFixed(2))
}
