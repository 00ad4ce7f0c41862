package usecase

import (
	"sort"
	"time"

	"vivelo/internal/data/entity"

	"github.com/shopspring/decimal"
)

// EvaluateRefund resolves the refund tier for a cancellation happening at
// `now` against an event starting at `eventStart`. Rules are matched most
// generous lead time first: the rule with the highest min_hours whose
// threshold is still met wins. With no matching rule (or a past event) the
// refund is zero.
//
// The input slice is not modified.
func EvaluateRefund(rules []entity.CancellationRule, eventStart time.Time, total decimal.Decimal, now time.Time) (entity.RefundPercent, decimal.Decimal) {
	hoursUntil := eventStart.Sub(now).Hours()

	sorted := make([]entity.CancellationRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinHours > sorted[j].MinHours
	})

	for _, rule := range sorted {
		if hoursUntil >= rule.MinHours {
			return clampPercent(rule.RefundPercent), refundAmount(total, clampPercent(rule.RefundPercent))
		}
	}

	return 0, decimal.Zero
}

func clampPercent(p entity.RefundPercent) entity.RefundPercent {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func refundAmount(total decimal.Decimal, percent entity.RefundPercent) decimal.Decimal {
	if percent == 0 {
		return decimal.Zero
	}
	return total.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100)).Round(2)
}
