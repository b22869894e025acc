package signal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
	"github.com/soltrack/candle-sentry/internal/service/stats"
)

type Kind string

const (
	KindVolume Kind = "volume"
	KindPrice  Kind = "price"
)

// Decision is the value object handed to the supervisor when at least one
// signal kind fires. Kinds carries every kind that contributed; two kinds
// firing on the same candle produce one merged decision, never two.
type Decision struct {
	Kinds   []Kind
	Candle  exchange.Kline
	Metrics stats.Metrics

	// PriceDirection is +1 for an upward move, -1 for a downward one,
	// 0 when the price kind did not fire.
	PriceDirection int

	At time.Time
}

func (d *Decision) Has(kind Kind) bool {
	for _, k := range d.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Config holds the evaluator thresholds. MinuteVolumeMin <= 0 disables the
// absolute volume floor. Cooldown <= 0 disables rate limiting.
type Config struct {
	VolumeZScore    float64
	MinuteVolumeMin decimal.Decimal
	PricePctChange  float64
	Cooldown        time.Duration
}
