package signal

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
	"github.com/soltrack/candle-sentry/internal/service/stats"
)

// Evaluator decides whether a kline plus its derived metrics should raise an
// alert. All mutable state (per-kind cooldown timestamps) lives on the struct
// and the clock is passed in, so the evaluator is driven as a pure sequence
// of calls in tests. It performs no I/O and is not safe for concurrent use.
type Evaluator struct {
	cfg       Config
	lastFired map[Kind]time.Time
}

func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{
		cfg:       cfg,
		lastFired: make(map[Kind]time.Time),
	}
}

// Evaluate returns nil when no signal fires; that is the normal outcome, not
// an error. A kind still inside its own cooldown is suppressed regardless of
// thresholds and does not refresh its timer. When both kinds clear thresholds
// and cooldowns on the same candle, one merged decision carries both and both
// timers are updated.
func (e *Evaluator) Evaluate(k exchange.Kline, m stats.Metrics, now time.Time) *Decision {
	volFires := e.volumeEligible(k, m) && !e.inCooldown(KindVolume, now)
	priceFires := e.priceEligible(m) && !e.inCooldown(KindPrice, now)

	if !volFires && !priceFires {
		return nil
	}

	d := &Decision{
		Candle:  k,
		Metrics: m,
		At:      now,
	}
	if volFires {
		d.Kinds = append(d.Kinds, KindVolume)
		e.lastFired[KindVolume] = now
	}
	if priceFires {
		d.Kinds = append(d.Kinds, KindPrice)
		e.lastFired[KindPrice] = now
		if m.PricePctChange >= 0 {
			d.PriceDirection = 1
		} else {
			d.PriceDirection = -1
		}
	}
	return d
}

func (e *Evaluator) volumeEligible(k exchange.Kline, m stats.Metrics) bool {
	if !m.VolumeZScoreValid || m.VolumeZScore < e.cfg.VolumeZScore {
		return false
	}
	if e.cfg.MinuteVolumeMin.LessThanOrEqual(decimal.Zero) {
		return true
	}
	return k.Volume.GreaterThanOrEqual(e.cfg.MinuteVolumeMin)
}

func (e *Evaluator) priceEligible(m stats.Metrics) bool {
	return m.PricePctChangeValid && math.Abs(m.PricePctChange) >= e.cfg.PricePctChange
}

func (e *Evaluator) inCooldown(kind Kind, now time.Time) bool {
	last, ok := e.lastFired[kind]
	if !ok {
		return false
	}
	return now.Sub(last) < e.cfg.Cooldown
}
