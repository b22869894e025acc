package stats

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
	"github.com/soltrack/candle-sentry/pkg/decimalx"
)

// Metrics is recomputed per observed kline from the post-update windows.
type Metrics struct {
	VolumeSamples int
	VolumeMean    decimal.Decimal
	VolumeStdDev  decimal.Decimal

	// VolumeZScore is only meaningful when VolumeZScoreValid is set: it takes
	// at least two volume samples and a non-zero spread to have a z-score.
	VolumeZScore      float64
	VolumeZScoreValid bool

	// PriceBaseline is the oldest retained price sample. PricePctChange is
	// the move from the baseline to the current close, in percent, and is
	// only meaningful once the price window has filled (PricePctChangeValid).
	PriceBaseline       decimal.Decimal
	PricePctChange      float64
	PricePctChangeValid bool
}

// Rolling maintains the sliding volume and price windows for one symbol.
// It is not safe for concurrent use; a single consumer must drive Observe.
type Rolling struct {
	volumes *Window[decimal.Decimal]
	prices  *Window[decimal.Decimal]

	lastClose time.Time
}

// NewRolling sizes the windows. The price window internally keeps one extra
// sample so that priceWindow closed intervals separate the baseline from the
// current close.
func NewRolling(volumeWindow, priceWindow int) (*Rolling, error) {
	if volumeWindow < 1 {
		return nil, fmt.Errorf("stats: volume window must be >= 1, got %d", volumeWindow)
	}
	if priceWindow < 1 {
		return nil, fmt.Errorf("stats: price window must be >= 1, got %d", priceWindow)
	}
	return &Rolling{
		volumes: NewWindow[decimal.Decimal](volumeWindow),
		prices:  NewWindow[decimal.Decimal](priceWindow + 1),
	}, nil
}

// Observe appends the kline to both windows and derives metrics from the
// updated state. A kline whose close time does not advance past the last
// accepted one is a duplicate or out-of-order delivery: it is ignored and
// ok is false.
func (r *Rolling) Observe(k exchange.Kline) (Metrics, bool) {
	if !r.lastClose.IsZero() && !k.CloseTime.After(r.lastClose) {
		return Metrics{}, false
	}
	r.lastClose = k.CloseTime

	r.volumes.Push(k.Volume)
	r.prices.Push(k.Close)

	vols := r.volumes.Values()
	m := Metrics{
		VolumeSamples: len(vols),
		VolumeMean:    decimalx.Mean(vols),
		VolumeStdDev:  decimalx.SampleStdDev(vols),
	}
	if m.VolumeSamples >= 2 && m.VolumeStdDev.IsPositive() {
		m.VolumeZScore = k.Volume.Sub(m.VolumeMean).Div(m.VolumeStdDev).InexactFloat64()
		m.VolumeZScoreValid = true
	}

	m.PriceBaseline = r.prices.Oldest()
	if r.prices.Full() && !m.PriceBaseline.IsZero() {
		m.PricePctChange = k.Close.Sub(m.PriceBaseline).
			Div(m.PriceBaseline).
			Mul(decimal.NewFromInt(100)).
			InexactFloat64()
		m.PricePctChangeValid = true
	}
	return m, true
}
