package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// minuteKline builds the closed 1m kline ending at baseTime + i minutes.
func minuteKline(i int, close, volume float64) exchange.Kline {
	closeTime := baseTime.Add(time.Duration(i) * time.Minute)
	return exchange.Kline{
		OpenTime:  closeTime.Add(-time.Minute),
		CloseTime: closeTime,
		Open:      decimal.NewFromFloat(close),
		High:      decimal.NewFromFloat(close),
		Low:       decimal.NewFromFloat(close),
		Close:     decimal.NewFromFloat(close),
		Volume:    decimal.NewFromFloat(volume),
		Interval:  exchange.Interval1m,
	}
}

func TestNewRollingValidation(t *testing.T) {
	_, err := NewRolling(0, 10)
	assert.Error(t, err)
	_, err = NewRolling(30, 0)
	assert.Error(t, err)
	_, err = NewRolling(1, 1)
	assert.NoError(t, err)
}

func TestZScoreUndefinedUnderTwoSamples(t *testing.T) {
	r, err := NewRolling(30, 10)
	require.NoError(t, err)

	m, ok := r.Observe(minuteKline(1, 100, 50))
	require.True(t, ok)
	assert.Equal(t, 1, m.VolumeSamples)
	assert.False(t, m.VolumeZScoreValid)
}

func TestZScoreUndefinedOnZeroSpread(t *testing.T) {
	r, err := NewRolling(30, 10)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		m, ok := r.Observe(minuteKline(i, 100, 50))
		require.True(t, ok)
		assert.False(t, m.VolumeZScoreValid, "identical volumes have no spread")
	}
}

func TestZScoreAgainstKnownSeries(t *testing.T) {
	r, err := NewRolling(30, 10)
	require.NoError(t, err)

	// 20 quiet minutes around 50, then a 10x spike
	for i := 1; i <= 20; i++ {
		vol := 48.0
		if i%2 == 0 {
			vol = 52.0
		}
		_, ok := r.Observe(minuteKline(i, 100, vol))
		require.True(t, ok)
	}
	m, ok := r.Observe(minuteKline(21, 100, 500))
	require.True(t, ok)
	require.True(t, m.VolumeZScoreValid)
	assert.Greater(t, m.VolumeZScore, 3.0)
}

func TestVolumeWindowSizeOneDegenerate(t *testing.T) {
	// a one-sample window is accepted but the z-score can never become defined
	r, err := NewRolling(1, 10)
	require.NoError(t, err)

	for i := 1; i <= 20; i++ {
		m, ok := r.Observe(minuteKline(i, 100, float64(10*i)))
		require.True(t, ok)
		assert.False(t, m.VolumeZScoreValid)
	}
}

func TestPctChangeNeedsFullWindow(t *testing.T) {
	r, err := NewRolling(30, 3)
	require.NoError(t, err)

	// price window holds baseline + 3 samples: first 3 observations have no baseline
	for i := 1; i <= 3; i++ {
		m, ok := r.Observe(minuteKline(i, 100, 10))
		require.True(t, ok)
		assert.False(t, m.PricePctChangeValid, "minute %d", i)
	}

	m, ok := r.Observe(minuteKline(4, 105, 10))
	require.True(t, ok)
	require.True(t, m.PricePctChangeValid)
	assert.Equal(t, "100", m.PriceBaseline.String())
	assert.InDelta(t, 5.0, m.PricePctChange, 1e-9)
}

func TestPctChangeNegativeDirection(t *testing.T) {
	r, err := NewRolling(30, 2)
	require.NoError(t, err)

	r.Observe(minuteKline(1, 200, 10))
	r.Observe(minuteKline(2, 200, 10))
	m, ok := r.Observe(minuteKline(3, 190, 10))
	require.True(t, ok)
	require.True(t, m.PricePctChangeValid)
	assert.InDelta(t, -5.0, m.PricePctChange, 1e-9)
}

func TestObserveRejectsDuplicateAndOutOfOrder(t *testing.T) {
	r, err := NewRolling(5, 5)
	require.NoError(t, err)

	_, ok := r.Observe(minuteKline(3, 100, 10))
	require.True(t, ok)

	testCases := []struct {
		name string
		k    exchange.Kline
	}{
		{name: "duplicate close time", k: minuteKline(3, 101, 11)},
		{name: "out of order", k: minuteKline(2, 99, 9)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := r.Observe(tc.k)
			assert.False(t, ok)
		})
	}

	// windows untouched by rejected klines
	m, ok := r.Observe(minuteKline(4, 100, 10))
	require.True(t, ok)
	assert.Equal(t, 2, m.VolumeSamples)
}
