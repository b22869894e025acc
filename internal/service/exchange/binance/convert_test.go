package binance

import (
	"testing"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
)

func TestConvertKline(t *testing.T) {
	raw := &binance.Kline{
		OpenTime:         1700000000000,
		CloseTime:        1700000059999,
		Open:             "100.5",
		High:             "101.2",
		Low:              "99.8",
		Close:            "100.9",
		Volume:           "420.69",
		QuoteAssetVolume: "42345.1",
		TradeNum:         321,
	}

	k, err := convertKline(raw, exchange.Interval1m)
	require.NoError(t, err)

	assert.Equal(t, time.UnixMilli(1700000000000), k.OpenTime)
	assert.Equal(t, time.UnixMilli(1700000059999), k.CloseTime)
	assert.Equal(t, "100.9", k.Close.String())
	assert.Equal(t, "420.69", k.Volume.String())
	assert.Equal(t, int64(321), k.TradeNum)
	assert.Equal(t, exchange.Interval1m, k.Interval)
}

func TestConvertKlineMalformed(t *testing.T) {
	testCases := []struct {
		name string
		raw  *binance.Kline
	}{
		{
			name: "bad volume",
			raw: &binance.Kline{
				OpenTime: 1, CloseTime: 2,
				Open: "1", High: "1", Low: "1", Close: "1",
				Volume: "not-a-number", QuoteAssetVolume: "1",
			},
		},
		{
			name: "empty close",
			raw: &binance.Kline{
				OpenTime: 1, CloseTime: 2,
				Open: "1", High: "1", Low: "1", Close: "",
				Volume: "1", QuoteAssetVolume: "1",
			},
		},
		{
			name: "zero close time",
			raw: &binance.Kline{
				OpenTime: 1, CloseTime: 0,
				Open: "1", High: "1", Low: "1", Close: "1",
				Volume: "1", QuoteAssetVolume: "1",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := convertKline(tc.raw, exchange.Interval1m)
			assert.Error(t, err)
		})
	}
}

func TestConvertWsKline(t *testing.T) {
	k, err := convertWsKline(binance.WsKline{
		StartTime:   1700000000000,
		EndTime:     1700000059999,
		Interval:    "1m",
		Open:        "10",
		High:        "11",
		Low:         "9",
		Close:       "10.5",
		Volume:      "1234",
		QuoteVolume: "12700",
		TradeNum:    55,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.5", k.Close.String())
	assert.Equal(t, exchange.Interval1m, k.Interval)
}
