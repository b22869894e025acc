package binance

import (
	"fmt"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
)

// convertKline maps a REST kline to the domain type. A parse failure means a
// malformed payload; the caller drops the kline instead of panicking.
func convertKline(k *binance.Kline, interval exchange.Interval) (exchange.Kline, error) {
	open, err := decimal.NewFromString(k.Open)
	if err != nil {
		return exchange.Kline{}, fmt.Errorf("parse open %q: %w", k.Open, err)
	}
	klineClose, err := decimal.NewFromString(k.Close)
	if err != nil {
		return exchange.Kline{}, fmt.Errorf("parse close %q: %w", k.Close, err)
	}
	high, err := decimal.NewFromString(k.High)
	if err != nil {
		return exchange.Kline{}, fmt.Errorf("parse high %q: %w", k.High, err)
	}
	low, err := decimal.NewFromString(k.Low)
	if err != nil {
		return exchange.Kline{}, fmt.Errorf("parse low %q: %w", k.Low, err)
	}
	volume, err := decimal.NewFromString(k.Volume)
	if err != nil {
		return exchange.Kline{}, fmt.Errorf("parse volume %q: %w", k.Volume, err)
	}
	quoteVolume, err := decimal.NewFromString(k.QuoteAssetVolume)
	if err != nil {
		return exchange.Kline{}, fmt.Errorf("parse quote volume %q: %w", k.QuoteAssetVolume, err)
	}
	if k.CloseTime <= 0 {
		return exchange.Kline{}, fmt.Errorf("invalid close time %d", k.CloseTime)
	}
	return exchange.Kline{
		OpenTime:         time.UnixMilli(k.OpenTime),
		CloseTime:        time.UnixMilli(k.CloseTime),
		Open:             open,
		Close:            klineClose,
		High:             high,
		Low:              low,
		Volume:           volume,
		QuoteAssetVolume: quoteVolume,
		TradeNum:         k.TradeNum,
		Interval:         interval,
	}, nil
}

// convertWsKline maps a websocket kline payload to the domain type.
func convertWsKline(k binance.WsKline) (exchange.Kline, error) {
	return convertKline(&binance.Kline{
		OpenTime:         k.StartTime,
		CloseTime:        k.EndTime,
		Open:             k.Open,
		High:             k.High,
		Low:              k.Low,
		Close:            k.Close,
		Volume:           k.Volume,
		QuoteAssetVolume: k.QuoteVolume,
		TradeNum:         k.TradeNum,
	}, exchange.Interval(k.Interval))
}
