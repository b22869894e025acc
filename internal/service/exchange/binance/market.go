package binance

import (
	"context"
	"log/slog"
	"time"

	"github.com/adshao/go-binance/v2"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
)

var _ exchange.MarketService = (*MarketService)(nil)

// MarketService answers request/response kline queries against the spot REST API.
type MarketService struct {
	cli *binance.Client
}

func NewMarketService(cli *binance.Client) *MarketService {
	return &MarketService{cli: cli}
}

// GetRecentKlines returns the most recent closed klines, oldest first.
//
// Binance includes the still-open kline of the current interval in the
// response, so one extra kline is requested and anything not yet closed is
// filtered out. Malformed entries are dropped and logged.
func (m *MarketService) GetRecentKlines(ctx context.Context, symbol exchange.Symbol, interval exchange.Interval, limit int) ([]exchange.Kline, error) {
	res, err := m.cli.NewKlinesService().
		Symbol(symbol.ToString()).
		Interval(interval.ToString()).
		Limit(limit + 1).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	klines := make([]exchange.Kline, 0, len(res))
	for _, raw := range res {
		k, err := convertKline(raw, interval)
		if err != nil {
			slog.Warn("dropping malformed rest kline", "symbol", symbol.ToString(), "error", err)
			continue
		}
		if k.CloseTime.After(now) {
			// current interval, not closed yet
			continue
		}
		klines = append(klines, k)
	}
	if len(klines) > limit {
		klines = klines[len(klines)-limit:]
	}
	return klines, nil
}
