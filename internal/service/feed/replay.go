package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
)

// ReplaySource streams a fixed batch of recent historical klines over the
// same channel contract the live Feed uses. It exists for threshold tuning:
// run the detector over the last N closed candles and see which of them
// would have fired, without waiting for a live spike.
type ReplaySource struct {
	market   exchange.MarketService
	symbol   exchange.Symbol
	interval exchange.Interval
	limit    int

	out chan exchange.Kline
}

func NewReplaySource(market exchange.MarketService, symbol exchange.Symbol, interval exchange.Interval, limit int) *ReplaySource {
	return &ReplaySource{
		market:   market,
		symbol:   symbol,
		interval: interval,
		limit:    limit,
		out:      make(chan exchange.Kline, defaultOutBuffer),
	}
}

func (r *ReplaySource) Candles() <-chan exchange.Kline {
	return r.out
}

// Run fetches the batch once and streams it oldest first, then returns.
// The candle channel is closed on return.
func (r *ReplaySource) Run(ctx context.Context) error {
	defer close(r.out)

	klines, err := r.market.GetRecentKlines(ctx, r.symbol, r.interval, r.limit)
	if err != nil {
		return fmt.Errorf("fetch replay klines: %w", err)
	}
	slog.Info("replaying historical klines",
		"symbol", r.symbol.ToString(), "interval", r.interval.ToString(), "count", len(klines))

	for _, k := range klines {
		select {
		case r.out <- k:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
