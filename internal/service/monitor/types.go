package monitor

import (
	"context"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
)

// CandleSource produces the ordered stream of closed candles the monitor
// consumes. The feed package provides the production implementation; tests
// inject a scripted one.
type CandleSource interface {
	// Run drives delivery until ctx is cancelled; the candle channel is
	// closed when Run returns.
	Run(ctx context.Context) error
	Candles() <-chan exchange.Kline
}
