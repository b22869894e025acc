package binance

import (
	"context"
	"log/slog"

	"github.com/adshao/go-binance/v2"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
)

var _ exchange.StreamService = (*StreamService)(nil)

// StreamService subscribes to the spot kline websocket stream.
type StreamService struct{}

func NewStreamService() *StreamService {
	return &StreamService{}
}

// SubscribeKline starts one websocket subscription and forwards closed klines.
//
// Open (non-final) klines and malformed payloads are dropped here so the
// consumer only ever sees one kline per closed interval. When the transport
// fails, the error is forwarded and both channels are closed; reconnecting is
// the caller's job.
func (s *StreamService) SubscribeKline(ctx context.Context, symbol exchange.Symbol, interval exchange.Interval) (<-chan exchange.Kline, <-chan error, error) {
	out := make(chan exchange.Kline, 16)
	errs := make(chan error, 1)

	// The handler runs synchronously inside the read loop, so out is never
	// closed while a send is in flight: the loop cannot exit mid-handler.
	handler := func(event *binance.WsKlineEvent) {
		if !event.Kline.IsFinal {
			return
		}
		k, err := convertWsKline(event.Kline)
		if err != nil {
			slog.Warn("dropping malformed ws kline", "symbol", symbol.ToString(), "error", err)
			return
		}
		select {
		case out <- k:
		case <-ctx.Done():
		}
	}
	errHandler := func(err error) {
		select {
		case errs <- err:
		default:
		}
	}

	doneC, stopC, err := binance.WsKlineServe(symbol.ToString(), interval.ToString(), handler, errHandler)
	if err != nil {
		return nil, nil, err
	}

	go func() {
		select {
		case <-ctx.Done():
			close(stopC)
			<-doneC
		case <-doneC:
		}
		close(out)
		close(errs)
	}()

	return out, errs, nil
}
