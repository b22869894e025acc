package exchange

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Symbol 交易对
type Symbol struct {
	Base  string
	Quote string
}

func (s Symbol) IsZero() bool {
	return s.Base == "" || s.Quote == ""
}

func (s Symbol) ToString() string {
	return fmt.Sprintf("%s%s", s.Base, s.Quote)
}

func (s Symbol) ToSlashString() string {
	return fmt.Sprintf("%s/%s", s.Base, s.Quote)
}

// ParseSymbol splits a concatenated symbol like "SOLUSDT" on a known quote suffix.
func ParseSymbol(s string) Symbol {
	s = strings.ToUpper(s)
	quotes := []string{"USDT", "BUSD", "USDC", "BTC", "ETH"}
	for _, q := range quotes {
		if strings.HasSuffix(s, q) && len(s) > len(q) {
			return Symbol{Base: strings.TrimSuffix(s, q), Quote: q}
		}
	}
	// fallback
	return Symbol{Base: s}
}

type Interval string

func (i Interval) ToString() string {
	return string(i)
}

// Duration returns the wall-clock length of one candle of this interval.
func (i Interval) Duration() time.Duration {
	switch i {
	case Interval1m:
		return time.Minute
	case Interval3m:
		return 3 * time.Minute
	case Interval5m:
		return 5 * time.Minute
	case Interval15m:
		return 15 * time.Minute
	case Interval30m:
		return 30 * time.Minute
	case Interval1h:
		return time.Hour
	case Interval2h:
		return 2 * time.Hour
	case Interval4h:
		return 4 * time.Hour
	case Interval6h:
		return 6 * time.Hour
	case Interval8h:
		return 8 * time.Hour
	case Interval12h:
		return 12 * time.Hour
	case Interval1d:
		return 24 * time.Hour
	case Interval3d:
		return 72 * time.Hour
	case Interval1w:
		return 7 * 24 * time.Hour
	case Interval1M:
		return 30 * 24 * time.Hour
	default:
		return time.Minute
	}
}

const (
	Interval1m  Interval = "1m"
	Interval3m  Interval = "3m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval2h  Interval = "2h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval3d  Interval = "3d"
	Interval1w  Interval = "1w"
	Interval1M  Interval = "1M"
)

type Kline struct {
	OpenTime         time.Time
	CloseTime        time.Time
	Open             decimal.Decimal
	Close            decimal.Decimal
	High             decimal.Decimal
	Low              decimal.Decimal
	Volume           decimal.Decimal // 成交量
	QuoteAssetVolume decimal.Decimal // 成交额
	TradeNum         int64           // 成交笔数
	Interval         Interval
}

// MarketService is the pull side of market data: request/response kline queries.
type MarketService interface {
	// GetRecentKlines returns the most recent closed klines, oldest first.
	GetRecentKlines(ctx context.Context, symbol Symbol, interval Interval, limit int) ([]Kline, error)
}

// StreamService is the push side of market data: a live kline subscription.
//
// The returned kline channel carries only closed klines. When the underlying
// transport fails, one error is sent on the error channel and both channels
// are closed; the subscription is not restarted by the implementation.
type StreamService interface {
	SubscribeKline(ctx context.Context, symbol Symbol, interval Interval) (<-chan Kline, <-chan error, error)
}
