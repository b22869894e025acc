package feed

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
)

const defaultOutBuffer = 16

type Config struct {
	Symbol   exchange.Symbol
	Interval exchange.Interval

	// BackoffBase and BackoffCap bound the reconnect delay:
	// min(base << attempt, cap). Defaults: 1s / 60s.
	BackoffBase time.Duration
	BackoffCap  time.Duration

	// FallbackGrace is how long the push stream must stay down before the
	// pull fallback starts polling. PollInterval defaults to one candle
	// interval, PollLimit to 2 klines per poll.
	FallbackGrace time.Duration
	PollInterval  time.Duration
	PollLimit     int
}

func (c *Config) applyDefaults() {
	if c.BackoffBase <= 0 {
		c.BackoffBase = time.Second
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = 60 * time.Second
	}
	if c.FallbackGrace <= 0 {
		c.FallbackGrace = 30 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = c.Interval.Duration()
	}
	if c.PollLimit <= 0 {
		c.PollLimit = 2
	}
}

// Feed delivers each closed kline of one symbol/interval exactly once, in
// close-time order, on the channel returned by Candles. It rides the push
// subscription while it is healthy and falls back to polling the market
// service when the stream has been down past the grace threshold. Duplicates
// from the push/poll overlap are dropped by close time before delivery.
type Feed struct {
	stream exchange.StreamService
	market exchange.MarketService
	cfg    Config

	out chan exchange.Kline

	mu            sync.Mutex
	state         State
	attempt       int
	downSince     time.Time // zero while streaming
	lastDelivered time.Time
}

func New(stream exchange.StreamService, market exchange.MarketService, cfg Config) *Feed {
	cfg.applyDefaults()
	return &Feed{
		stream: stream,
		market: market,
		cfg:    cfg,
		out:    make(chan exchange.Kline, defaultOutBuffer),
	}
}

// Candles is the single ordered output channel. It is closed when Run returns.
func (f *Feed) Candles() <-chan exchange.Kline {
	return f.out
}

func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Run drives the connection state machine until ctx is cancelled. Transient
// transport failures are retried forever; the only way out is cancellation.
func (f *Feed) Run(ctx context.Context) error {
	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		f.pollLoop(ctx)
	}()
	// the poller must be gone before the output channel closes
	defer func() {
		<-pollDone
		f.transition(StateDisconnected)
		close(f.out)
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.transition(StateConnecting)
		klines, errs, err := f.stream.SubscribeKline(ctx, f.cfg.Symbol, f.cfg.Interval)
		if err != nil {
			slog.Error("kline subscribe failed", "symbol", f.cfg.Symbol.ToString(), "error", err)
		} else {
			f.transition(StateStreaming)
			f.serve(ctx, klines, errs)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		f.transition(StateReconnecting)
		delay := f.nextBackoff()
		slog.Warn("kline stream down, reconnecting",
			"symbol", f.cfg.Symbol.ToString(), "delay", delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(withJitter(delay)):
		}
	}
}

// serve consumes one subscription until it ends. The backoff attempt counter
// resets only after a streaming period that actually delivered a candle, so
// a connection that dies before producing anything keeps escalating.
func (f *Feed) serve(ctx context.Context, klines <-chan exchange.Kline, errs <-chan error) {
	delivered := false
	for {
		select {
		case <-ctx.Done():
			return
		case k, ok := <-klines:
			if !ok {
				select {
				case err := <-errs:
					if err != nil {
						slog.Warn("kline stream error", "symbol", f.cfg.Symbol.ToString(), "error", err)
					}
				default:
				}
				if delivered {
					f.resetBackoff()
				}
				return
			}
			if f.deliver(ctx, k) {
				delivered = true
			}
		}
	}
}

// deliver forwards one kline downstream unless its close time has already
// been delivered. The lock is held across the send so the push reader and
// the fallback poller cannot interleave out of order; the ctx case keeps
// shutdown from deadlocking on a gone consumer.
func (f *Feed) deliver(ctx context.Context, k exchange.Kline) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.lastDelivered.IsZero() && !k.CloseTime.After(f.lastDelivered) {
		return false
	}
	f.lastDelivered = k.CloseTime
	select {
	case f.out <- k:
		return true
	case <-ctx.Done():
		return false
	}
}

// pollLoop is the pull fallback. It wakes every poll interval and, once the
// stream has been down longer than the grace threshold, fetches the most
// recent closed klines so downstream statistics do not stall. Poll errors
// are retried on the next tick.
func (f *Feed) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(f.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if !f.fallbackDue() {
			continue
		}

		klines, err := f.market.GetRecentKlines(ctx, f.cfg.Symbol, f.cfg.Interval, f.cfg.PollLimit)
		if err != nil {
			slog.Warn("fallback poll failed", "symbol", f.cfg.Symbol.ToString(), "error", err)
			continue
		}
		fresh := lo.Filter(klines, func(k exchange.Kline, _ int) bool {
			return k.CloseTime.After(f.lastDeliveredTime())
		})
		for _, k := range fresh {
			if f.deliver(ctx, k) {
				slog.Info("kline delivered via fallback",
					"symbol", f.cfg.Symbol.ToString(), "closeTime", k.CloseTime)
			}
		}
	}
}

func (f *Feed) fallbackDue() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateStreaming || f.state == StateDisconnected {
		return false
	}
	return !f.downSince.IsZero() && time.Since(f.downSince) >= f.cfg.FallbackGrace
}

func (f *Feed) lastDeliveredTime() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastDelivered
}

func (f *Feed) transition(next State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == next {
		return
	}
	if !validTransition(f.state, next) {
		slog.Error("illegal feed state transition", "from", f.state, "to", next)
	}
	f.state = next
	switch next {
	case StateStreaming:
		f.downSince = time.Time{}
	case StateReconnecting:
		if f.downSince.IsZero() {
			f.downSince = time.Now()
		}
	}
}

func (f *Feed) nextBackoff() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := backoffDelay(f.cfg.BackoffBase, f.cfg.BackoffCap, f.attempt)
	f.attempt++
	return d
}

func (f *Feed) resetBackoff() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempt = 0
}

// backoffDelay computes min(base << attempt, cap) without overflowing.
func backoffDelay(base, cap time.Duration, attempt int) time.Duration {
	if attempt > 30 {
		return cap
	}
	d := base << uint(attempt)
	if d <= 0 || d > cap {
		return cap
	}
	return d
}

// withJitter spreads reconnects by up to 10% to avoid a thundering herd.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	return d + time.Duration(rand.Int63n(int64(d)/10+1))
}
