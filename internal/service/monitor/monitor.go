package monitor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/soltrack/candle-sentry/internal/entity"
	"github.com/soltrack/candle-sentry/internal/repo"
	"github.com/soltrack/candle-sentry/internal/service/exchange"
	"github.com/soltrack/candle-sentry/internal/service/notification"
	"github.com/soltrack/candle-sentry/internal/service/signal"
	"github.com/soltrack/candle-sentry/internal/service/stats"
)

const alertQueueSize = 16

// Monitor owns the pipeline: one serial consumer drains the candle source
// and drives the rolling stats and the evaluator in arrival order, while
// alert delivery runs decoupled behind a bounded queue so a slow or failing
// sink never stalls candle processing.
type Monitor struct {
	source  CandleSource
	rolling *stats.Rolling
	eval    *signal.Evaluator

	symbol exchange.Symbol
	chatID string

	sender notification.Sender
	repo   repo.AlertRepo

	alertCh chan *signal.Decision
	now     func() time.Time
}

type Option func(*Monitor)

func WithSender(sender notification.Sender, chatID string) Option {
	return func(m *Monitor) {
		m.sender = sender
		m.chatID = chatID
	}
}

// WithAlertRepo enables journaling of fired alerts.
func WithAlertRepo(r repo.AlertRepo) Option {
	return func(m *Monitor) {
		m.repo = r
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		m.now = now
	}
}

func NewMonitor(source CandleSource, rolling *stats.Rolling, eval *signal.Evaluator, symbol exchange.Symbol, opts ...Option) *Monitor {
	m := &Monitor{
		source:  source,
		rolling: rolling,
		eval:    eval,
		symbol:  symbol,
		sender:  notification.ConsoleSender{},
		alertCh: make(chan *signal.Decision, alertQueueSize),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run blocks until the source stops delivering, normally because ctx was
// cancelled. In-flight evaluation completes before return; no decisions are
// made afterwards.
func (m *Monitor) Run(ctx context.Context) error {
	feedDone := make(chan error, 1)
	go func() {
		feedDone <- m.source.Run(ctx)
	}()

	dispatchDone := make(chan struct{})
	go func() {
		defer close(dispatchDone)
		m.dispatchLoop(ctx)
	}()

	for k := range m.source.Candles() {
		metrics, ok := m.rolling.Observe(k)
		if !ok {
			slog.Warn("ignoring duplicate or out-of-order kline",
				"symbol", m.symbol.ToString(), "closeTime", k.CloseTime)
			continue
		}
		d := m.eval.Evaluate(k, metrics, m.now())
		if d == nil {
			continue
		}
		slog.Info("anomaly signal fired",
			"symbol", m.symbol.ToString(),
			"kinds", d.Kinds,
			"closeTime", k.CloseTime,
			"zscore", metrics.VolumeZScore,
			"pctChange", metrics.PricePctChange)
		m.journal(ctx, d)
		m.enqueue(d)
	}

	close(m.alertCh)
	<-dispatchDone

	err := <-feedDone
	if err != nil && ctx.Err() != nil {
		// cancellation is the normal way out
		return nil
	}
	return err
}

// enqueue never blocks the consumer: when the queue is full the oldest
// pending alert is dropped, live monitoring favors freshness.
func (m *Monitor) enqueue(d *signal.Decision) {
	for {
		select {
		case m.alertCh <- d:
			return
		default:
		}
		select {
		case old := <-m.alertCh:
			slog.Warn("alert queue full, dropping oldest", "kinds", old.Kinds, "closeTime", old.Candle.CloseTime)
		default:
		}
	}
}

func (m *Monitor) dispatchLoop(ctx context.Context) {
	for d := range m.alertCh {
		text := notification.FormatDecision(m.symbol, d)
		if err := m.sender.SendMessage(ctx, m.chatID, text); err != nil {
			slog.Error("alert delivery failed, detection continues",
				"error", err, "kinds", d.Kinds)
		}
	}
}

func (m *Monitor) journal(ctx context.Context, d *signal.Decision) {
	if m.repo == nil {
		return
	}
	kinds := strings.Join(lo.Map(d.Kinds, func(k signal.Kind, _ int) string {
		return string(k)
	}), ",")
	_, err := m.repo.Create(ctx, entity.Alert{
		BaseSymbol:     m.symbol.Base,
		QuoteSymbol:    m.symbol.Quote,
		Kinds:          kinds,
		Price:          d.Candle.Close.String(),
		Volume:         d.Candle.Volume.String(),
		VolumeZScore:   d.Metrics.VolumeZScore,
		PricePctChange: d.Metrics.PricePctChange,
		PriceDirection: d.PriceDirection,
		CandleClosedAt: d.Candle.CloseTime,
		CreatedAt:      m.now(),
	})
	if err != nil {
		slog.Error("failed to journal alert", "error", err, "kinds", d.Kinds)
	}
}
