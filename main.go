package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soltrack/candle-sentry/internal/config"
	"github.com/soltrack/candle-sentry/internal/repo"
	"github.com/soltrack/candle-sentry/internal/schedule"
	"github.com/soltrack/candle-sentry/internal/service/exchange"
	binanceex "github.com/soltrack/candle-sentry/internal/service/exchange/binance"
	"github.com/soltrack/candle-sentry/internal/service/feed"
	"github.com/soltrack/candle-sentry/internal/service/monitor"
	signalsvc "github.com/soltrack/candle-sentry/internal/service/signal"
	"github.com/soltrack/candle-sentry/internal/service/stats"
	"github.com/soltrack/candle-sentry/ioc"
)

func initViper() (replay int) {

	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.yaml", "specify config file")
	replayN := pflag.Int("replay", 0, "replay the last N closed candles against the detector and exit")
	pflag.Parse()

	viper.SetConfigFile(*file)
	if err := viper.ReadInConfig(); err != nil {
		// every monitor key has a default; credentials may come from env
		slog.Warn("config file not loaded, running on defaults", "error", err)
	}
	return *replayN
}

func main() {
	replay := initViper()

	cfg, err := config.LoadMonitor()
	if err != nil {
		panic(err)
	}
	symbol := exchange.ParseSymbol(cfg.Symbol)
	interval := exchange.Interval(cfg.Interval)

	cli := ioc.InitBinanceCli()
	marketSvc := binanceex.NewMarketService(cli)

	rolling, err := stats.NewRolling(cfg.VolumeWindow, cfg.PriceWindow)
	if err != nil {
		panic(err)
	}
	eval := signalsvc.NewEvaluator(signalsvc.Config{
		VolumeZScore:    cfg.VolumeZScore,
		MinuteVolumeMin: decimal.NewFromFloat(cfg.MinuteVolumeMin),
		PricePctChange:  cfg.PricePctChange,
		Cooldown:        cfg.Cooldown(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if replay > 0 {
		// dry run over history, alerts go to stdout only
		source := feed.NewReplaySource(marketSvc, symbol, interval, replay)
		mon := monitor.NewMonitor(source, rolling, eval, symbol)
		if err := schedule.Run(ctx, mon); err != nil {
			panic(err)
		}
		return
	}

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	alertRepo := repo.NewAlertRepo(db)

	streamSvc := binanceex.NewStreamService()
	candleFeed := feed.New(streamSvc, marketSvc, feed.Config{
		Symbol:   symbol,
		Interval: interval,
	})

	sender, chatId := ioc.InitSender()
	mon := monitor.NewMonitor(candleFeed, rolling, eval, symbol,
		monitor.WithSender(sender, chatId),
		monitor.WithAlertRepo(alertRepo),
	)

	slog.Info("starting candle anomaly monitor",
		"symbol", symbol.ToString(), "interval", interval.ToString())
	if err := schedule.Run(ctx, mon); err != nil {
		panic(err)
	}
}
