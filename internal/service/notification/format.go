package notification

import (
	"fmt"
	"strings"

	"github.com/soltrack/candle-sentry/internal/service/exchange"
	"github.com/soltrack/candle-sentry/internal/service/signal"
)

// FormatDecision renders one alert decision as a telegram HTML message.
func FormatDecision(symbol exchange.Symbol, d *signal.Decision) string {
	k := d.Candle

	var parts []string
	switch {
	case d.Has(signal.KindVolume) && d.Has(signal.KindPrice):
		parts = append(parts, fmt.Sprintf("🚨 <b>%s anomaly</b>: <b>VOLUME + PRICE</b>", symbol.Base))
	case d.Has(signal.KindVolume):
		parts = append(parts, fmt.Sprintf("📈 <b>%s Volume Spike</b>", symbol.Base))
	case d.Has(signal.KindPrice):
		parts = append(parts, fmt.Sprintf("⚡ <b>%s Price Spike</b>", symbol.Base))
	}

	parts = append(parts,
		fmt.Sprintf("Symbol: <b>%s</b>  |  Interval: <b>%s</b>", symbol.ToString(), k.Interval.ToString()),
		fmt.Sprintf("Close: <b>%s</b>  High/Low: <b>%s</b>/<b>%s</b>",
			k.Close.StringFixed(4), k.High.StringFixed(4), k.Low.StringFixed(4)),
		fmt.Sprintf("Minute Volume: <b>%s %s</b>", k.Volume.StringFixed(2), symbol.Base),
	)
	if d.Has(signal.KindVolume) {
		parts = append(parts, fmt.Sprintf("Volume z-score: <b>%.2f</b>", d.Metrics.VolumeZScore))
	}
	if d.Has(signal.KindPrice) {
		parts = append(parts, fmt.Sprintf("Change: <b>%+.2f%%</b>", d.Metrics.PricePctChange))
	}
	parts = append(parts,
		fmt.Sprintf("Time: <code>%s UTC</code>", k.CloseTime.UTC().Format("2006-01-02 15:04")),
		fmt.Sprintf("Source: Binance %s kline", k.Interval.ToString()),
	)
	return strings.Join(parts, "\n")
}
