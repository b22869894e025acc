package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Monitor is the immutable detection configuration, loaded once at startup.
// Defaults: SOLUSDT 1m candles, 30 minute volume window, z >= 3, 10 minute
// price window, 2% move, 10 minute per-kind cooldown.
type Monitor struct {
	Symbol          string  `mapstructure:"symbol"`
	Interval        string  `mapstructure:"interval"`
	VolumeWindow    int     `mapstructure:"volume_window"`
	VolumeZScore    float64 `mapstructure:"volume_zscore"`
	MinuteVolumeMin float64 `mapstructure:"minute_volume_min"`
	PriceWindow     int     `mapstructure:"price_window"`
	PricePctChange  float64 `mapstructure:"price_pct_change"`

	AlertCooldownMin   int `mapstructure:"alert_cooldown_min"`
	MergeSignalsWindow int `mapstructure:"merge_signals_window"`
}

func (m Monitor) Cooldown() time.Duration {
	return time.Duration(m.AlertCooldownMin) * time.Minute
}

// Validate rejects configurations the engine cannot run with. A failure here
// is fatal at startup; nothing re-validates at runtime.
func (m Monitor) Validate() error {
	if m.Symbol == "" {
		return fmt.Errorf("config: symbol must not be empty")
	}
	if m.Interval == "" {
		return fmt.Errorf("config: interval must not be empty")
	}
	if m.VolumeWindow < 1 {
		return fmt.Errorf("config: volume_window must be >= 1, got %d", m.VolumeWindow)
	}
	if m.PriceWindow < 1 {
		return fmt.Errorf("config: price_window must be >= 1, got %d", m.PriceWindow)
	}
	if m.VolumeZScore < 0 {
		return fmt.Errorf("config: volume_zscore must be >= 0, got %v", m.VolumeZScore)
	}
	if m.MinuteVolumeMin < 0 {
		return fmt.Errorf("config: minute_volume_min must be >= 0, got %v", m.MinuteVolumeMin)
	}
	if m.PricePctChange < 0 {
		return fmt.Errorf("config: price_pct_change must be >= 0, got %v", m.PricePctChange)
	}
	if m.AlertCooldownMin < 0 {
		return fmt.Errorf("config: alert_cooldown_min must be >= 0, got %d", m.AlertCooldownMin)
	}
	if m.MergeSignalsWindow < 0 {
		return fmt.Errorf("config: merge_signals_window must be >= 0, got %d", m.MergeSignalsWindow)
	}
	return nil
}

// LoadMonitor reads the monitor key from the already initialized viper
// instance, applying defaults for anything the file omits.
func LoadMonitor() (Monitor, error) {
	viper.SetDefault("monitor.symbol", "SOLUSDT")
	viper.SetDefault("monitor.interval", "1m")
	viper.SetDefault("monitor.volume_window", 30)
	viper.SetDefault("monitor.volume_zscore", 3.0)
	viper.SetDefault("monitor.minute_volume_min", 0.0)
	viper.SetDefault("monitor.price_window", 10)
	viper.SetDefault("monitor.price_pct_change", 2.0)
	viper.SetDefault("monitor.alert_cooldown_min", 10)
	viper.SetDefault("monitor.merge_signals_window", 1)

	// per-key getters merge defaults with file and explicit overrides,
	// which UnmarshalKey does not do for absent sections
	m := Monitor{
		Symbol:             viper.GetString("monitor.symbol"),
		Interval:           viper.GetString("monitor.interval"),
		VolumeWindow:       viper.GetInt("monitor.volume_window"),
		VolumeZScore:       viper.GetFloat64("monitor.volume_zscore"),
		MinuteVolumeMin:    viper.GetFloat64("monitor.minute_volume_min"),
		PriceWindow:        viper.GetInt("monitor.price_window"),
		PricePctChange:     viper.GetFloat64("monitor.price_pct_change"),
		AlertCooldownMin:   viper.GetInt("monitor.alert_cooldown_min"),
		MergeSignalsWindow: viper.GetInt("monitor.merge_signals_window"),
	}
	if err := m.Validate(); err != nil {
		return Monitor{}, err
	}
	return m, nil
}
