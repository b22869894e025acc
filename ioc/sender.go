package ioc

import (
	"log/slog"

	"github.com/spf13/viper"

	"github.com/soltrack/candle-sentry/internal/service/notification"
)

// InitSender picks the alert sink. Without telegram credentials the monitor
// still runs, printing alerts to the console.
func InitSender() (notification.Sender, string) {
	type Config struct {
		Token  string `mapstructure:"token"`
		ChatId string `mapstructure:"chat_id"`
	}

	var cfg Config
	if err := viper.UnmarshalKey("telegram", &cfg); err != nil {
		panic(err)
	}

	if cfg.Token == "" || cfg.ChatId == "" {
		slog.Warn("telegram token or chat_id not set, alerts go to console")
		return notification.ConsoleSender{}, cfg.ChatId
	}
	return notification.NewTelegramSender(cfg.Token), cfg.ChatId
}
