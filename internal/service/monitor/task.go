package monitor

import (
	"github.com/soltrack/candle-sentry/internal/schedule"
)

var _ schedule.Task = (*Monitor)(nil)

func (m *Monitor) Name() string {
	return "candle anomaly monitor"
}
