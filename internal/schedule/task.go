package schedule

import (
	"context"
	"log/slog"
)

// Task is a named, long-running unit of work.
type Task interface {
	Run(ctx context.Context) error
	Name() string
}

// Run executes the task and logs its lifecycle.
func Run(ctx context.Context, task Task) error {
	slog.Info("task starting", "task", task.Name())
	err := task.Run(ctx)
	if err != nil {
		slog.Error("task stopped with error", "task", task.Name(), "error", err)
		return err
	}
	slog.Info("task stopped", "task", task.Name())
	return nil
}
