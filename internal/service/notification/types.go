package notification

import (
	"context"
	"fmt"
)

// Sender delivers one formatted message to one chat. Implementations fail
// independently of the detection pipeline; callers log errors and move on.
type Sender interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}

// ConsoleSender prints messages to stdout. It is the default sink when no
// telegram credentials are configured.
type ConsoleSender struct{}

func (ConsoleSender) SendMessage(ctx context.Context, chatID string, text string) error {
	fmt.Printf("[alert chat=%s]\n%s\n", chatID, text)
	return nil
}
