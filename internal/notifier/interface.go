package notifier

import "context"

// Notifier доставляет текстовое сообщение во внешний канал оповещений
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
