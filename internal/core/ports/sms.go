package ports

import "context"

// SMSMessage is a single text message awaiting delivery.
type SMSMessage struct {
	Phone string
	Body  string
}

// SMSSender performs the actual out-of-band delivery.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// SMSQueue accepts messages for asynchronous, best-effort delivery.
// Enqueue never blocks the caller on the downstream provider.
type SMSQueue interface {
	Enqueue(msg SMSMessage)
}
