package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloombuddy/plant-care-api/internal/api/metrics"
	"github.com/bloombuddy/plant-care-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
	sendTimeout    = 10 * time.Second
)

// SMSDispatcher fans SMS messages out to a fixed set of workers, sharded by
// phone number, so retries for one recipient never reorder behind another's
// backlog. Delivery is best-effort: failures are logged and counted, never
// propagated to the enqueuing request.
type SMSDispatcher struct {
	workers []chan ports.SMSMessage
	sender  ports.SMSSender
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewSMSDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSMSDispatcher(numWorkers int, sender ports.SMSSender, log zerolog.Logger) *SMSDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &SMSDispatcher{
		workers: make([]chan ports.SMSMessage, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SMSMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channels and
// stop when ctx is cancelled.
func (d *SMSDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.run(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *SMSDispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue routes the message to its shard. A full shard drops the message
// rather than blocking the HTTP request that issued the code.
func (d *SMSDispatcher) Enqueue(msg ports.SMSMessage) {
	idx := d.shard(msg.Phone)
	select {
	case d.workers[idx] <- msg:
		metrics.SMSQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.SMSSendTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("phone", msg.Phone).Int("worker", idx).Msg("sms queue full, dropping message")
	}
}

func (d *SMSDispatcher) run(ctx context.Context, id int, ch chan ports.SMSMessage) {
	defer d.wg.Done()
	worker := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			metrics.SMSQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
			d.deliver(msg)
		}
	}
}

func (d *SMSDispatcher) deliver(msg ports.SMSMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.sender.SendSMS(ctx, msg.Phone, msg.Body); err != nil {
		metrics.SMSSendTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).Str("phone", msg.Phone).Msg("sms delivery failed")
		return
	}
	metrics.SMSSendTotal.WithLabelValues("ok").Inc()
}

func (d *SMSDispatcher) shard(phone string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(phone))
	return int(h.Sum32() % uint32(len(d.workers)))
}
