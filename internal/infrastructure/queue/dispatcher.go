package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/mangrovewatch/guardian-system/internal/api/metrics"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the target user id, guaranteeing per-user delivery ordering. It
// is the fire-and-forget sink between entity mutations and the notification
// service: producers never block on or see delivery failures.
type Dispatcher struct {
	workers []chan ports.NotificationInput
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Push enqueues a notification for the worker responsible for its user. A
// full worker channel drops the notification rather than blocking the caller.
func (d *Dispatcher) Push(input ports.NotificationInput) {
	i := d.shardIndex(input.UserID)
	select {
	case d.workers[i] <- input:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		d.log.Error().Str("user_id", input.UserID).Int("worker_id", i).Msg("notification queue full, dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if _, err := d.service.Dispatch(ctx, input); err != nil {
				d.log.Error().Err(err).
					Str("user_id", input.UserID).
					Int("worker_id", id).
					Msg("notification dispatch failed")
			}
		}
	}
}
