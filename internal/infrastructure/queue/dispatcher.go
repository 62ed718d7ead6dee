package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/api/metrics"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
)

const (
	defaultWorkers         = 8
	defaultBuffer          = 256
	defaultDeliveryTimeout = 15 * time.Second
)

// Config tunes the dispatcher. Zero values fall back to defaults.
type Config struct {
	Workers         int
	Buffer          int
	DeliveryTimeout time.Duration
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the notification key, so deliveries sharing a key stay ordered.
// It implements ports.Notifier.
type Dispatcher struct {
	workers []chan ports.Notification
	service ports.NotificationService
	timeout time.Duration
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher delivering through service.
func NewDispatcher(cfg Config, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultBuffer
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = defaultDeliveryTimeout
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, cfg.Workers),
		service: service,
		timeout: cfg.DeliveryTimeout,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, cfg.Buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Notify hands n to the worker responsible for its key. It never blocks: a
// full worker queue drops the notification.
func (d *Dispatcher) Notify(n ports.Notification) {
	idx := d.shardIndex(n.Key)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.log.Warn().
			Str("key", n.Key).
			Str("kind", kind(n)).
			Int("worker_id", idx).
			Msg("notification queue full, dropping")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, n ports.Notification) {
	k := kind(n)
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := d.service.Deliver(ctx, n)
	metrics.NotificationDeliveryDuration.WithLabelValues(k).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues(k).Inc()
		d.log.Error().Err(err).
			Str("key", n.Key).
			Str("kind", k).
			Int("worker_id", id).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsDeliveredTotal.WithLabelValues(k).Inc()
}

func kind(n ports.Notification) string {
	switch {
	case n.Email != nil && n.Event != nil:
		return "email+event"
	case n.Email != nil:
		return "email"
	case n.Event != nil:
		return "event"
	}
	return "empty"
}
