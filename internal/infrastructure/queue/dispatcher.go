package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/schoolrecords/records-portal/internal/api/metrics"
	"github.com/schoolrecords/records-portal/internal/core/domain"
	"github.com/schoolrecords/records-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

var (
	ErrQueueFull   = errors.New("reset delivery queue is full")
	ErrQueueClosed = errors.New("reset delivery queue is closed")
)

// Dispatcher routes reset notices to a fixed set of workers using consistent
// hashing on the employee id, so notices for one account are delivered in order.
// It implements ports.ResetDelivery and never blocks the request path.
type Dispatcher struct {
	workers []chan domain.ResetNotice
	sink    ports.ResetDelivery
	log     zerolog.Logger
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers in front of sink.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.ResetDelivery, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ResetNotice, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ResetNotice, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Close has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Deliver enqueues notice on the worker responsible for its employee id.
// It returns ErrQueueFull instead of blocking when that worker is saturated,
// and ErrQueueClosed once Close has been called.
func (d *Dispatcher) Deliver(_ context.Context, notice domain.ResetNotice) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}

	idx := d.shardIndex(notice.EmployeeID)
	select {
	case d.workers[idx] <- notice:
		metrics.ResetQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return nil
	default:
		metrics.ResetDeliveriesTotal.WithLabelValues("dropped").Inc()
		return ErrQueueFull
	}
}

// Close stops accepting work and waits for queued notices to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps an employee id deterministically to a worker index.
func (d *Dispatcher) shardIndex(employeeID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(employeeID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ResetNotice) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case notice, ok := <-ch:
			if !ok {
				return
			}
			metrics.ResetQueueDepth.WithLabelValues(label).Dec()
			if err := d.sink.Deliver(ctx, notice); err != nil {
				metrics.ResetDeliveriesTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("employee_id", notice.EmployeeID).
					Int("worker_id", id).
					Msg("reset notice delivery failed")
				continue
			}
			metrics.ResetDeliveriesTotal.WithLabelValues("delivered").Inc()
		}
	}
}
