package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"landlord/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// GeocodeJob asks for one property's address to be resolved to coordinates.
// Location records the columns Address was built from.
type GeocodeJob struct {
	PropertyID uint
	Location   models.Location
	Address    string
}

// JobQueue is a bounded in-memory queue of geocode jobs fanned out to subscribers.
type JobQueue struct {
	items    chan GeocodeJob
	done     chan struct{}
	stopped  chan struct{}
	maxSize  int
	closed   bool
	started  bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func(GeocodeJob) error
}

func NewJobQueue(bufferSize int, logger *logrus.Logger) *JobQueue {
	if logger == nil {
		logger = logrus.New()
	}
	return &JobQueue{
		items:    make(chan GeocodeJob, bufferSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func(GeocodeJob) error, 0),
	}
}

// Push enqueues a job without blocking.
func (q *JobQueue) Push(job GeocodeJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- job:
		q.logger.WithField("property_id", job.PropertyID).Debug("Pushed geocode job to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler called for every job, in subscription order.
func (q *JobQueue) Subscribe(handler func(GeocodeJob) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins delivering jobs on a single goroutine.
func (q *JobQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.process()
}

func (q *JobQueue) process() {
	defer close(q.stopped)
	for {
		select {
		case <-q.done:
			return
		case job := <-q.items:
			q.dispatch(job)
		}
	}
}

func (q *JobQueue) dispatch(job GeocodeJob) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(job); err != nil {
			q.logger.WithError(err).WithField("property_id", job.PropertyID).Error("Handler failed to process geocode job")
		}
	}
}

// Close stops delivery and rejects further pushes. Jobs still buffered are dropped.
// It waits for an in-flight job to finish.
func (q *JobQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	started := q.started
	close(q.done)
	q.mu.Unlock()

	if started {
		<-q.stopped
	}
	return nil
}

func (q *JobQueue) Len() int {
	return len(q.items)
}

func (q *JobQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
