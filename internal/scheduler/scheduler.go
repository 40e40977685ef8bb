package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"landlord/server/internal/metrics"
	"landlord/server/internal/models"
)

type overdueMarker interface {
	MarkOverdue(ctx context.Context, today models.Date) (int64, error)
}

// Scheduler periodically moves pending rent payments past their due date to overdue.
type Scheduler struct {
	payments overdueMarker
	interval time.Duration
	logger   *logrus.Logger
	today    func() models.Date
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex
}

func NewScheduler(payments overdueMarker, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		payments: payments,
		interval: interval,
		logger:   logger,
		today:    models.Today,
		stopChan: make(chan struct{}),
	}
}

// Start runs one sweep immediately and then one per interval. A non-positive interval disables it.
func (s *Scheduler) Start() {
	if s.interval <= 0 {
		s.logger.Info("Overdue rent sweep disabled")
		return
	}
	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-s.stopChan
		cancel()
	}()

	s.RunOverdueSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOverdueSweep(ctx)
		}
	}
}

// RunOverdueSweep performs one sweep and returns how many payments changed.
func (s *Scheduler) RunOverdueSweep(ctx context.Context) int64 {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	today := s.today()
	changed, err := s.payments.MarkOverdue(ctx, today)
	if err != nil {
		s.logger.WithError(err).WithField("today", today.String()).Error("Overdue rent sweep failed")
		return 0
	}

	metrics.OverdueMarked(changed)
	entry := s.logger.WithFields(logrus.Fields{"today": today.String(), "marked_overdue": changed})
	if changed > 0 {
		entry.Info("Marked rent payments overdue")
	} else {
		entry.Debug("No rent payments became overdue")
	}
	return changed
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
	}
	close(s.stopChan)
	s.wg.Wait()
}
