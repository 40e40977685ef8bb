package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"landlord/server/internal/models"
)

type MockPayments struct {
	mock.Mock
	calls int32
}

func (m *MockPayments) MarkOverdue(ctx context.Context, today models.Date) (int64, error) {
	atomic.AddInt32(&m.calls, 1)
	args := m.Called(today)
	return args.Get(0).(int64), args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestRunOverdueSweep(t *testing.T) {
	today := models.NewDate(2024, time.March, 1)

	tests := []struct {
		name    string
		changed int64
		err     error
		want    int64
	}{
		{name: "Marks payments", changed: 3, want: 3},
		{name: "Nothing due", changed: 0, want: 0},
		{name: "Store failure is logged", err: errors.New("db down"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := &MockPayments{}
			payments.On("MarkOverdue", today).Return(tt.changed, tt.err).Once()

			s := NewScheduler(payments, time.Hour, quietLogger())
			s.today = func() models.Date { return today }

			assert.Equal(t, tt.want, s.RunOverdueSweep(context.Background()))
			payments.AssertExpectations(t)
		})
	}
}

func TestSchedulerRunsAtStartupAndOnInterval(t *testing.T) {
	payments := &MockPayments{}
	payments.On("MarkOverdue", mock.Anything).Return(int64(0), nil)

	s := NewScheduler(payments, 20*time.Millisecond, quietLogger())
	s.Start()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&payments.calls) >= 3
	}, 2*time.Second, 10*time.Millisecond)

	s.Stop()
	calls := atomic.LoadInt32(&payments.calls)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, calls, atomic.LoadInt32(&payments.calls))

	// A second Stop is a no-op.
	s.Stop()
}

func TestSchedulerDisabled(t *testing.T) {
	payments := &MockPayments{}
	s := NewScheduler(payments, 0, quietLogger())
	s.Start()
	s.Stop()
	assert.Zero(t, atomic.LoadInt32(&payments.calls))
}
