package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"landlord/server/config"
	"landlord/server/internal/geocoding"
	"landlord/server/internal/metrics"
	"landlord/server/internal/models"
	"landlord/server/internal/queue"
	"landlord/server/internal/repository"
)

type coordinateStore interface {
	SetCoordinates(ctx context.Context, id uint, at models.Location, latitude, longitude float64) error
}

type addressGeocoder interface {
	GeocodeAddress(ctx context.Context, address string) (geocoding.Coordinates, error)
}

// GeocodeProcessor consumes geocode jobs and stores the resulting coordinates.
type GeocodeProcessor struct {
	store      coordinateStore
	geocoder   addressGeocoder
	queue      *queue.JobQueue
	maxRetries int
	retryDelay time.Duration
	logger     *logrus.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewGeocodeProcessor(store coordinateStore, geocoder addressGeocoder, jobs *queue.JobQueue, cfg *config.Config, logger *logrus.Logger) *GeocodeProcessor {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &GeocodeProcessor{
		store:      store,
		geocoder:   geocoder,
		queue:      jobs,
		maxRetries: cfg.Geocoding.MaxRetries,
		retryDelay: cfg.Geocoding.RetryDelay,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (p *GeocodeProcessor) Start() {
	p.queue.Subscribe(p.processJob)
	p.queue.Start()
}

// Stop abandons pending retries and waits for the queue to drain its current job.
func (p *GeocodeProcessor) Stop() {
	p.cancel()
	_ = p.queue.Close()
}

// Enqueue schedules a property for geocoding. A full queue drops the job.
func (p *GeocodeProcessor) Enqueue(property *models.Property) {
	job := queue.GeocodeJob{
		PropertyID: property.ID,
		Location:   property.Location(),
		Address:    geocoding.FullAddress(property),
	}
	if err := p.queue.Push(job); err != nil {
		metrics.GeocodeJob("dropped")
		p.logger.WithError(err).WithField("property_id", property.ID).Warn("Dropped geocode job")
	}
}

func (p *GeocodeProcessor) processJob(job queue.GeocodeJob) error {
	log := p.logger.WithFields(logrus.Fields{"property_id": job.PropertyID, "address": job.Address})

	var err error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			log.Infof("Retrying geocode job, attempt %d of %d", attempt, p.maxRetries)
			select {
			case <-p.ctx.Done():
				return p.ctx.Err()
			case <-time.After(p.retryDelay):
			}
		}

		var coords geocoding.Coordinates
		coords, err = p.geocoder.GeocodeAddress(p.ctx, job.Address)
		if errors.Is(err, geocoding.ErrNoResults) {
			metrics.GeocodeJob("no_results")
			log.Warn("Address could not be geocoded")
			return nil
		}
		if err == nil {
			err = p.store.SetCoordinates(p.ctx, job.PropertyID, job.Location, coords.Latitude, coords.Longitude)
			if errors.Is(err, repository.ErrNotFound) {
				metrics.GeocodeJob("gone")
				log.Info("Property deleted, moved or located before geocoding finished")
				return nil
			}
		}
		if err == nil {
			metrics.GeocodeJob("success")
			log.Info("Stored property coordinates")
			return nil
		}

		log.WithError(err).Error("Geocode job failed")
		if p.ctx.Err() != nil {
			return p.ctx.Err()
		}
	}

	metrics.GeocodeJob("failed")
	return fmt.Errorf("failed to process geocode job after %d attempts: %w", p.maxRetries+1, err)
}
