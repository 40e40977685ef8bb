package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"landlord/server/internal/cache"
	"landlord/server/internal/models"
)

// Coordinates are cached far longer than entity snapshots; addresses rarely move.
const cacheTTL = 30 * 24 * time.Hour

var ErrNoResults = errors.New("no geocoding results")

type coordinateCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Put(ctx context.Context, key string, value interface{}, ttl time.Duration) bool
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves street addresses through a Nominatim-compatible search endpoint.
type Geocoder struct {
	logger      *logrus.Logger
	endpoint    string
	cache       coordinateCache
	client      *http.Client
	minInterval time.Duration

	mu       sync.Mutex
	lastCall time.Time
}

// NewGeocoder builds a geocoder. cache may be nil. Requests are spaced at least
// minInterval apart to respect the public Nominatim usage policy.
func NewGeocoder(endpoint string, cache coordinateCache, minInterval time.Duration, logger *logrus.Logger) *Geocoder {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Geocoder{
		logger:      logger,
		endpoint:    endpoint,
		cache:       cache,
		client:      &http.Client{Timeout: 10 * time.Second},
		minInterval: minInterval,
	}
}

// FullAddress is the query string sent for a property.
func FullAddress(p *models.Property) string {
	return fmt.Sprintf("%s, %s, %s %s", p.Address, p.City, p.State, p.ZipCode)
}

type nominatimResponse []struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *Geocoder) GeocodeAddress(ctx context.Context, address string) (Coordinates, error) {
	key := cache.GeocodeKey(address)
	var coords Coordinates
	if g.cache != nil && g.cache.Get(ctx, key, &coords) {
		g.logger.WithFields(logrus.Fields{
			"address":   address,
			"latitude":  coords.Latitude,
			"longitude": coords.Longitude,
			"source":    "cache",
		}).Debug("Found coordinates in cache")
		return coords, nil
	}

	if err := g.wait(ctx); err != nil {
		return Coordinates{}, err
	}

	params := url.Values{
		"q":      []string{address},
		"format": []string{"json"},
		"limit":  []string{"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "Landlord AI Assistant/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocoding request failed: status %d", resp.StatusCode)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Coordinates{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result) == 0 {
		return Coordinates{}, fmt.Errorf("%w for address: %s", ErrNoResults, address)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(result[0].Lat), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude %q: %w", result[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(result[0].Lon), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude %q: %w", result[0].Lon, err)
	}
	coords = Coordinates{Latitude: lat, Longitude: lon}

	g.logger.WithFields(logrus.Fields{
		"address":   address,
		"latitude":  lat,
		"longitude": lon,
		"source":    "nominatim",
	}).Info("Successfully geocoded address")

	if g.cache != nil {
		g.cache.Put(ctx, key, coords, cacheTTL)
	}
	return coords, nil
}

// wait blocks until minInterval has passed since the previous outbound request.
func (g *Geocoder) wait(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if delay := g.minInterval - time.Since(g.lastCall); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	g.lastCall = time.Now()
	return nil
}
