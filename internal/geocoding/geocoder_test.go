package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landlord/server/internal/cache"
	"landlord/server/internal/models"
)

func TestFullAddress(t *testing.T) {
	p := &models.Property{Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"}
	assert.Equal(t, "1 Main St, Springfield, IL 62701", FullAddress(p))
}

func TestGeocodeAddress(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    Coordinates
		wantErr error
	}{
		{
			name:   "Result",
			status: http.StatusOK,
			body:   `[{"lat":"39.7817","lon":"-89.6501"}]`,
			want:   Coordinates{Latitude: 39.7817, Longitude: -89.6501},
		},
		{
			name:    "No results",
			status:  http.StatusOK,
			body:    `[]`,
			wantErr: ErrNoResults,
		},
		{
			name:   "Server error",
			status: http.StatusServiceUnavailable,
			body:   `busy`,
		},
		{
			name:   "Malformed coordinate",
			status: http.StatusOK,
			body:   `[{"lat":"north","lon":"-89.6501"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "1 Main St, Springfield, IL 62701", r.URL.Query().Get("q"))
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				assert.NotEmpty(t, r.Header.Get("User-Agent"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			g := NewGeocoder(server.URL, nil, 0, logrus.New())
			got, err := g.GeocodeAddress(context.Background(), "1 Main St, Springfield, IL 62701")

			if tt.want == (Coordinates{}) {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.True(t, errors.Is(err, tt.wantErr))
				}
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Latitude, got.Latitude, 1e-9)
			assert.InDelta(t, tt.want.Longitude, got.Longitude, 1e-9)
		})
	}
}

func TestGeocodeAddressUsesCache(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`[{"lat":"1.5","lon":"2.5"}]`))
	}))
	defer server.Close()

	redisServer := miniredis.RunT(t)
	c, err := cache.New("redis://"+redisServer.Addr(), logrus.New())
	require.NoError(t, err)
	defer c.Close()

	g := NewGeocoder(server.URL, c, 0, logrus.New())
	for i := 0; i < 3; i++ {
		coords, err := g.GeocodeAddress(context.Background(), "2 Elm St, Springfield")
		require.NoError(t, err)
		assert.Equal(t, Coordinates{Latitude: 1.5, Longitude: 2.5}, coords)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.True(t, redisServer.Exists(cache.GeocodeKey("2 Elm St, Springfield")))
}

func TestGeocodeAddressSpacesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"1","lon":"1"}]`))
	}))
	defer server.Close()

	g := NewGeocoder(server.URL, nil, 100*time.Millisecond, logrus.New())
	start := time.Now()
	for i := 0; i < 2; i++ {
		_, err := g.GeocodeAddress(context.Background(), "somewhere")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.GeocodeAddress(ctx, "somewhere")
	assert.ErrorIs(t, err, context.Canceled)
}
