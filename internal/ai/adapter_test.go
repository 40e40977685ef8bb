package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landlord/server/config"
	"landlord/server/internal/models"
)

type chatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-3.5-turbo",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	})
	return string(body)
}

func testConfig(apiKey, baseURL string, timeout time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.AI.APIKey = apiKey
	cfg.AI.BaseURL = baseURL
	cfg.AI.Model = "gpt-3.5-turbo"
	cfg.AI.Timeout = timeout
	return cfg
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestDisabledAdapterNeverCallsProvider(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	for _, key := range []string{"", "your_openai_api_key_here"} {
		adapter := NewAdapter(testConfig(key, server.URL+"/v1", time.Second), quietLogger())
		assert.False(t, adapter.Enabled())

		ctx := context.Background()
		envelopes := []Envelope{
			adapter.PropertyInsights(ctx, nil),
			adapter.MaintenanceRecommendations(ctx, models.PropertySnapshot{}, nil),
			adapter.RentAnalysis(ctx, models.PropertySnapshot{}, models.MarketSummary{}),
			adapter.TenantCommunication(ctx, models.TenantSnapshot{}, "rent reminder"),
		}
		for _, env := range envelopes {
			assert.Equal(t, Envelope{"error": "AI service not configured"}, env)
			assert.False(t, env.OK())
		}
	}
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestSummarizeKinds(t *testing.T) {
	tests := []struct {
		name      string
		call      func(a *Adapter) Envelope
		field     string
		maxTokens int
		system    string
		contains  []string
	}{
		{
			name: "Insights",
			call: func(a *Adapter) Envelope {
				return a.PropertyInsights(context.Background(), []models.PropertySnapshot{{ID: 1, Name: "Maple Court", RentAmount: 1500}})
			},
			field:     "insights",
			maxTokens: 1000,
			system:    "You are a property management AI assistant. Provide practical, actionable insights for landlords.",
			contains:  []string{"Properties: [", `"name":"Maple Court"`},
		},
		{
			name: "Maintenance",
			call: func(a *Adapter) Envelope {
				return a.MaintenanceRecommendations(context.Background(),
					models.PropertySnapshot{ID: 1, Name: "Maple Court"},
					[]models.MaintenanceSnapshot{{ID: 9, Title: "Leaky faucet"}})
			},
			field:     "recommendations",
			maxTokens: 800,
			system:    "You are a property maintenance AI assistant. Provide practical maintenance recommendations.",
			contains:  []string{"Maintenance History: [", "Leaky faucet"},
		},
		{
			name: "Rent",
			call: func(a *Adapter) Envelope {
				return a.RentAnalysis(context.Background(),
					models.PropertySnapshot{ID: 1, RentAmount: 1500},
					models.MarketSummary{Basis: "radius", Comparables: 2, AverageRent: 1600, SubjectRent: 1500})
			},
			field:     "analysis",
			maxTokens: 600,
			system:    "You are a real estate pricing AI assistant. Provide data-driven rent pricing recommendations.",
			contains:  []string{"Market Data: {", `"average_rent":1600`},
		},
		{
			name: "Communication",
			call: func(a *Adapter) Envelope {
				return a.TenantCommunication(context.Background(),
					models.TenantSnapshot{ID: 3, FullName: "Jane Renter", PropertyName: "Maple Court"},
					"Water will be shut off on Friday")
			},
			field:     "message",
			maxTokens: 400,
			system:    "You are a property management communication AI. Generate professional, friendly tenant communications.",
			contains:  []string{"Jane Renter", "Context: Water will be shut off on Friday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got chatRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(completionBody("not necessarily json")))
			}))
			defer server.Close()

			adapter := NewAdapter(testConfig("sk-test", server.URL+"/v1", time.Second), quietLogger())
			env := tt.call(adapter)

			assert.Equal(t, Envelope{tt.field: "not necessarily json", "status": "success"}, env)
			assert.True(t, env.OK())
			assert.Equal(t, "gpt-3.5-turbo", got.Model)
			assert.Equal(t, tt.maxTokens, got.MaxTokens)
			assert.InDelta(t, 0.7, got.Temperature, 1e-6)
			require.Len(t, got.Messages, 2)
			assert.Equal(t, "system", got.Messages[0].Role)
			assert.Equal(t, tt.system, got.Messages[0].Content)
			for _, fragment := range tt.contains {
				assert.Contains(t, got.Messages[1].Content, fragment)
			}
		})
	}
}

func TestProviderFailureBecomesErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	adapter := NewAdapter(testConfig("sk-bad", server.URL+"/v1", time.Second), quietLogger())
	env := adapter.PropertyInsights(context.Background(), nil)

	assert.False(t, env.OK())
	assert.True(t, strings.HasPrefix(env.ErrorMessage(), "AI service error: "), env.ErrorMessage())
	assert.Contains(t, env.ErrorMessage(), "Incorrect API key provided")
}

func TestProviderTimeoutBecomesErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	adapter := NewAdapter(testConfig("sk-test", server.URL+"/v1", 50*time.Millisecond), quietLogger())

	start := time.Now()
	env := adapter.RentAnalysis(context.Background(), models.PropertySnapshot{}, models.MarketSummary{})
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, strings.HasPrefix(env.ErrorMessage(), "AI service error: "))
}

func TestEmptyChoicesIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	adapter := NewAdapter(testConfig("sk-test", server.URL+"/v1", time.Second), quietLogger())
	env := adapter.PropertyInsights(context.Background(), nil)
	assert.Equal(t, "AI service error: provider returned no choices", env.ErrorMessage())
}

func TestUnknownKind(t *testing.T) {
	adapter := NewAdapter(testConfig("", "", time.Second), quietLogger())
	env := adapter.Summarize(context.Background(), Kind("poetry"))
	assert.False(t, env.OK())
	assert.Contains(t, env.ErrorMessage(), "unknown summary kind")
}
