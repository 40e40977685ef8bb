package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"landlord/server/config"
	"landlord/server/internal/metrics"
)

const (
	temperature     = 0.7
	notConfigured   = "AI service not configured"
	providerFailure = "AI service error: "
)

type Kind string

const (
	KindInsights      Kind = "insights"
	KindMaintenance   Kind = "maintenance"
	KindRent          Kind = "rent"
	KindCommunication Kind = "communication"
)

type template struct {
	system    string
	intro     string
	asks      []string
	field     string
	maxTokens int
}

var templates = map[Kind]template{
	KindInsights: {
		system: "You are a property management AI assistant. Provide practical, actionable insights for landlords.",
		intro:  "Analyze the following property data and provide insights:",
		asks: []string{
			"Market analysis and recommendations",
			"Maintenance suggestions",
			"Rent optimization opportunities",
			"Risk assessment",
			"General property management advice",
		},
		field:     "insights",
		maxTokens: 1000,
	},
	KindMaintenance: {
		system: "You are a property maintenance AI assistant. Provide practical maintenance recommendations.",
		intro:  "Based on this property and maintenance history, provide recommendations:",
		asks: []string{
			"Preventive maintenance suggestions",
			"Priority items to address",
			"Cost estimates",
			"Timeline recommendations",
			"Vendor suggestions if applicable",
		},
		field:     "recommendations",
		maxTokens: 800,
	},
	KindRent: {
		system: "You are a real estate pricing AI assistant. Provide data-driven rent pricing recommendations.",
		intro:  "Analyze rent pricing for this property:",
		asks: []string{
			"Recommended rent price",
			"Market comparison",
			"Pricing strategy",
			"Seasonal considerations",
			"Competitive analysis",
		},
		field:     "analysis",
		maxTokens: 600,
	},
	KindCommunication: {
		system:    "You are a property management communication AI. Generate professional, friendly tenant communications.",
		intro:     "Generate a professional communication for this tenant:",
		field:     "message",
		maxTokens: 400,
	},
}

// Envelope is the adapter's reply: either {<field>: text, "status": "success"}
// or {"error": text}. The text is whatever the provider returned, unparsed.
type Envelope map[string]string

func success(field, text string) Envelope {
	return Envelope{field: text, "status": "success"}
}

func failure(msg string) Envelope {
	return Envelope{"error": msg}
}

func (e Envelope) OK() bool {
	return e["status"] == "success"
}

func (e Envelope) ErrorMessage() string {
	return e["error"]
}

// Section is one labelled block of the user prompt. Non-string values are embedded as JSON.
type Section struct {
	Label string
	Value interface{}
}

type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Adapter turns entity snapshots into model-written text. Without a usable
// credential it stays disabled and never touches the network.
type Adapter struct {
	client  completer
	model   string
	timeout time.Duration
	logger  *logrus.Logger
}

func NewAdapter(cfg *config.Config, logger *logrus.Logger) *Adapter {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	a := &Adapter{
		model:   cfg.AI.Model,
		timeout: cfg.AI.Timeout,
		logger:  logger,
	}
	if a.model == "" {
		a.model = openai.GPT3Dot5Turbo
	}
	if a.timeout <= 0 {
		a.timeout = 30 * time.Second
	}

	if !cfg.AIEnabled() {
		logger.Warn("AI provider credential not configured, AI endpoints will report it")
		return a
	}

	clientConfig := openai.DefaultConfig(cfg.AI.APIKey)
	if cfg.AI.BaseURL != "" {
		clientConfig.BaseURL = cfg.AI.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: a.timeout}
	a.client = openai.NewClientWithConfig(clientConfig)
	return a
}

func (a *Adapter) Enabled() bool {
	return a.client != nil
}

// Summarize makes one completion call for kind over the given sections.
func (a *Adapter) Summarize(ctx context.Context, kind Kind, sections ...Section) Envelope {
	tmpl, ok := templates[kind]
	if !ok {
		return failure(providerFailure + fmt.Sprintf("unknown summary kind %q", kind))
	}
	if a.client == nil {
		metrics.AIRequest(string(kind), "disabled", 0)
		return failure(notConfigured)
	}

	prompt, err := buildPrompt(tmpl, sections)
	if err != nil {
		return a.fail(kind, err, 0)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tmpl.system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   tmpl.maxTokens,
		Temperature: temperature,
	})
	elapsed := time.Since(start)
	if err != nil {
		return a.fail(kind, err, elapsed)
	}
	if len(resp.Choices) == 0 {
		return a.fail(kind, errors.New("provider returned no choices"), elapsed)
	}

	metrics.AIRequest(string(kind), "success", elapsed)
	a.logger.WithFields(logrus.Fields{
		"kind":       kind,
		"model":      a.model,
		"tokens":     resp.Usage.TotalTokens,
		"latency_ms": elapsed.Milliseconds(),
	}).Info("Generated AI summary")
	return success(tmpl.field, resp.Choices[0].Message.Content)
}

func (a *Adapter) fail(kind Kind, err error, elapsed time.Duration) Envelope {
	metrics.AIRequest(string(kind), "error", elapsed)
	a.logger.WithError(err).WithField("kind", kind).Error("AI provider call failed")
	return failure(providerFailure + err.Error())
}

func buildPrompt(tmpl template, sections []Section) (string, error) {
	var b strings.Builder
	b.WriteString(tmpl.intro)
	b.WriteString("\n\n")
	for _, s := range sections {
		value, ok := s.Value.(string)
		if !ok {
			raw, err := json.Marshal(s.Value)
			if err != nil {
				return "", fmt.Errorf("encode %s: %w", strings.ToLower(s.Label), err)
			}
			value = string(raw)
		}
		fmt.Fprintf(&b, "%s: %s\n", s.Label, value)
	}
	if len(tmpl.asks) > 0 {
		b.WriteString("\nPlease provide:\n")
		for i, ask := range tmpl.asks {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ask)
		}
		b.WriteString("\nFormat as JSON with clear, actionable recommendations.")
	} else {
		b.WriteString("\nCreate a professional, friendly, and clear message that addresses the context.\n")
		b.WriteString("Include appropriate tone and necessary details.")
	}
	return b.String(), nil
}
