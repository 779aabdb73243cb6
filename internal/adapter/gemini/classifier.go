// Package gemini classifies article content with the Gemini generateContent
// API. The model is asked for a strict JSON verdict; anything else is an
// error the caller degrades to "not relevant".
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wechat-monitor/internal/domain/model"
	"wechat-monitor/internal/domain/ports"
)

const endpointTemplate = "https://generativelanguage.googleapis.com/v1/models/%s:generateContent?key=%s"

// Classifier judges job-posting relevance via Gemini.
type Classifier struct {
	httpClient *http.Client
	apiKey     string
	model      string
	logger     ports.Logger
}

// NewClassifier builds a Gemini-backed classifier.
func NewClassifier(apiKey, modelName string, timeout time.Duration, logger ports.Logger) *Classifier {
	return &Classifier{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		model:      modelName,
		logger:     logger,
	}
}

// Classify sends the article text to Gemini and parses its JSON verdict.
func (c *Classifier) Classify(ctx context.Context, title, content string) (model.Classification, error) {
	if c.apiKey == "" || c.model == "" {
		return model.Classification{}, fmt.Errorf("gemini configuration missing")
	}

	body, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": c.buildPrompt(title, content)},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.2,
			"topP":            0.8,
			"maxOutputTokens": 512,
		},
	})
	if err != nil {
		return model.Classification{}, fmt.Errorf("marshal gemini request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf(endpointTemplate, c.model, c.apiKey), bytes.NewReader(body))
	if err != nil {
		return model.Classification{}, fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Classification{}, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Classification{}, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Classification{}, fmt.Errorf("decode gemini response: %w", err)
	}

	raw := firstText(payload.Candidates)
	if raw == "" {
		return model.Classification{}, fmt.Errorf("gemini response is empty")
	}

	return parseVerdict(raw)
}

func (c *Classifier) buildPrompt(title, content string) string {
	var builder strings.Builder
	builder.WriteString("You review WeChat public-account articles for job-posting relevance.\n")
	builder.WriteString("Respond with a single JSON object and nothing else, using exactly these keys:\n")
	builder.WriteString(`{"relevant": true|false, "labels": ["..."], "summary": "..."}` + "\n")
	builder.WriteString("- relevant: whether the article announces or discusses job openings.\n")
	builder.WriteString("- labels: up to 5 short tags (role, location, seniority).\n")
	builder.WriteString("- summary: at most 2 sentences, same language as the article.\n\n")
	builder.WriteString("Title: ")
	builder.WriteString(title)
	builder.WriteString("\n\nContent:\n")
	builder.WriteString(content)
	return builder.String()
}

func firstText(candidates []struct {
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}) string {
	for _, candidate := range candidates {
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

// parseVerdict strips the markdown fences Gemini sometimes wraps JSON in
// and decodes the verdict object.
func parseVerdict(raw string) (model.Classification, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```JSON")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var verdict struct {
		Relevant bool     `json:"relevant"`
		Labels   []string `json:"labels"`
		Summary  string   `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return model.Classification{}, fmt.Errorf("parse gemini verdict: %w", err)
	}

	labels := make([]string, 0, len(verdict.Labels))
	for _, label := range verdict.Labels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}

	return model.Classification{
		Relevant: verdict.Relevant,
		Labels:   labels,
		Summary:  strings.TrimSpace(verdict.Summary),
	}, nil
}
