package recommending

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const FunctionName = "recommend_actions"

const systemPrompt = "You are a senior performance-marketing strategist specialised in Google Ads for app installs " +
	"and in Google Play store listing optimisation. You are given a JSON payload with one day of metrics: " +
	"google_ads (account totals: impressions, clicks, cost, conversions, ctr, average_cpc, campaigns) and " +
	"google_play (installs, uninstalls, device_installs, active_device_installs, reviews, average_rating). " +
	"A source set to null did not respond for that day.\n\n" +
	"Task:\n" +
	"Return between 1 and %d concrete optimisation steps. Each step has exactly one category among: " +
	"budget, creative, targeting, store_listing. Base every step on the metrics provided and state the metric " +
	"that motivates it. confidence is a number between 0 and 1.\n" +
	"Rules:\n" +
	"1) Only return the function call, no prose. 2) Never invent metrics absent from the payload. " +
	"3) Do not repeat the same advice with different wording."

// recommendationSchema descreve os argumentos esperados de recommend_actions
var recommendationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"recommendations": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":         map[string]any{"type": "string"},
					"category":   map[string]any{"type": "string", "enum": []string{"budget", "creative", "targeting", "store_listing"}},
					"text":       map[string]any{"type": "string"},
					"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				},
				"required":             []string{"category", "text", "confidence"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"recommendations"},
	"additionalProperties": false,
}

// BuildPrompt serializa o relatório e avisa o modelo sobre as fontes ausentes
func BuildPrompt(cfg *config.Config, report *domain.DailyReport) (*domain.Prompt, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar relatório: %w", err)
	}

	var user strings.Builder
	user.WriteString("Daily report:\n")
	user.Write(payload)

	if missing := report.MissingSources(); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, source := range missing {
			names = append(names, string(source))
		}
		fmt.Fprintf(&user, "\n\nMissing sources for this day: %s. Do not return categories that depend on them "+
			"(store_listing depends on google_play; budget, creative and targeting depend on google_ads).",
			strings.Join(names, ", "))
	}

	prompt := &domain.Prompt{
		Model:        cfg.OpenAI.Model,
		System:       fmt.Sprintf(systemPrompt, cfg.OpenAI.MaxRecommendations),
		User:         user.String(),
		FunctionName: FunctionName,
		Parameters:   recommendationSchema,
	}

	if cfg.OpenAI.Seed != 0 {
		seed := cfg.OpenAI.Seed
		prompt.Seed = &seed
	}

	return prompt, nil
}
