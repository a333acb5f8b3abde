package config

import (
	"log/slog"

	"github.com/finops-lab/compliancebot/pkg/service/ai"
	"github.com/urfave/cli/v3"
)

// OpenAI holds configuration for the rule-extraction LLM client
type OpenAI struct {
	apiKey      string
	model       string
	temperature float64
}

func (x *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key for rule extraction (AI analysis is disabled when unset)",
			Category:    "OpenAI",
			Sources:     cli.EnvVars("COMPLIANCEBOT_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &x.apiKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI chat model",
			Category:    "OpenAI",
			Value:       "gpt-4o",
			Sources:     cli.EnvVars("COMPLIANCEBOT_OPENAI_MODEL"),
			Destination: &x.model,
		},
		&cli.FloatFlag{
			Name:        "openai-temperature",
			Usage:       "OpenAI sampling temperature",
			Category:    "OpenAI",
			Value:       0.3,
			Sources:     cli.EnvVars("COMPLIANCEBOT_OPENAI_TEMPERATURE"),
			Destination: &x.temperature,
		},
	}
}

func (x OpenAI) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("api-key.len", len(x.apiKey)),
		slog.String("model", x.model),
		slog.Float64("temperature", x.temperature),
	)
}

// Configure creates the rule extractor. An unset API key still returns a
// working extractor whose calls fail with a classified
// missing-credentials cause, so workflows explain the gap to users.
func (x *OpenAI) Configure() *ai.Extractor {
	return ai.New(x.apiKey,
		ai.WithModel(x.model),
		ai.WithTemperature(float32(x.temperature)),
	)
}
