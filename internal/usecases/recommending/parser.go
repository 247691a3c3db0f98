package recommending

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/pkg/utils"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type rawRecommendation struct {
	ID         string   `json:"id"`
	Category   string   `json:"category" validate:"required,oneof=budget creative targeting store_listing"`
	Text       string   `json:"text" validate:"required"`
	Confidence *float64 `json:"confidence" validate:"required,gte=0,lte=1"`
}

func malformed(format string, args ...any) error {
	return domain.NewSyncError(domain.FailureKindMalformedGeneration, fmt.Errorf(format, args...))
}

// ParseCompletion valida a resposta do modelo e monta a lista de recomendações.
// Qualquer desvio do formato invalida a resposta inteira. Recomendações que dependem
// de uma fonte ausente no relatório são descartadas, e a lista é limitada a limit itens.
func ParseCompletion(completion *domain.Completion, report *domain.DailyReport, limit int) ([]domain.Recommendation, error) {
	if completion == nil {
		return nil, malformed("resposta vazia")
	}

	if completion.FinishReason == domain.FinishReasonLength {
		return nil, malformed("resposta truncada pelo limite de tokens")
	}

	payload := strings.TrimSpace(completion.Arguments)
	if payload == "" {
		payload = strings.TrimSpace(completion.Content)
	}
	if payload == "" {
		return nil, malformed("resposta sem argumentos nem conteúdo")
	}

	if !gjson.Valid(payload) {
		return nil, malformed("resposta não é um JSON válido")
	}

	items := gjson.Get(payload, "recommendations")
	if !items.IsArray() {
		return nil, malformed("campo recommendations ausente ou não é uma lista")
	}

	seen := map[string]bool{}
	var recommendations []domain.Recommendation

	for index, item := range items.Array() {
		var raw rawRecommendation
		if err := json.UnmarshalFromString(item.Raw, &raw); err != nil {
			return nil, malformed("recomendação %d: %v", index, err)
		}

		raw.ID = strings.TrimSpace(raw.ID)
		raw.Text = strings.TrimSpace(raw.Text)

		if err := validate.Struct(raw); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				return nil, malformed("recomendação %d: campo %s inválido (%s)", index, validationErrors[0].Field(), validationErrors[0].Tag())
			}
			return nil, malformed("recomendação %d: %v", index, err)
		}

		if raw.ID != "" {
			if seen[raw.ID] {
				return nil, malformed("recomendação %d: id %s repetido", index, raw.ID)
			}
			seen[raw.ID] = true
		}

		recommendations = append(recommendations, domain.Recommendation{
			ID:         raw.ID,
			Category:   domain.RecommendationCategory(raw.Category),
			Text:       raw.Text,
			Confidence: *raw.Confidence,
		})
	}

	result := make([]domain.Recommendation, 0, len(recommendations))
	for _, recommendation := range recommendations {
		if !report.HasSource(recommendation.Category.Source()) {
			logrus.WithFields(logrus.Fields{
				"date":     domain.FormatDate(report.Date),
				"category": recommendation.Category,
				"source":   recommendation.Category.Source(),
			}).Warn("Recomendação descartada: depende de fonte ausente no relatório")
			continue
		}

		if recommendation.ID == "" {
			id, err := generateUniqueID(seen)
			if err != nil {
				return nil, domain.NewSyncError(domain.FailureKindUnexpected, err)
			}
			recommendation.ID = id
		}

		result = append(result, recommendation)
	}

	if limit > 0 && len(result) > limit {
		logrus.WithFields(logrus.Fields{
			"received": len(result),
			"limit":    limit,
		}).Warn("Lista de recomendações truncada")
		result = result[:limit]
	}

	return result, nil
}

func generateUniqueID(seen map[string]bool) (string, error) {
	for {
		id, err := utils.GenerateID()
		if err != nil {
			return "", err
		}
		if !seen[id] {
			seen[id] = true
			return id, nil
		}
	}
}
