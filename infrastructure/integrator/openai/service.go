package openai

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	openaidomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

type OpenAIIntegrator struct {
	cfg    *config.Config
	Client openaiclient.Client
}

func New(cfg *config.Config, client openaiclient.Client) *OpenAIIntegrator {
	return &OpenAIIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// Complete envia o prompt forçando a chamada da função e devolve a resposta sem interpretá-la
func (s *OpenAIIntegrator) Complete(ctx context.Context, prompt *domain.Prompt) (*domain.Completion, error) {
	if prompt == nil {
		return nil, domain.NewSyncError(domain.FailureKindUnexpected, errors.New("prompt vazio"))
	}

	body, err := s.Client.CreateChatCompletion(ctx, BuildChatRequest(prompt))
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, domain.NewSyncError(domain.FailureKindMalformedGeneration, errors.New("resposta da openai não é um JSON válido"))
	}

	result := gjson.GetManyBytes(body, openaidomain.PathArguments, openaidomain.PathContent, openaidomain.PathFinishReason)
	completion := &domain.Completion{
		Arguments:    result[0].String(),
		Content:      result[1].String(),
		FinishReason: result[2].String(),
	}

	logrus.WithFields(logrus.Fields{
		"model":         prompt.Model,
		"finish_reason": completion.FinishReason,
		"tool_call":     completion.Arguments != "",
	}).Debug("openai: resposta recebida")

	return completion, nil
}

// BuildChatRequest monta a conversa com a função declarada e obrigatória
func BuildChatRequest(prompt *domain.Prompt) *openaidomain.ChatRequest {
	request := &openaidomain.ChatRequest{
		Model: prompt.Model,
		Messages: []openaidomain.Message{
			{Role: openaidomain.RoleSystem, Content: prompt.System},
			{Role: openaidomain.RoleUser, Content: prompt.User},
		},
		Seed: prompt.Seed,
	}

	if prompt.FunctionName != "" {
		request.Tools = []openaidomain.Tool{{
			Type: openaidomain.ToolFunction,
			Function: openaidomain.Function{
				Name:        prompt.FunctionName,
				Description: "Return concrete optimisation steps for the daily report.",
				Parameters:  prompt.Parameters,
			},
		}}
		request.ToolChoice = &openaidomain.ToolChoice{
			Type:     openaidomain.ToolFunction,
			Function: openaidomain.ToolChoiceFunction{Name: prompt.FunctionName},
		}
	}

	return request
}
