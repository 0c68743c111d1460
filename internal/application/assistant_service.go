package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/pkg/ai"
)

// AssistantInstruction is the fixed system prompt of the farming assistant.
const AssistantInstruction = "You are an advanced AI named AgroSphere AI, specifically designed to revolutionize agriculture and farming practices. Your creator is the talented Code Crafters Team, renowned for their innovation and expertise in AI technology."

type AssistantService struct {
	Model   ai.TextGenerator
	Timeout time.Duration
	Logger  *logrus.Logger
}

// NewAssistantService wires the assistant; model may be nil when no API key is configured.
func NewAssistantService(model ai.TextGenerator, logger *logrus.Logger) *AssistantService {
	return &AssistantService{Model: model, Timeout: 30 * time.Second, Logger: logger}
}

// Ask answers prompt with the configured model.
func (s *AssistantService) Ask(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrInvalidPrompt
	}
	if s.Model == nil {
		return "", fmt.Errorf("%w: model not configured", ErrAIUnavailable)
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	answer, err := s.Model.GenerateText(ctx, AssistantInstruction, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	return answer, nil
}
