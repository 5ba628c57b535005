package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/sentiscan/internal/models"
)

const (
	openAIModel          = openai.GPT3Dot5Turbo1106
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests

	sentimentPrompt = `You are a binary sentiment classifier. ` +
		`Classify the user's text as POSITIVE or NEGATIVE and respond with JSON only: ` +
		`{"label": "POSITIVE" or "NEGATIVE", "confidence": a number between 0 and 1}`
)

// OpenAIClassifier classifies text through the chat completions API. It is
// meant for deployments without a local ONNX runtime.
type OpenAIClassifier struct {
	client *openai.Client
}

func NewOpenAIClassifier() (*OpenAIClassifier, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY in environment variables")
	}

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{
		Timeout: openAIRequestTimeout,
	}

	return &OpenAIClassifier{client: openai.NewClientWithConfig(config)}, nil
}

type openAISentiment struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (o *OpenAIClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sentimentPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Prediction{}, errors.New("chat completion returned no choices")
	}

	var parsed openAISentiment
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return Prediction{}, fmt.Errorf("failed to parse completion: %w", err)
	}

	if parsed.Label != models.LabelPositive && parsed.Label != models.LabelNegative {
		return Prediction{}, fmt.Errorf("unexpected label from completion: %q", parsed.Label)
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}

	return Prediction{Label: parsed.Label, Confidence: parsed.Confidence}, nil
}
