package summarize

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const summarizerSystemPrompt = "You are an expert news summarizer. " +
	"Your goal is to provide a concise, easy-to-understand summary of the " +
	"given news article content. Focus on the key points and present them clearly."

// LLM abstracts the completion backend so tests can substitute a mock.
type LLM interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAILLM implements LLM using the official openai-go SDK (chat
// completions).
type OpenAILLM struct {
	Model string
	Opts  []option.RequestOption
}

// NewOpenAILLM builds an OpenAI-backed LLM. baseURL is optional and
// allows any OpenAI-compatible endpoint.
func NewOpenAILLM(apiKey, model, baseURL string) (*OpenAILLM, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing; provide summarizer.api_key")
	}
	if model == "" {
		return nil, errors.New("summarizer model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAILLM{Model: model, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
