package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"GoRagServer/app/utils/restclient"
)

const (
	endpoint          = "/v1/chat/completions"
	embeddingEndpoint = "/v1/embeddings"
)

// ErrGenerationUnavailable marks failures of the LLM capability itself, after
// transport retries are exhausted or when the backend returns nothing usable.
var ErrGenerationUnavailable = errors.New("generation unavailable")

var _ Interface = &LLMClient{}

type LLMClient struct {
	restClient      restclient.Interface
	cache           sync.Map
	model           string
	embeddingsModel string
}

func NewLLMClient(baseURL, model, embModel string) *LLMClient {
	return &LLMClient{
		restClient:      restclient.NewRestClient(baseURL, nil),
		model:           model,
		embeddingsModel: embModel,
	}
}

func (mc *LLMClient) Generate(ctx context.Context, messages []Message, temperature float64) (*Completion, error) {
	payload := requestPayload{
		Model:       mc.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   -1,
	}

	response, err := mc.sendRequestAndParse(ctx, payload, 3)
	if err != nil {
		return nil, err
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices for model %s", ErrGenerationUnavailable, mc.model)
	}

	return &Completion{
		Text:       response.Choices[0].Message.Content,
		TokenUsage: response.Usage.TotalTokens,
	}, nil
}

func (mc *LLMClient) sendRequestAndParse(ctx context.Context, payload requestPayload, maxRetries int) (*ResponseLLM, error) {
	var err error
	var response []byte
	var status int
	var generatedResponse ResponseLLM

	for i := 0; i < maxRetries; i++ {
		select {
		case <-ctx.Done():
			log.Println("🚨 Request canceled before execution")
			return nil, ctx.Err()
		default:
			if err != nil {
				time.Sleep(time.Duration(math.Pow(2, float64(i))) * 100 * time.Millisecond)
			}
			response, status, err = mc.restClient.Post(ctx, endpoint, payload, nil)
			if err != nil {
				log.Printf("⚠️ Attempt %d failed: HTTP %d | Response: %s | Error: %v",
					i, status, string(response), err)
				continue
			}

			if err = json.Unmarshal(response, &generatedResponse); err != nil {
				log.Printf("⚠️ Error parsing response: %v", err)
				continue
			}

			return &generatedResponse, nil
		}
	}

	return nil, fmt.Errorf("%w: request failed after %d retries: %v", ErrGenerationUnavailable, maxRetries, err)
}
