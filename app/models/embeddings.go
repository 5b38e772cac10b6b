package models

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"
)

// EmbedText returns the embedding for input, memoized for the process
// lifetime. Chunk texts repeat across re-ingestions and expanded queries
// repeat common phrasings, so the cache saves a round trip per repeat.
func (mc *LLMClient) EmbedText(ctx context.Context, input string) ([]float32, error) {
	if v, ok := mc.cache.Load(input); ok {
		if emb, ok := v.([]float32); ok {
			return emb, nil
		}
	}

	if mc.embeddingsModel == "" {
		return nil, fmt.Errorf("%w: no embeddings model configured", ErrGenerationUnavailable)
	}

	payload := embeddingRequestPayload{
		Model: mc.embeddingsModel,
		Input: input,
	}

	response, err := mc.sendEmbeddings(ctx, payload, 3)
	if err != nil {
		return nil, err
	}
	if len(response.Data) == 0 {
		return nil, fmt.Errorf("%w: empty embedding data for model %s", ErrGenerationUnavailable, mc.embeddingsModel)
	}

	emb := response.Data[0].Embedding
	mc.cache.Store(input, emb)
	return emb, nil
}

func (mc *LLMClient) sendEmbeddings(ctx context.Context, payload embeddingRequestPayload, maxRetries int) (*embeddingResponse, error) {
	var err error
	var response []byte
	var status int
	var parsed embeddingResponse

	for i := 0; i < maxRetries; i++ {
		select {
		case <-ctx.Done():
			log.Println("🚨 Embedding request canceled before execution")
			return nil, ctx.Err()
		default:
			if err != nil {
				time.Sleep(time.Duration(math.Pow(2, float64(i))) * 100 * time.Millisecond)
			}
			response, status, err = mc.restClient.Post(ctx, embeddingEndpoint, payload, nil)
			if err != nil {
				log.Printf("⚠️ Embedding attempt %d failed: HTTP %d | Response: %s | Error: %v",
					i, status, string(response), err)
				continue
			}

			if err = json.Unmarshal(response, &parsed); err != nil {
				log.Printf("⚠️ Error parsing embedding response: %v", err)
				continue
			}

			return &parsed, nil
		}
	}

	return nil, fmt.Errorf("%w: embeddings request failed after %d retries: %v", ErrGenerationUnavailable, maxRetries, err)
}
