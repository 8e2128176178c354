package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/segmenta-core/internal/core/domain"
	"github.com/custodia-labs/segmenta-core/internal/core/ports/driven"
	"github.com/pkoukk/tiktoken-go"
)

// Ensure OpenAIAnalyzer implements SegmentAnalyzer
var _ driven.SegmentAnalyzer = (*OpenAIAnalyzer)(nil)

// defaultContextBudget caps tokens per analyzer call when settings
// leave it unset
const defaultContextBudget = 6000

// segmentationInstruction is the fixed system prompt. The model must
// answer with a bare JSON array; the parser still tolerates code fences
// and surrounding prose.
const segmentationInstruction = `You segment documents into semantically coherent parts.
Given a text span, return a JSON array of segments. Each segment is an object:
{"start_char": int, "end_char": int, "content_type": string, "topic": string, "confidence": float, "keywords": [string]}
Offsets are character positions into the given span with start_char < end_char.
content_type is one of: procedure, explanation, example, definition, list, narrative, mixed, fragment.
topic is a short label. confidence is in [0,1]. keywords holds at most 5 short terms.
Return only the JSON array.`

// OpenAIAnalyzer implements SegmentAnalyzer against an OpenAI-compatible
// chat-completions API. With a custom base URL it also covers local
// runtimes such as Ollama.
type OpenAIAnalyzer struct {
	apiKey  string
	model   string
	baseURL string
	budget  int
	client  *http.Client

	// Token encoding loads lazily; fetching BPE data needs the network
	// and Analyze must not depend on it succeeding.
	encOnce  sync.Once
	encoding *tiktoken.Tiktoken
}

// NewOpenAIAnalyzer creates a new OpenAI-compatible segment analyzer.
// apiKey may be empty for backends that do not authenticate.
func NewOpenAIAnalyzer(apiKey, model, baseURL string, contextBudget int) (driven.SegmentAnalyzer, error) {
	if model == "" {
		model = "gpt-4o-mini"
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	if contextBudget <= 0 {
		contextBudget = defaultContextBudget
	}

	return &OpenAIAnalyzer{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		budget:  contextBudget,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// chatRequest is the request body for the chat-completions API
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response from the chat-completions API
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// wireSegment is one element of the model's JSON answer
type wireSegment struct {
	StartChar   int      `json:"start_char"`
	EndChar     int      `json:"end_char"`
	ContentType string   `json:"content_type"`
	Topic       string   `json:"topic"`
	Confidence  float64  `json:"confidence"`
	Keywords    []string `json:"keywords"`
}

// Analyze asks the model to segment span and parses the JSON answer.
// Offsets in the result are relative to span and clamped to its bounds.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, span string) ([]domain.CandidateSegment, error) {
	if strings.TrimSpace(span) == "" {
		return nil, nil
	}

	span = a.truncate(span)

	resp, err := a.doRequest(ctx, chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: segmentationInstruction},
			{Role: "user", Content: span},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response has no choices", domain.ErrAnalyzerFormat)
	}

	return parseSegments(resp.Choices[0].Message.Content, len(span))
}

// Model returns the model name being used
func (a *OpenAIAnalyzer) Model() string {
	return a.model
}

// Ping verifies the analyzer is available by making a minimal
// chat-completions request
func (a *OpenAIAnalyzer) Ping(ctx context.Context) error {
	_, err := a.doRequest(ctx, chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "user", Content: "ping"},
		},
		MaxTokens: 1,
	})
	return err
}

// Close releases resources held by the analyzer
func (a *OpenAIAnalyzer) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

// truncate cuts span down to the context budget, measured in tokens.
// The cut is proportional in bytes and backed off to a rune boundary.
// Without a token encoding the count falls back to a bytes-per-token
// estimate.
func (a *OpenAIAnalyzer) truncate(span string) string {
	a.encOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel(a.model)
		if err != nil {
			// Unknown models count with the common encoding
			enc, err = tiktoken.GetEncoding("cl100k_base")
		}
		if err == nil {
			a.encoding = enc
		}
	})

	var tokens int
	if a.encoding != nil {
		tokens = len(a.encoding.Encode(span, nil, nil))
	} else {
		tokens = len(span) / 4
	}
	if tokens <= a.budget {
		return span
	}

	cut := int(float64(len(span)) * float64(a.budget) / float64(tokens))
	for cut > 0 && !utf8.RuneStart(span[cut]) {
		cut--
	}
	return span[:cut]
}

// doRequest makes a request to the chat-completions API
func (a *OpenAIAnalyzer) doRequest(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrAnalyzerTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrAnalyzerTransport, err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response body: %v", domain.ErrAnalyzerFormat, err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("%w: API error: %s (type: %s, code: %s)",
			domain.ErrAnalyzerTransport, chatResp.Error.Message, chatResp.Error.Type, chatResp.Error.Code)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API returned status %d", domain.ErrAnalyzerTransport, resp.StatusCode)
	}

	return &chatResp, nil
}

// parseSegments extracts the JSON segment array from the model's answer.
// Code fences and prose around the array are tolerated; a missing or
// unparseable array is a format error.
func parseSegments(content string, spanLen int) ([]domain.CandidateSegment, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array in model answer", domain.ErrAnalyzerFormat)
	}

	var wire []wireSegment
	if err := json.Unmarshal([]byte(content[start:end+1]), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalyzerFormat, err)
	}

	segments := make([]domain.CandidateSegment, 0, len(wire))
	for _, w := range wire {
		keywords := w.Keywords
		if len(keywords) > 5 {
			keywords = keywords[:5]
		}

		seg, ok := domain.CandidateSegment{
			StartChar:   w.StartChar,
			EndChar:     w.EndChar,
			ContentType: domain.ParseChunkType(w.ContentType),
			Topic:       w.Topic,
			Confidence:  w.Confidence,
			Keywords:    keywords,
		}.Clamp(spanLen)
		if !ok {
			continue
		}
		segments = append(segments, seg)
	}
	return segments, nil
}
