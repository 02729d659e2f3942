// Package insight produces optional AI commentary for a finished
// questionnaire.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/psytests/psytests/internal/llm"
	"github.com/psytests/psytests/internal/scoring"
)

// Input is what the commentary is based on.
type Input struct {
	Locale     string
	Results    []scoring.CategoryResult
	Comparison scoring.Comparison
}

// Insight is the generated commentary.
type Insight struct {
	Headline    string   `json:"headline"`
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// Service generates insights. Identical concurrent requests share one
// provider call and successful results are cached for the process
// lifetime.
type Service struct {
	provider llm.Provider
	cfg      Config

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]*Insight
}

// NewService creates an insight service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		cache:    make(map[string]*Insight),
	}
}

// Explain returns commentary for in.
func (s *Service) Explain(ctx context.Context, in Input) (*Insight, error) {
	key := cacheKey(in)

	s.mu.Lock()
	cached, ok := s.cache[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		ins, err := s.generate(ctx, in)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[key] = ins
		s.mu.Unlock()
		return ins, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Insight), nil
}

func (s *Service) generate(ctx context.Context, in Input) (*Insight, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeInsight)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("insight generation: %w", err)
	}

	var out Insight
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}
	return &out, nil
}

// cacheKey identifies an input by locale and scores; labels and colors
// follow from the bank and don't need to be part of it.
func cacheKey(in Input) string {
	var b strings.Builder
	b.WriteString(languageName(in.Locale))
	for _, r := range in.Results {
		b.WriteByte('|')
		b.WriteString(r.CategoryID)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(r.Score))
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(r.MaxScore))
	}
	return b.String()
}
