package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/helmcode/bug-autopsy/pkg/languages"
	"github.com/helmcode/bug-autopsy/pkg/llm"
	"github.com/helmcode/bug-autopsy/pkg/model"
	"github.com/helmcode/bug-autopsy/pkg/parser"
	"github.com/helmcode/bug-autopsy/pkg/prompts"
)

// ErrEmptyErrorMessage is a local validation failure: no request is sent.
var ErrEmptyErrorMessage = errors.New("error message is required")

type Analyzer struct {
	llm llm.LLM
}

func New(opts llm.Options) (*Analyzer, error) {
	client, err := llm.New(opts)
	if err != nil {
		return nil, err
	}
	return &Analyzer{llm: client}, nil
}

func NewFromEnv(providerOverride, modelOverride string) (*Analyzer, error) {
	client, err := llm.CreateFromEnv(providerOverride, modelOverride)
	if err != nil {
		return nil, err
	}
	return &Analyzer{llm: client}, nil
}

func NewWithLLM(l llm.LLM) *Analyzer {
	return &Analyzer{llm: l}
}

// Complete performs one analysis round-trip and returns the parsed result
// without identity or input-echo fields. Exactly one request is issued; there
// is no retry and no caching.
func (a *Analyzer) Complete(ctx context.Context, req prompts.Request) (*model.BugAnalysis, error) {
	if strings.TrimSpace(req.ErrorMessage) == "" {
		return nil, ErrEmptyErrorMessage
	}
	if req.Language == "" {
		req.Language = languages.DefaultLanguage
	}

	raw, err := a.llm.Chat(ctx, prompts.SystemPrompt, prompts.BuildAnalysisPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("LLM chat: %w", err)
	}

	return parser.ParseAnalysisResponse(raw)
}

// Analyze runs Complete and accepts the result: the id and creation time are
// assigned locally at that moment, and the submitted input is echoed into
// the record.
func (a *Analyzer) Analyze(ctx context.Context, req prompts.Request) (*model.BugAnalysis, error) {
	analysis, err := a.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	analysis.ID = uuid.NewString()
	analysis.CreatedAt = time.Now()
	analysis.ErrorMessage = req.ErrorMessage
	analysis.StackTrace = req.StackTrace
	analysis.CodeSnippet = req.CodeSnippet
	analysis.Language = req.Language
	if analysis.Language == "" {
		analysis.Language = languages.DefaultLanguage
	}
	analysis.Framework = req.Framework
	return analysis, nil
}
