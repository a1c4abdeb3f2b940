// Package pipeline runs prompt stages in order, threading each stage's output
// into the next stage's input.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Annallisboa/QA-app/internal/llm"
	"github.com/Annallisboa/QA-app/internal/model"
	"github.com/Annallisboa/QA-app/internal/prompt"
)

// Stage binds one prompt template to the model and names its output field.
type Stage struct {
	Name        string
	Template    *prompt.Template
	OutputField string
}

// InputField is the accumulator field the stage's template consumes.
func (s Stage) InputField() string { return s.Template.InputField }

// Result maps each stage's output field to the model's raw reply.
type Result map[string]string

func (r Result) AgentSuggestion() string { return r[model.FieldAgentSuggestion] }
func (r Result) Coordinates() string     { return r[model.FieldCoordinates] }
func (r Result) CenterInfo() string      { return r[model.FieldCenterInfo] }

// StageEvent describes one stage execution for hooks.
type StageEvent struct {
	Stage    string
	Index    int
	Duration time.Duration
	Err      error
}

// Hooks observe stage execution. Nil hooks are skipped.
type Hooks struct {
	OnStageStart func(ctx context.Context, e StageEvent)
	OnStageDone  func(ctx context.Context, e StageEvent)
}

// Config holds the pipeline's collaborators.
type Config struct {
	Logger *slog.Logger
	Client llm.Client
	Stages []Stage
	Hooks  Hooks
	// SeedField names the caller-supplied input. Defaults to "request".
	SeedField string
}

// Pipeline executes its stages strictly in order. It holds no per-run state
// and may be shared across requests.
type Pipeline struct {
	cfg Config
	log *slog.Logger
}

// New validates the stage wiring: every stage's input must be the seed or an
// earlier stage's output, and output fields must be unique.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("model client is required")
	}
	if len(cfg.Stages) == 0 {
		return nil, fmt.Errorf("at least one stage is required")
	}
	if cfg.SeedField == "" {
		cfg.SeedField = model.FieldRequest
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	available := map[string]bool{cfg.SeedField: true}
	outputs := make(map[string]bool)
	for i, st := range cfg.Stages {
		if st.Template == nil {
			return nil, fmt.Errorf("stage %d (%s): template is required", i, st.Name)
		}
		if st.OutputField == "" {
			return nil, fmt.Errorf("stage %d (%s): output field is required", i, st.Name)
		}
		if outputs[st.OutputField] || st.OutputField == cfg.SeedField {
			return nil, fmt.Errorf("stage %d (%s): duplicate output field %q", i, st.Name, st.OutputField)
		}
		if !available[st.InputField()] {
			return nil, fmt.Errorf("stage %d (%s): input field %q is not produced by an earlier stage", i, st.Name, st.InputField())
		}
		outputs[st.OutputField] = true
		available[st.OutputField] = true
	}

	return &Pipeline{cfg: cfg, log: cfg.Logger}, nil
}

// Stages returns the configured stages in execution order.
func (p *Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.cfg.Stages))
	copy(out, p.cfg.Stages)
	return out
}

// Run executes every stage once, left to right. The first failure aborts the
// run and is returned unchanged; no partial result is returned.
func (p *Pipeline) Run(ctx context.Context, request string) (Result, error) {
	acc := map[string]string{p.cfg.SeedField: request}

	for i, st := range p.cfg.Stages {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ev := StageEvent{Stage: st.Name, Index: i}
		if p.cfg.Hooks.OnStageStart != nil {
			p.cfg.Hooks.OnStageStart(ctx, ev)
		}
		p.log.Debug("stage starting", "stage", st.Name, "input", st.InputField(), "output", st.OutputField)

		start := time.Now()
		reply, err := p.runStage(ctx, st, acc)
		ev.Duration = time.Since(start)
		ev.Err = err

		if p.cfg.Hooks.OnStageDone != nil {
			p.cfg.Hooks.OnStageDone(ctx, ev)
		}
		if err != nil {
			p.log.Error("stage failed", "stage", st.Name, "duration", ev.Duration, "error", err)
			return nil, err
		}
		p.log.Info("stage completed", "stage", st.Name, "duration", ev.Duration, "chars", len(reply))

		acc[st.OutputField] = reply
	}

	result := make(Result, len(p.cfg.Stages))
	for _, st := range p.cfg.Stages {
		result[st.OutputField] = acc[st.OutputField]
	}
	return result, nil
}

func (p *Pipeline) runStage(ctx context.Context, st Stage, acc map[string]string) (string, error) {
	messages, err := st.Template.Render(acc)
	if err != nil {
		return "", err
	}
	return p.cfg.Client.Complete(ctx, messages)
}

// DefaultStages is the question → answer → coordinates → center chain.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "itinerary", Template: prompt.Itinerary, OutputField: model.FieldAgentSuggestion},
		{Name: "mapping", Template: prompt.Mapping, OutputField: model.FieldCoordinates},
		{Name: "center", Template: prompt.Center, OutputField: model.FieldCenterInfo},
	}
}

// NewDefault builds the three-stage pipeline around client.
func NewDefault(client llm.Client, logger *slog.Logger, hooks Hooks) (*Pipeline, error) {
	return New(Config{
		Logger: logger,
		Client: client,
		Stages: DefaultStages(),
		Hooks:  hooks,
	})
}
