package enhance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"resumeBuilder/internal/metrics"
	"resumeBuilder/internal/resume"
)

// Backend 是外部补全服务的最小抽象，便于在测试中替换。
type Backend interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Field identifies which free-text section is being rewritten.
type Field string

const (
	FieldSummary    Field = "summary"
	FieldExperience Field = "experience"
	FieldProjects   Field = "projects"
)

type instruction struct {
	system string
	prefix string
}

var instructions = map[Field]instruction{
	FieldSummary: {
		system: "You are an expert resume writer. Produce a polished single-paragraph professional summary.",
		prefix: "Rewrite the following professional summary to be concise, clear and resume-ready:\n\n",
	},
	FieldExperience: {
		system: "You are an expert at writing resume bullet points.",
		prefix: "Convert the following experience text into concise resume bullet points. " +
			"Keep numbers, use action verbs, and separate bullets by newline:\n\n",
	},
	FieldProjects: {
		system: "You are concise and clear.",
		prefix: "Rewrite these project descriptions into short clear bullets:\n\n",
	},
}

const defaultSystemHint = "You are a professional resume writer."

// Enhancer rewrites free-text fields. A nil backend means only the local
// cleanup is applied.
type Enhancer struct {
	backend Backend
	logger  *slog.Logger
}

// New 创建 Enhancer；backend 可以为 nil。
func New(backend Backend, logger *slog.Logger) *Enhancer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enhancer{backend: backend, logger: logger}
}

// Enabled reports whether a completion backend is wired in.
func (e *Enhancer) Enabled() bool {
	return e != nil && e.backend != nil
}

// Enhance 返回润色后的文本，永远不会返回错误：
// 后端不可用或调用失败时退回 Cleanup，后端返回空串时保留原文。
func (e *Enhancer) Enhance(ctx context.Context, field Field, text string) string {
	if text == "" {
		return ""
	}
	if !e.Enabled() {
		metrics.ObserveEnhancement(string(field), metrics.EnhanceFallback)
		return Cleanup(text)
	}

	inst, ok := instructions[field]
	if !ok {
		inst = instruction{system: defaultSystemHint}
	}

	out, err := e.complete(ctx, inst.system, inst.prefix+text)
	if err != nil {
		e.logger.Warn("completion backend failed, using local cleanup",
			slog.String("field", string(field)),
			slog.Any("error", err),
		)
		metrics.ObserveEnhancement(string(field), metrics.EnhanceFallback)
		return Cleanup(text)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		metrics.ObserveEnhancement(string(field), metrics.EnhanceOriginal)
		return text
	}
	metrics.ObserveEnhancement(string(field), metrics.EnhanceBackend)
	return out
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("completion backend panicked: %v", e.value)
}

// complete shields callers from panics inside third-party backends.
func (e *Enhancer) complete(ctx context.Context, system, prompt string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return e.backend.Complete(ctx, system, prompt)
}

// Apply enhances the summary, experience and projects sections in place.
func (e *Enhancer) Apply(ctx context.Context, f *resume.Fields) {
	f.Summary = e.Enhance(ctx, FieldSummary, f.Summary)
	f.Experience = e.Enhance(ctx, FieldExperience, f.Experience)
	f.Projects = e.Enhance(ctx, FieldProjects, f.Projects)
}

// Cleanup collapses whitespace, terminates the sentence and capitalises the
// first letter. Empty input stays empty.
func Cleanup(text string) string {
	s := strings.Join(strings.Fields(text), " ")
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "?") && !strings.HasSuffix(s, "!") {
		s += "."
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + s[size:]
}
