package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/go-agents/pkg/agent"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/meridianlegal/dossier/internal/contents"
)

// State bag keys for the generation graph.
const (
	KeyGenerateInput = "generate_input"
	KeyContext       = "context"
	KeyDraft         = "draft"
)

// GenerateInput carries everything a generation run needs. The caller
// resolves stored-versus-default agent configuration and the optional
// reference document before invoking the graph.
type GenerateInput struct {
	ProjectID          uuid.UUID
	PackageType        string
	SystemPrompt       string
	UserTemplate       string
	CustomInstructions string
	ReferenceContent   string
}

// GenerateResult is the final output from a generation workflow execution.
type GenerateResult struct {
	Content     string    `json:"content"`
	WordCount   int       `json:"word_count"`
	CompletedAt time.Time `json:"completed_at"`
}

// Generate runs the document generation workflow: assemble the project's
// evidentiary context, then produce a draft with a single chat inference.
// No persistence happens here; the caller decides whether the draft becomes
// a version.
func Generate(ctx context.Context, rt *Runtime, input GenerateInput) (*GenerateResult, error) {
	graph, err := buildGenerateGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyGenerateInput, input)

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractGenerateResult(final)
}

func buildGenerateGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("dossier-generate")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("context", ContextNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("generate", GenerateNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("context", "generate", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("context"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("generate"); err != nil {
		return nil, err
	}

	return graph, nil
}

// ContextNode returns a state node that assembles the project's
// citation-annotated context blob into the state bag.
func ContextNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		input, err := extractGenerateInput(s)
		if err != nil {
			return s, fmt.Errorf("context: %w", err)
		}

		blob, err := rt.Contents.Context(ctx, input.ProjectID, true)
		if err != nil {
			if errors.Is(err, contents.ErrNoBlocks) {
				return s, fmt.Errorf("context: %w: %w", ErrNoContext, err)
			}
			return s, fmt.Errorf("context: %w: %w", ErrGenerateFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "context node complete",
			"project_id", input.ProjectID,
			"context_bytes", len(blob),
		)

		s = s.Set(KeyContext, blob)
		return s, nil
	})
}

// GenerateNode returns a state node that performs the single chat inference
// producing the document draft.
func GenerateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		input, err := extractGenerateInput(s)
		if err != nil {
			return s, fmt.Errorf("generate: %w", err)
		}

		blob, err := extractContext(s)
		if err != nil {
			return s, fmt.Errorf("generate: %w", err)
		}

		a, err := agent.New(&rt.Agent)
		if err != nil {
			return s, fmt.Errorf("generate: %w: create agent: %w", ErrGenerateFailed, err)
		}

		prompt := composeGenerate(input, blob)

		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return s, fmt.Errorf("generate: %w: chat call: %w", ErrGenerateFailed, err)
		}

		draft := strings.TrimSpace(resp.Content())
		if draft == "" {
			return s, fmt.Errorf("generate: %w: empty response", ErrGenerateFailed)
		}

		rt.Logger.InfoContext(
			ctx, "generate node complete",
			"project_id", input.ProjectID,
			"package_type", input.PackageType,
			"draft_words", contents.CountWords(draft),
		)

		s = s.Set(KeyDraft, draft)
		return s, nil
	})
}

func composeGenerate(input GenerateInput, contextBlob string) string {
	var sb strings.Builder
	sb.WriteString(input.SystemPrompt)
	sb.WriteString("\n\n")
	sb.WriteString(ComposeGeneratePrompt(
		input.UserTemplate,
		contextBlob,
		input.CustomInstructions,
		input.ReferenceContent,
	))
	return sb.String()
}

func extractGenerateInput(s state.State) (GenerateInput, error) {
	val, ok := s.Get(KeyGenerateInput)
	if !ok {
		return GenerateInput{}, fmt.Errorf("%w: missing %s in state", ErrGenerateFailed, KeyGenerateInput)
	}

	input, ok := val.(GenerateInput)
	if !ok {
		return GenerateInput{}, fmt.Errorf("%w: %s is not GenerateInput", ErrGenerateFailed, KeyGenerateInput)
	}

	return input, nil
}

func extractContext(s state.State) (string, error) {
	val, ok := s.Get(KeyContext)
	if !ok {
		return "", fmt.Errorf("%w: missing %s in state", ErrGenerateFailed, KeyContext)
	}

	blob, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not string", ErrGenerateFailed, KeyContext)
	}

	return blob, nil
}

func extractGenerateResult(s state.State) (*GenerateResult, error) {
	val, ok := s.Get(KeyDraft)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyDraft)
	}

	draft, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("%s is not string", KeyDraft)
	}

	return &GenerateResult{
		Content:     draft,
		WordCount:   contents.CountWords(draft),
		CompletedAt: time.Now(),
	}, nil
}
