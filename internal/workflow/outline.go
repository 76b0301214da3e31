package workflow

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents/pkg/agent"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/meridianlegal/dossier/internal/contents"
	"github.com/meridianlegal/dossier/pkg/formatting"
)

// State bag keys for the outline graph.
const (
	KeyOutlineProjectID = "outline_project_id"
	KeyFileSummaries    = "file_summaries"
	KeyOutlineDraft     = "outline_draft"
)

// Profile is the applicant profile synthesized for an outline.
type Profile struct {
	Name        string `json:"name"`
	CurrentRole string `json:"current_role"`
	Field       string `json:"field"`
	Summary     string `json:"summary"`
}

// TimelineEntry is one chronological event derived from the evidence.
type TimelineEntry struct {
	Period     string `json:"period"`
	Event      string `json:"event"`
	SourceFile string `json:"source_file"`
}

// FileSummary pairs a source file with its model-produced summary.
type FileSummary struct {
	SourceFile string `json:"source_file"`
	Summary    string `json:"summary"`
}

// OutlineDraft is the synthesis output before coverage is attached and the
// outline is persisted.
type OutlineDraft struct {
	Profile      Profile         `json:"profile"`
	Keywords     []string        `json:"keywords"`
	Timeline     []TimelineEntry `json:"timeline"`
	Summaries    []FileSummary   `json:"summaries"`
	MaterialGaps []string        `json:"material_gaps"`
	Assessment   string          `json:"overall_assessment"`
	CompletedAt  time.Time       `json:"completed_at"`
}

// BuildOutline runs the outline workflow: summarize each source file with
// bounded parallelism, then synthesize the profile, keywords, and timeline
// from the summaries in a single chat inference.
func BuildOutline(ctx context.Context, rt *Runtime, projectID uuid.UUID) (*OutlineDraft, error) {
	graph, err := buildOutlineGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeyOutlineProjectID, projectID)

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractOutlineDraft(final)
}

func buildOutlineGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("dossier-outline")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("summarize", SummarizeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("synthesize", SynthesizeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("summarize", "synthesize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("summarize"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("synthesize"); err != nil {
		return nil, err
	}

	return graph, nil
}

// SummarizeNode returns a state node that groups the project's content
// blocks by source file and produces one summary per file using bounded
// errgroup concurrency. Each goroutine creates its own agent.
func SummarizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		projectID, err := extractOutlineProjectID(s)
		if err != nil {
			return s, fmt.Errorf("summarize: %w", err)
		}

		blocks, err := rt.Contents.ListAll(ctx, projectID)
		if err != nil {
			return s, fmt.Errorf("summarize: %w: %w", ErrOutlineFailed, err)
		}
		if len(blocks) == 0 {
			return s, fmt.Errorf("summarize: %w", ErrNoContext)
		}

		summaries, err := summarizeFiles(ctx, rt, blocks)
		if err != nil {
			return s, fmt.Errorf("summarize: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "summarize node complete",
			"project_id", projectID,
			"files", len(summaries),
		)

		s = s.Set(KeyFileSummaries, summaries)
		return s, nil
	})
}

func summarizeFiles(
	ctx context.Context,
	rt *Runtime,
	blocks []contents.ContentBlock,
) ([]FileSummary, error) {
	grouped := make(map[string][]contents.ContentBlock)
	for _, b := range blocks {
		grouped[b.SourceFile] = append(grouped[b.SourceFile], b)
	}

	files := make([]string, 0, len(grouped))
	for f := range grouped {
		files = append(files, f)
	}
	sort.Strings(files)

	summaries := make([]FileSummary, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryWorkerCount(len(files)))

	for i, file := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			a, err := agent.New(&rt.Agent)
			if err != nil {
				return fmt.Errorf("file %s: create agent: %w", file, err)
			}

			prompt := fmt.Sprintf(
				summarizeFilePrompt,
				file,
				contents.AssembleContext(grouped[file], false),
			)

			resp, err := a.Chat(gctx, prompt)
			if err != nil {
				return fmt.Errorf("file %s: chat call: %w", file, err)
			}

			summaries[i] = FileSummary{
				SourceFile: file,
				Summary:    strings.TrimSpace(resp.Content()),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutlineFailed, err)
	}

	return summaries, nil
}

type synthesizeResponse struct {
	Profile      Profile         `json:"profile"`
	Keywords     []string        `json:"keywords"`
	Timeline     []TimelineEntry `json:"timeline"`
	MaterialGaps []string        `json:"material_gaps"`
	Assessment   string          `json:"overall_assessment"`
}

// SynthesizeNode returns a state node that produces the outline draft from
// the per-file summaries with a single chat inference.
func SynthesizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		summaries, err := extractFileSummaries(s)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		a, err := agent.New(&rt.Agent)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w: create agent: %w", ErrOutlineFailed, err)
		}

		var sb strings.Builder
		sb.WriteString(outlineSystemPrompt)
		sb.WriteString("\n\nEvidence summaries:\n")
		for _, fs := range summaries {
			fmt.Fprintf(&sb, "\n--- %s ---\n%s\n", fs.SourceFile, fs.Summary)
		}

		resp, err := a.Chat(ctx, sb.String())
		if err != nil {
			return s, fmt.Errorf("synthesize: %w: chat call: %w", ErrOutlineFailed, err)
		}

		parsed, err := formatting.Parse[synthesizeResponse](resp.Content())
		if err != nil {
			return s, fmt.Errorf("synthesize: %w: parse response: %w", ErrOutlineFailed, err)
		}

		rt.Logger.InfoContext(
			ctx, "synthesize node complete",
			"keywords", len(parsed.Keywords),
			"timeline_entries", len(parsed.Timeline),
		)

		s = s.Set(KeyOutlineDraft, OutlineDraft{
			Profile:      parsed.Profile,
			Keywords:     parsed.Keywords,
			Timeline:     parsed.Timeline,
			Summaries:    summaries,
			MaterialGaps: parsed.MaterialGaps,
			Assessment:   parsed.Assessment,
			CompletedAt:  time.Now(),
		})
		return s, nil
	})
}

func extractOutlineProjectID(s state.State) (uuid.UUID, error) {
	val, ok := s.Get(KeyOutlineProjectID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s in state", ErrOutlineFailed, KeyOutlineProjectID)
	}

	projectID, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is not uuid.UUID", ErrOutlineFailed, KeyOutlineProjectID)
	}

	return projectID, nil
}

func extractFileSummaries(s state.State) ([]FileSummary, error) {
	val, ok := s.Get(KeyFileSummaries)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrOutlineFailed, KeyFileSummaries)
	}

	summaries, ok := val.([]FileSummary)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []FileSummary", ErrOutlineFailed, KeyFileSummaries)
	}

	return summaries, nil
}

func extractOutlineDraft(s state.State) (*OutlineDraft, error) {
	val, ok := s.Get(KeyOutlineDraft)
	if !ok {
		return nil, errors.New("missing outline draft in final state")
	}

	draft, ok := val.(OutlineDraft)
	if !ok {
		return nil, errors.New("outline draft has unexpected type")
	}

	return &draft, nil
}

func summaryWorkerCount(fileCount int) int {
	return max(min(runtime.NumCPU(), fileCount), 1)
}
