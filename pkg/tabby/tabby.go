// Package tabby is the completion engine façade. Callers hand it an
// input line, a cursor position and a working directory; it drives the
// parse, generation, ranking and deduplication pipeline and returns the
// final candidate list. The caller owns selection UI and text splicing.
package tabby

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/robottwo/tabby/internal/generator"
	"github.com/robottwo/tabby/internal/handlers"
	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/internal/rank"
	"github.com/robottwo/tabby/internal/schema"
	"github.com/robottwo/tabby/internal/system"
	"github.com/robottwo/tabby/pkg/candidate"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultMaxResults caps the candidate list when a request does not set
// its own limit.
const DefaultMaxResults = 50

// HistoryProvider supplies previously executed command lines by prefix.
type HistoryProvider interface {
	RecentCommands(prefix string, limit int) ([]string, error)
}

// Request is one completion invocation.
type Request struct {
	// Input is the full edited line; Cursor is a byte offset into it.
	Input  string
	Cursor int
	// Dir resolves relative path completions.
	Dir string
	// Limit overrides the engine's maximum result count when positive.
	Limit int
}

// Engine wires the pipeline together around an explicit schema database
// handle. Construct one per configuration; it is safe for concurrent use.
type Engine struct {
	db         *schema.Database
	parser     *parser.Parser
	generator  *generator.Generator
	dynamic    *handlers.Runner
	files      *generator.FileCompleter
	history    HistoryProvider
	logger     *zap.Logger
	maxResults int
}

type Option func(*Engine)

// WithHistory enables history-based command suggestions.
func WithHistory(h HistoryProvider) Option {
	return func(e *Engine) { e.history = h }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithMaxResults(n int) Option {
	return func(e *Engine) { e.maxResults = n }
}

// New builds an engine over db. The database is read-only after load, so
// one instance may back any number of engines.
func New(db *schema.Database, opts ...Option) *Engine {
	e := &Engine{
		db:         db,
		logger:     zap.NewNop(),
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(e)
	}

	sys := system.NewEnumerator(e.logger)
	e.files = generator.NewFileCompleter()
	e.parser = parser.New(db)
	e.generator = generator.New(db, sys, e.files, e.logger)
	e.dynamic = handlers.NewRunner(sys, e.logger)
	return e
}

// Complete runs the pipeline: parse, static generation, dynamic
// generation, history, dedup, smart ranking, truncation. It never fails;
// every internal error degrades to fewer candidates.
func (e *Engine) Complete(ctx context.Context, req Request) []candidate.Candidate {
	requestID := uuid.NewString()
	parsed := e.parser.Parse(req.Input, req.Cursor)

	e.logger.Debug("completion request",
		zap.String("request_id", requestID),
		zap.Stringer("context", parsed.Context.Kind),
		zap.String("command", parsed.Command),
		zap.String("current", parsed.CurrentToken))

	cands := e.generator.Generate(parsed, req.Dir)
	cands = append(cands, e.dynamic.Generate(ctx, parsed, req.Dir)...)
	cands = append(cands, e.historyCandidates(parsed)...)

	// A typed argument that produced nothing still completes as a path;
	// plain-string arguments always land here.
	if len(cands) == 0 && fallsBackToFiles(parsed.Context.Kind) {
		cands = e.files.Complete(parsed.CurrentToken, req.Dir, generator.Listing{})
	}

	cands = rank.Dedup(cands)
	if parsed.CurrentToken == "" {
		rank.SortStable(cands)
	} else {
		cands = rank.Smart(cands, parsed.CurrentToken)
	}

	limit := e.maxResults
	if req.Limit > 0 {
		limit = req.Limit
	}
	if len(cands) > limit {
		cands = cands[:limit]
	}

	quoteCandidates(cands)

	e.logger.Debug("completion result",
		zap.String("request_id", requestID),
		zap.Int("candidates", len(cands)))
	return cands
}

// FilePrefix is the legacy single-best-match helper for non-interactive
// callers: the first path completion for prefix under dir, or "" when
// nothing matches.
func (e *Engine) FilePrefix(prefix, dir string) string {
	return e.files.BestMatch(prefix, dir)
}

func (e *Engine) historyCandidates(parsed parser.ParsedCommandLine) []candidate.Candidate {
	if e.history == nil || parsed.Context.Kind != parser.KindCommand || parsed.CurrentToken == "" {
		return nil
	}
	commands, err := e.history.RecentCommands(parsed.CurrentToken, e.maxResults)
	if err != nil {
		e.logger.Debug("history lookup failed", zap.Error(err))
		return nil
	}
	var out []candidate.Candidate
	for _, cmd := range commands {
		out = append(out, candidate.New(cmd, candidate.CategoryHistory).
			WithDescription("history"))
	}
	return out
}

func fallsBackToFiles(kind parser.ContextKind) bool {
	return kind == parser.KindArgument || kind == parser.KindOptionValue ||
		kind == parser.KindSubcommand
}

// quoteCandidates shell-quotes candidate text containing whitespace so
// the caller can splice it into the line verbatim. History candidates
// are whole command lines and stay unquoted.
func quoteCandidates(cands []candidate.Candidate) {
	for i, c := range cands {
		if c.Category == candidate.CategoryHistory || !strings.ContainsAny(c.Text, " \t") {
			continue
		}
		quoted, err := syntax.Quote(c.Text, syntax.LangBash)
		if err != nil {
			continue
		}
		cands[i].Text = quoted
	}
}
