package handlers

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/pkg/candidate"
)

const cargoSearchLimit = "20"

// Overridable for testing.
var runCargoSearch = func(ctx context.Context, query string) ([]byte, error) {
	return exec.CommandContext(ctx, "cargo", "search", query, "--limit", cargoSearchLimit).Output()
}

func matchesCargoInstall(parsed parser.ParsedCommandLine) bool {
	if parsed.Command != "cargo" || len(parsed.SubcommandPath) != 1 {
		return false
	}
	sub := parsed.SubcommandPath[0]
	if sub != "install" && sub != "add" {
		return false
	}
	// The index cannot be prefix-searched with nothing typed.
	return completingArgument(parsed) && parsed.CurrentToken != "" &&
		!strings.HasPrefix(parsed.CurrentToken, "-")
}

// cargoCandidates queries the package index for names matching the
// partial token. Results are cached per query so repeated keystrokes on
// the same prefix do not re-run the search.
func (r *Runner) cargoCandidates(ctx context.Context, parsed parser.ParsedCommandLine) ([]candidate.Candidate, error) {
	query := parsed.CurrentToken
	return r.searches.GetOrCompute("cargo search "+query, func() ([]candidate.Candidate, error) {
		output, err := runCargoSearch(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("cargo search %q: %w", query, err)
		}
		return parseCargoSearch(output, query), nil
	})
}

// parseCargoSearch extracts crate candidates from cargo search output.
// Each result line has the shape:
//
//	name = "1.2.3"    # one-line description
//
// Anything else (the trailing "... and N crates more" note, warnings) is
// skipped.
func parseCargoSearch(output []byte, prefix string) []candidate.Candidate {
	var out []candidate.Candidate
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		name, rest, ok := strings.Cut(line, " = \"")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, " \t") || !strings.HasPrefix(name, prefix) {
			continue
		}

		version, rest, ok := strings.Cut(rest, "\"")
		if !ok {
			continue
		}
		desc := version
		if _, comment, ok := strings.Cut(rest, "#"); ok {
			desc = fmt.Sprintf("%s %s", version, strings.TrimSpace(comment))
		}
		out = append(out, candidate.New(name, candidate.CategoryPackage).
			WithDescription(desc))
	}
	return out
}
