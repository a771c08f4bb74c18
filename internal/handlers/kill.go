package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/internal/system"
	"github.com/robottwo/tabby/pkg/candidate"
	"github.com/shirou/gopsutil/v3/process"
)

// Overridable for testing.
var listProcesses = func(ctx context.Context) ([]*process.Process, error) {
	return process.ProcessesWithContext(ctx)
}

func matchesKill(parsed parser.ParsedCommandLine) bool {
	if parsed.Command != "kill" && parsed.Command != "pkill" {
		return false
	}
	// A dash prefix means a signal; anything else is a process.
	return completingArgument(parsed) || strings.HasPrefix(parsed.CurrentToken, "-")
}

// killCandidates completes signal names for a dash-prefixed token and
// live process ids otherwise. pkill matches on process names instead of
// pids.
func (r *Runner) killCandidates(ctx context.Context, parsed parser.ParsedCommandLine) ([]candidate.Candidate, error) {
	current := parsed.CurrentToken
	if strings.HasPrefix(current, "-") {
		return signalCandidates(current), nil
	}

	procs, err := listProcesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	byName := parsed.Command == "pkill"
	var out []candidate.Candidate
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		pid := strconv.FormatInt(int64(p.Pid), 10)

		text := pid
		if byName {
			text = name
		}
		if !strings.HasPrefix(text, current) {
			continue
		}

		desc := name
		if !byName {
			if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
				desc = fmt.Sprintf("%s (%s)", name, humanize.Bytes(mem.RSS))
			}
		} else {
			desc = "pid " + pid
		}
		out = append(out, candidate.New(text, candidate.CategoryProcess).
			WithDescription(desc))
	}
	return out, nil
}

func signalCandidates(current string) []candidate.Candidate {
	var out []candidate.Candidate
	for _, sig := range system.Signals(current) {
		out = append(out, candidate.New("-"+sig.Name, candidate.CategorySignal).
			WithDescription(fmt.Sprintf("SIG%s (%d)", sig.Name, sig.Number)))
	}
	return out
}
