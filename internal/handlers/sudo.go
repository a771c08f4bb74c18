package handlers

import (
	"fmt"
	"strings"

	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/pkg/candidate"
)

// matchesSudo fires for a privilege escalation command with no arguments
// typed yet; once a command argument exists the rest of the line is
// ordinary completion for that command.
func matchesSudo(parsed parser.ParsedCommandLine) bool {
	if parsed.Command != "sudo" && parsed.Command != "doas" {
		return false
	}
	return len(parsed.SpecifiedArguments) == 0 && completingArgument(parsed) &&
		!strings.HasPrefix(parsed.CurrentToken, "-")
}

func (r *Runner) sudoCandidates(parsed parser.ParsedCommandLine) ([]candidate.Candidate, error) {
	users, err := r.sys.Users(false)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	var out []candidate.Candidate
	for _, u := range users {
		if strings.HasPrefix(u.Name, parsed.CurrentToken) {
			out = append(out, candidate.New(u.Name, candidate.CategoryUser).
				WithDescription(u.Shell))
		}
	}
	return out, nil
}
