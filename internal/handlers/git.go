package handlers

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/pkg/candidate"
	"github.com/samber/lo"
)

// branchSubcommands take an existing branch name as their argument.
var branchSubcommands = []string{"checkout", "switch", "merge", "rebase", "branch"}

// remoteSubcommands take a remote name first, then a branch on it.
var remoteSubcommands = []string{"push", "pull", "fetch"}

func matchesGit(parsed parser.ParsedCommandLine) bool {
	if parsed.Command != "git" || len(parsed.SubcommandPath) != 1 {
		return false
	}
	if !completingArgument(parsed) {
		return false
	}
	sub := parsed.SubcommandPath[0]
	return lo.Contains(branchSubcommands, sub) || lo.Contains(remoteSubcommands, sub)
}

// gitCandidates completes branch names for checkout-style subcommands.
// For push-style subcommands, the first argument position completes the
// remote and the next one branches on it; the position is judged by the
// arguments already typed, not by guessing at the token itself.
func (r *Runner) gitCandidates(parsed parser.ParsedCommandLine, workDir string) ([]candidate.Candidate, error) {
	repo, err := git.PlainOpenWithOptions(workDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", workDir, err)
	}

	sub := parsed.SubcommandPath[0]
	if lo.Contains(branchSubcommands, sub) {
		return branchCandidates(repo, parsed.CurrentToken, "")
	}

	if len(parsed.SpecifiedArguments) == 0 {
		return remoteCandidates(repo, parsed.CurrentToken)
	}
	// A remote is already confirmed; complete branches on it.
	return branchCandidates(repo, parsed.CurrentToken, parsed.SpecifiedArguments[0])
}

func branchCandidates(repo *git.Repository, prefix, remote string) ([]candidate.Candidate, error) {
	refs, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	var out []candidate.Candidate
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		c := candidate.New(name, candidate.CategoryBranch)
		if remote != "" {
			c = c.WithDescription(fmt.Sprintf("branch on %s", remote))
		} else {
			c = c.WithDescription("local branch")
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func remoteCandidates(repo *git.Repository, prefix string) ([]candidate.Candidate, error) {
	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("listing remotes: %w", err)
	}

	var out []candidate.Candidate
	for _, remote := range remotes {
		cfg := remote.Config()
		if !strings.HasPrefix(cfg.Name, prefix) {
			continue
		}
		desc := ""
		if len(cfg.URLs) > 0 {
			desc = cfg.URLs[0]
		}
		out = append(out, candidate.New(cfg.Name, candidate.CategoryRemote).
			WithDescription(desc))
	}
	return out, nil
}
