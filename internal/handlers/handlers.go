// Package handlers implements dynamic completion for the few command
// patterns the static schema cannot express: live process ids, account
// names, branch and remote names, and package-index queries. The handler
// set is closed; dispatch is an exhaustive switch rather than an open
// plugin registry.
package handlers

import (
	"context"
	"time"

	"github.com/robottwo/tabby/internal/cache"
	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/internal/system"
	"github.com/robottwo/tabby/pkg/candidate"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one dynamic generation pass. Handlers that shell
// out inherit it through the context, so a hung subprocess degrades to an
// empty contribution instead of stalling the prompt.
const DefaultTimeout = 2 * time.Second

type kind int

const (
	kindKill kind = iota
	kindSudo
	kindGit
	kindCargoInstall
	kindSSH
)

var allKinds = [...]kind{kindKill, kindSudo, kindGit, kindCargoInstall, kindSSH}

func (k kind) String() string {
	switch k {
	case kindKill:
		return "kill"
	case kindSudo:
		return "sudo"
	case kindGit:
		return "git"
	case kindCargoInstall:
		return "cargo-install"
	case kindSSH:
		return "ssh"
	default:
		return "unknown"
	}
}

// Runner evaluates every built-in handler against a parsed command line
// and concatenates the contributions of the ones that match.
type Runner struct {
	sys     *system.Enumerator
	logger  *zap.Logger
	timeout time.Duration

	// sshDir overrides ~/.ssh, for tests.
	sshDir string

	// searches caches package-index query results per partial name.
	searches *cache.TTL[[]candidate.Candidate]
}

func NewRunner(sys *system.Enumerator, logger *zap.Logger) *Runner {
	return &Runner{
		sys:      sys,
		logger:   logger,
		timeout:  DefaultTimeout,
		searches: cache.NewTTL[[]candidate.Candidate](cache.CommandTTL),
	}
}

// Generate runs all matching handlers under one timeout-bounded context.
// A handler failure is logged and contributes zero candidates; the other
// handlers still run.
func (r *Runner) Generate(ctx context.Context, parsed parser.ParsedCommandLine, workDir string) []candidate.Candidate {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var out []candidate.Candidate
	for _, k := range allKinds {
		if !r.matches(k, parsed) {
			continue
		}
		cands, err := r.generate(ctx, k, parsed, workDir)
		if err != nil {
			r.logger.Debug("dynamic handler failed",
				zap.Stringer("handler", k), zap.Error(err))
			continue
		}
		out = append(out, cands...)
	}
	return out
}

func (r *Runner) matches(k kind, parsed parser.ParsedCommandLine) bool {
	switch k {
	case kindKill:
		return matchesKill(parsed)
	case kindSudo:
		return matchesSudo(parsed)
	case kindGit:
		return matchesGit(parsed)
	case kindCargoInstall:
		return matchesCargoInstall(parsed)
	case kindSSH:
		return matchesSSH(parsed)
	default:
		return false
	}
}

func (r *Runner) generate(ctx context.Context, k kind, parsed parser.ParsedCommandLine, workDir string) ([]candidate.Candidate, error) {
	switch k {
	case kindKill:
		return r.killCandidates(ctx, parsed)
	case kindSudo:
		return r.sudoCandidates(parsed)
	case kindGit:
		return r.gitCandidates(parsed, workDir)
	case kindCargoInstall:
		return r.cargoCandidates(ctx, parsed)
	case kindSSH:
		return r.sshCandidates(parsed)
	default:
		return nil, nil
	}
}

// completingArgument reports whether the cursor sits on a positional
// argument or a fresh word, the positions dynamic handlers complete.
func completingArgument(parsed parser.ParsedCommandLine) bool {
	switch parsed.Context.Kind {
	case parser.KindArgument, parser.KindSubcommand:
		return !parsed.Context.Redirect
	default:
		return false
	}
}
