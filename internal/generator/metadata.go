package generator

import (
	"fmt"
	"strings"

	"github.com/robottwo/tabby/internal/system"
	"github.com/robottwo/tabby/pkg/candidate"
	"go.uber.org/zap"
)

// userCandidates offers account names; the system enumerator already
// drops daemon accounts and keeps the superuser.
func (g *Generator) userCandidates(prefix string) []candidate.Candidate {
	users, err := g.sys.Users(false)
	if err != nil {
		g.logger.Warn("user enumeration failed", zap.Error(err))
		return nil
	}

	var out []candidate.Candidate
	for _, u := range users {
		if strings.HasPrefix(u.Name, prefix) {
			out = append(out, candidate.New(u.Name, candidate.CategoryUser).
				WithDescription(u.Shell))
		}
	}
	return out
}

func (g *Generator) groupCandidates(prefix string) []candidate.Candidate {
	groups, err := g.sys.Groups()
	if err != nil {
		g.logger.Warn("group enumeration failed", zap.Error(err))
		return nil
	}

	var out []candidate.Candidate
	for _, grp := range groups {
		if strings.HasPrefix(grp.Name, prefix) {
			out = append(out, candidate.New(grp.Name, candidate.CategoryGroup).
				WithDescription(fmt.Sprintf("gid %d", grp.GID)))
		}
	}
	return out
}

// signalCandidates preserves a leading dash typed by the user.
func (g *Generator) signalCandidates(prefix string) []candidate.Candidate {
	dash := ""
	if strings.HasPrefix(prefix, "-") {
		dash = "-"
	}

	var out []candidate.Candidate
	for _, sig := range system.Signals(prefix) {
		out = append(out, candidate.New(dash+sig.Name, candidate.CategorySignal).
			WithDescription(fmt.Sprintf("SIG%s (%d)", sig.Name, sig.Number)))
	}
	return out
}

func (g *Generator) interfaceCandidates(prefix string) []candidate.Candidate {
	ifaces, err := g.sys.Interfaces()
	if err != nil {
		g.logger.Warn("interface enumeration failed", zap.Error(err))
		return nil
	}

	var out []candidate.Candidate
	for _, ifc := range ifaces {
		if !strings.HasPrefix(ifc.Name, prefix) {
			continue
		}
		state := "down"
		if ifc.Up {
			state = "up"
		}
		out = append(out, candidate.New(ifc.Name, candidate.CategoryInterface).
			WithDescription(fmt.Sprintf("%s, %s", state, ifc.Kind)))
	}
	return out
}
