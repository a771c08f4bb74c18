package handlers

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/robottwo/tabby/internal/parser"
	"github.com/robottwo/tabby/pkg/candidate"
)

func matchesSSH(parsed parser.ParsedCommandLine) bool {
	switch parsed.Command {
	case "ssh", "scp", "sftp":
	default:
		return false
	}
	return completingArgument(parsed) && !strings.HasPrefix(parsed.CurrentToken, "-")
}

func (r *Runner) sshCandidates(parsed parser.ParsedCommandLine) ([]candidate.Candidate, error) {
	sshDir := r.sshDir
	if sshDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		sshDir = filepath.Join(home, ".ssh")
	}

	hosts := newHostSet()
	hosts.readConfig(filepath.Join(sshDir, "config"), sshDir)
	hosts.readKnownHosts(filepath.Join(sshDir, "known_hosts"))

	// scp completes "host:" so the path part can follow directly.
	suffix := ""
	if parsed.Command == "scp" {
		suffix = ":"
	}

	var out []candidate.Candidate
	for _, host := range hosts.sorted() {
		if strings.HasPrefix(host, parsed.CurrentToken) {
			out = append(out, candidate.New(host+suffix, candidate.CategoryHost))
		}
	}
	return out, nil
}

// hostSet accumulates unique host names from SSH client files. visited
// tracks config files already parsed so Include cycles terminate.
type hostSet struct {
	names   map[string]struct{}
	visited map[string]struct{}
}

func newHostSet() *hostSet {
	return &hostSet{
		names:   make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}
}

func (h *hostSet) sorted() []string {
	out := make([]string, 0, len(h.names))
	for name := range h.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (h *hostSet) add(name string) {
	// Wildcard and negated patterns are match rules, not host names.
	if name == "" || strings.ContainsAny(name, "*?!") {
		return
	}
	h.names[name] = struct{}{}
}

// readConfig collects Host aliases from an SSH config file, following
// Include directives (glob patterns, resolved relative to sshDir).
func (h *hostSet) readConfig(path, sshDir string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	if _, seen := h.visited[abs]; seen {
		return
	}
	h.visited[abs] = struct{}{}

	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keyword, rest, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)

		switch strings.ToLower(keyword) {
		case "host":
			for _, alias := range strings.Fields(rest) {
				h.add(alias)
			}
		case "include":
			h.include(rest, sshDir)
		}
	}
}

func (h *hostSet) include(pattern, sshDir string) {
	if strings.HasPrefix(pattern, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		pattern = filepath.Join(home, pattern[1:])
	}
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(sshDir, pattern)
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return
	}
	for _, match := range matches {
		h.readConfig(match, sshDir)
	}
}

// readKnownHosts collects host names from a known_hosts file. Hashed
// entries cannot be reversed and plain IP addresses make poor
// completions, so both are skipped.
func (h *hostSet) readKnownHosts(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "|") {
			continue
		}
		fields := strings.Fields(line)
		// @cert-authority / @revoked markers shift the host field right.
		if strings.HasPrefix(fields[0], "@") {
			fields = fields[1:]
		}
		if len(fields) == 0 {
			continue
		}
		for _, name := range strings.Split(fields[0], ",") {
			name = stripBrackets(strings.TrimSpace(name))
			if name == "" || looksLikeIPAddress(name) {
				continue
			}
			h.add(name)
		}
	}
}

// stripBrackets unwraps the [host]:port form.
func stripBrackets(name string) string {
	if !strings.HasPrefix(name, "[") {
		return name
	}
	end := strings.Index(name, "]")
	if end <= 1 {
		return name
	}
	return name[1:end]
}

func looksLikeIPAddress(s string) bool {
	ipv4 := strings.Contains(s, ".")
	for _, c := range s {
		if (c < '0' || c > '9') && c != '.' {
			ipv4 = false
			break
		}
	}
	if ipv4 {
		return true
	}

	if !strings.Contains(s, ":") {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		case c == ':' || c == '.':
		default:
			return false
		}
	}
	return true
}
