package system

import (
	"strconv"
	"strings"
)

// Signal is one entry of the fixed signal table.
type Signal struct {
	Name   string // without the SIG prefix
	Number int
}

// signalTable is the conventional Linux signal set.
var signalTable = []Signal{
	{"HUP", 1}, {"INT", 2}, {"QUIT", 3}, {"ILL", 4}, {"TRAP", 5},
	{"ABRT", 6}, {"BUS", 7}, {"FPE", 8}, {"KILL", 9}, {"USR1", 10},
	{"SEGV", 11}, {"USR2", 12}, {"PIPE", 13}, {"ALRM", 14}, {"TERM", 15},
	{"STKFLT", 16}, {"CHLD", 17}, {"CONT", 18}, {"STOP", 19}, {"TSTP", 20},
	{"TTIN", 21}, {"TTOU", 22}, {"URG", 23}, {"XCPU", 24}, {"XFSZ", 25},
	{"VTALRM", 26}, {"PROF", 27}, {"WINCH", 28}, {"IO", 29}, {"PWR", 30},
	{"SYS", 31},
}

// Signals filters the signal table by prefix. The prefix may carry a
// leading dash and/or the SIG prefix ("-TE", "TERM", "SIGTE"), or be
// numeric. Rendering the dash back is the caller's business.
func Signals(prefix string) []Signal {
	name := strings.TrimPrefix(prefix, "-")
	name = strings.ToUpper(name)
	bare := strings.TrimPrefix(name, "SIG")

	var out []Signal
	for _, sig := range signalTable {
		switch {
		case name == "":
			out = append(out, sig)
		case isDigits(name):
			if strings.HasPrefix(strconv.Itoa(sig.Number), name) {
				out = append(out, sig)
			}
		case strings.HasPrefix(sig.Name, bare):
			out = append(out, sig)
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
