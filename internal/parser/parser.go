// Package parser turns a raw command line and cursor position into a
// ParsedCommandLine: quote-aware tokens, the token being edited, and the
// completion role that token plays.
package parser

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// ParsedCommandLine is the parser's output. It is constructed fresh per
// completion request and never mutated afterwards.
type ParsedCommandLine struct {
	// Command is the first token of the line.
	Command string
	// SubcommandPath holds the recognized subcommand tokens, in order.
	SubcommandPath []string
	// SpecifiedOptions are the dash-prefixed tokens before the cursor.
	SpecifiedOptions []string
	// SpecifiedArguments are the positional tokens before the cursor,
	// excluding option values and redirect targets.
	SpecifiedArguments []string
	// CurrentToken is the in-progress token truncated at the cursor.
	CurrentToken string
	// Context classifies CurrentToken.
	Context Context
	// CursorIndex is the cursor position the line was parsed with.
	CursorIndex int
}

// SubcommandResolver reports declared subcommand names for commands the
// schema database knows about. When the root command is known, subcommand
// recognition uses exact membership instead of the lexical heuristic.
type SubcommandResolver interface {
	// DeclaredSubcommands returns the subcommand names available under
	// command after descending path, and whether the command is known.
	DeclaredSubcommands(command string, path []string) ([]string, bool)
}

// Parser classifies completion requests. A nil resolver degrades every
// command to the lexical subcommand heuristic.
type Parser struct {
	resolver SubcommandResolver
}

func New(resolver SubcommandResolver) *Parser {
	return &Parser{resolver: resolver}
}

// Options known to take a value regardless of command. The schema format
// carries no value-bearing marker on options, so this stays a fixed list.
var valueTakingOptions = map[string]bool{
	"-m":         true,
	"--message":  true,
	"--target":   true,
	"--features": true,
	"--git":      true,
	"--path":     true,
	"--name":     true,
}

var redirectOperator = regexp.MustCompile(`^(\d*(>>?|<)|&>>?)$`)

// maxSubcommandDepth caps how many leading tokens are ever treated as
// subcommands.
const maxSubcommandDepth = 2

// Parse splits input, locates the token owning cursor, and classifies it.
// Text after the cursor never leaks into CurrentToken.
func (p *Parser) Parse(input string, cursor int) ParsedCommandLine {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(input) {
		cursor = len(input)
	}

	tokens := Tokenize(input)

	// The cursor's owning token is the first token whose span contains it.
	// Between tokens, or past the last one, the current token is empty and
	// everything at or beyond the cursor is ignored.
	currentIdx := len(tokens)
	currentToken := ""
	for i, t := range tokens {
		if cursor > t.End {
			continue
		}
		currentIdx = i
		if cursor >= t.Start {
			currentToken = t.Text[:cursor-t.Start]
		}
		break
	}

	before := tokens[:currentIdx]

	parsed := ParsedCommandLine{
		CurrentToken: currentToken,
		CursorIndex:  cursor,
	}
	if len(tokens) > 0 {
		parsed.Command = tokens[0].Text
	}

	p.collectSpecified(&parsed, before)
	parsed.Context = p.classify(&parsed, before, currentToken, currentIdx)
	return parsed
}

// collectSpecified walks the tokens fully before the cursor and fills
// SubcommandPath, SpecifiedOptions and SpecifiedArguments.
func (p *Parser) collectSpecified(parsed *ParsedCommandLine, before []Token) {
	inPath := true
	redirectTarget := false
	optionValue := false

	for i, t := range before {
		if i == 0 {
			continue // command token
		}
		text := t.Text

		if redirectTarget {
			redirectTarget = false
			continue
		}
		if optionValue {
			optionValue = false
			continue
		}
		if redirectOperator.MatchString(text) {
			redirectTarget = true
			inPath = false
			continue
		}
		if strings.HasPrefix(text, "-") {
			parsed.SpecifiedOptions = append(parsed.SpecifiedOptions, text)
			optionValue = valueTakingOptions[text]
			continue
		}

		if inPath && len(parsed.SubcommandPath) < maxSubcommandDepth &&
			p.isSubcommandToken(parsed.Command, parsed.SubcommandPath, text) {
			parsed.SubcommandPath = append(parsed.SubcommandPath, text)
			continue
		}
		inPath = false
		parsed.SpecifiedArguments = append(parsed.SpecifiedArguments, text)
	}
}

// classify applies the priority rules from highest to lowest.
func (p *Parser) classify(parsed *ParsedCommandLine, before []Token, current string, currentIdx int) Context {
	// (1) Cursor on the first token.
	if currentIdx == 0 {
		return Context{Kind: KindCommand}
	}

	// (2) Option tokens. A single-dash token is a short option only when
	// it is exactly two characters; combined short flags stay one opaque
	// long-form name.
	if strings.HasPrefix(current, "--") {
		return Context{Kind: KindLongOption}
	}
	if strings.HasPrefix(current, "-") {
		if len(current) == 2 {
			return Context{Kind: KindShortOption}
		}
		return Context{Kind: KindLongOption}
	}

	prev := ""
	if len(before) > 0 {
		prev = before[len(before)-1].Text
	}

	// (3) Value of a known value-taking option.
	if valueTakingOptions[prev] {
		return Context{Kind: KindOptionValue, OptionName: prev}
	}

	// (4) Redirect targets complete as files and never count as
	// positionals.
	if redirectOperator.MatchString(prev) || redirectOperator.MatchString(current) {
		return Context{
			Kind:     KindArgument,
			ArgIndex: len(parsed.SpecifiedArguments),
			Redirect: true,
		}
	}

	// (5) Subcommand position.
	if len(parsed.SubcommandPath) < maxSubcommandDepth &&
		(len(parsed.SubcommandPath) == 0 || p.currentLooksLikeSubcommand(parsed, current)) &&
		p.subcommandStillPossible(parsed) {
		return Context{Kind: KindSubcommand}
	}

	// (6) Positional argument.
	argIndex := len(parsed.SpecifiedArguments)
	if current != "" && lo.Contains(parsed.SpecifiedArguments, current) {
		// The edited token already appears among the specified arguments;
		// avoid double-counting while re-editing.
		argIndex--
	}
	return Context{Kind: KindArgument, ArgIndex: argIndex}
}

// subcommandStillPossible rejects the subcommand role once positional
// arguments have been consumed, or when a known command declares no
// subcommands at the current depth.
func (p *Parser) subcommandStillPossible(parsed *ParsedCommandLine) bool {
	if len(parsed.SpecifiedArguments) > 0 {
		return false
	}
	if names, known := p.declared(parsed.Command, parsed.SubcommandPath); known {
		return len(names) > 0
	}
	return true
}

// currentLooksLikeSubcommand checks the partial token: exact-prefix
// membership for known commands, the lexical heuristic otherwise.
func (p *Parser) currentLooksLikeSubcommand(parsed *ParsedCommandLine, current string) bool {
	if names, known := p.declared(parsed.Command, parsed.SubcommandPath); known {
		if current == "" {
			return len(names) > 0
		}
		for _, name := range names {
			if strings.HasPrefix(name, current) {
				return true
			}
		}
		return false
	}
	return looksLikeSubcommand(current)
}

// isSubcommandToken decides whether a completed leading token is a
// subcommand: declared-name membership when the command is known, the
// heuristic as fallback.
func (p *Parser) isSubcommandToken(command string, path []string, token string) bool {
	if names, known := p.declared(command, path); known {
		return lo.Contains(names, token)
	}
	return looksLikeSubcommand(token)
}

func (p *Parser) declared(command string, path []string) ([]string, bool) {
	if p.resolver == nil {
		return nil, false
	}
	return p.resolver.DeclaredSubcommands(command, path)
}

// looksLikeSubcommand is the lexical fallback used for commands absent
// from the schema database: no option dash, no extension, no path
// separator, length 2-15, mixes vowels and consonants, and is not a
// 4-letter strictly alternating vowel/consonant word (which tends to be a
// plain noun rather than a verb-like subcommand).
func looksLikeSubcommand(token string) bool {
	if token == "" || strings.HasPrefix(token, "-") {
		return false
	}
	if strings.ContainsRune(token, '/') {
		return false
	}
	if fileExtension.MatchString(token) {
		return false
	}
	if len(token) < 2 || len(token) > 15 {
		return false
	}

	hasVowel, hasConsonant := false, false
	for _, r := range token {
		switch {
		case isVowel(r):
			hasVowel = true
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			hasConsonant = true
		}
	}
	if !hasVowel || !hasConsonant {
		return false
	}

	return !isAlternatingFourLetter(token)
}

var fileExtension = regexp.MustCompile(`\.[a-zA-Z0-9]+$`)

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

func isAlternatingFourLetter(token string) bool {
	if len(token) != 4 {
		return false
	}
	for i, r := range token {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
		if i == 0 {
			continue
		}
		if isVowel(r) == isVowel(rune(token[i-1])) {
			return false
		}
	}
	return true
}

// TakesValue reports whether option is on the fixed value-taking list.
func TakesValue(option string) bool {
	return valueTakingOptions[option]
}
