package parser

import "unicode"

// Token is a whitespace-delimited, quote-aware unit of the input line.
// Quote characters remain part of the token text. Start and End are byte
// offsets into the original input; End is one past the last byte.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits input on whitespace outside single and double quotes.
func Tokenize(input string) []Token {
	var tokens []Token

	var (
		inSingle bool
		inDouble bool
		start    = -1
	)

	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, Token{Text: input[start:end], Start: start, End: end})
			start = -1
		}
	}

	for i, r := range input {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		}

		if unicode.IsSpace(r) && !inSingle && !inDouble {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(input))

	return tokens
}
