package shell

import "strings"

// operators in match order, two character operators first.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"||", Or},
	{"&&", And},
	{"<<", RedirHeredoc},
	{">>", RedirAppend},
	{"|", Pipe},
	{"<", RedirIn},
	{">", RedirOut},
	{";", Semicolon},
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// isOperatorChar reports whether c starts an operator or a lone &.
func isOperatorChar(c byte) bool {
	switch c {
	case '|', '<', '>', ';', '&':
		return true
	}
	return false
}

func matchOperator(line string, i int) (Token, int, bool) {
	for _, op := range operators {
		if strings.HasPrefix(line[i:], op.text) {
			return Token{Kind: op.kind}, len(op.text), true
		}
	}
	return Token{}, 0, false
}

// Tokenize splits a logical line into words and operators.
//
// Quotes and backslashes are kept in word text for the expander. Only quotes
// protect blanks and operator characters, a backslash outside them is an
// ordinary character. A line holding only blanks yields no tokens.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token

	for i := 0; i < len(line); {
		if isBlank(line[i]) {
			i++
			continue
		}

		if isOperatorChar(line[i]) {
			tok, n, ok := matchOperator(line, i)
			if !ok {
				return nil, &SyntaxError{Near: line[i : i+1]}
			}
			tokens = append(tokens, tok)
			i += n
			continue
		}

		end := scanWord(line, i)
		tokens = append(tokens, Token{Kind: Word, Text: line[i:end]})
		i = end
	}

	return tokens, nil
}

// scanWord returns the index just past the word starting at start.
func scanWord(line string, start int) int {
	var quote byte
	i := start
	for i < len(line) {
		c := line[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
			}
		case quote == '"':
			switch c {
			case '\\':
				if i+1 < len(line) {
					i++
				}
			case '"':
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case isBlank(c) || isOperatorChar(c):
			return i
		}
		i++
	}
	return i
}
