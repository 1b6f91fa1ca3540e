package shell

import "fmt"

// StatusSyntaxError is the exit status recorded for a rejected line.
const StatusSyntaxError = 258

// SyntaxError is returned when a line is malformed. Nothing on the line runs.
type SyntaxError struct {
	// Near is the offending token, "newline" at the end of the line.
	Near string
	// Detail replaces the "near unexpected token" form when set.
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail != "" {
		return "syntax error: " + e.Detail
	}
	return fmt.Sprintf("syntax error near unexpected token `%s'", e.Near)
}

var (
	// ErrUnexpectedEOF is returned when input ends inside a logical line.
	ErrUnexpectedEOF = &SyntaxError{Detail: "unexpected end of file"}
	// ErrUnclosedQuotes is returned for a complete line with an open quote.
	ErrUnclosedQuotes = &SyntaxError{Detail: "unclosed quotes"}
	// ErrAmbiguousRedirect is returned for some runs of redirections.
	ErrAmbiguousRedirect = &SyntaxError{Detail: "ambiguous redirect"}
)

func nearNewline() *SyntaxError {
	return &SyntaxError{Near: "newline"}
}

// Validate rejects token sequences the parser can't handle: separators at the
// start or end, redirections without a target and operators that don't
// follow one another.
func Validate(tokens []Token) error {
	if len(tokens) == 0 {
		return nil
	}
	if tokens[0].Kind.IsSeparator() {
		return unexpectedAt(tokens, 0)
	}

	for i := 0; i+1 < len(tokens); i++ {
		cur, next := tokens[i].Kind, tokens[i+1].Kind

		switch {
		case cur.IsRedirection() && next.IsRedirection():
			return redirectionRunError(tokens[i:])
		case cur.IsRedirection() && next != Word:
			return unexpectedAt(tokens, i+1)
		case cur.IsControl() && next != Word && !next.IsRedirection():
			return unexpectedAt(tokens, i+1)
		case cur == Semicolon && (next.IsSeparator() || next.IsRedirection()):
			return unexpectedAt(tokens, i+1)
		}
	}

	last := tokens[len(tokens)-1].Kind
	switch {
	case last == Semicolon:
		return &SyntaxError{Near: last.String()}
	case last.IsSeparator() || last.IsRedirection():
		return nearNewline()
	}

	return nil
}

// unexpectedAt reports tokens[i], switching to the run rules if a redirection
// is immediately followed by another.
func unexpectedAt(tokens []Token, i int) error {
	if i >= len(tokens) {
		return nearNewline()
	}
	if tokens[i].Kind.IsRedirection() && i+1 < len(tokens) && tokens[i+1].Kind.IsRedirection() {
		return redirectionRunError(tokens[i:])
	}
	return &SyntaxError{Near: tokens[i].Symbol()}
}

func isOutput(k TokenKind) bool { return k == RedirOut || k == RedirAppend }
func isInput(k TokenKind) bool  { return k == RedirIn || k == RedirHeredoc }

// symbolLength returns how many < or > characters a redirection was written with.
func symbolLength(k TokenKind) int {
	switch k {
	case RedirAppend, RedirHeredoc:
		return 2
	case RedirOut, RedirIn:
		return 1
	}
	return 0
}

// redirectionRunError classifies a run of consecutive redirections starting at
// run[0] by the total number of symbols in it.
func redirectionRunError(run []Token) error {
	total, i := 0, 0

	if isOutput(run[0].Kind) {
		for i < len(run) && isOutput(run[i].Kind) {
			total += symbolLength(run[i].Kind)
			i++
		}
		switch {
		case total > 3:
			return &SyntaxError{Near: RedirAppend.String()}
		case total == 2 && (i == len(run) || run[i].Kind.IsControl() || run[i].Kind.IsRedirection()):
			return nearNewline()
		default:
			return ErrAmbiguousRedirect
		}
	}

	for i < len(run) && isInput(run[i].Kind) {
		total += symbolLength(run[i].Kind)
		i++
	}
	switch {
	case total <= 3:
		return nearNewline()
	case total == 4:
		return &SyntaxError{Near: "<"}
	case total == 5:
		return &SyntaxError{Near: "<<"}
	default:
		return &SyntaxError{Near: "<<<"}
	}
}
