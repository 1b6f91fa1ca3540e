package shell

import "fmt"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	Word TokenKind = iota
	Pipe
	And
	Or
	Semicolon
	RedirIn
	RedirOut
	RedirAppend
	RedirHeredoc
)

var tokenSymbols = map[TokenKind]string{
	Pipe:         "|",
	And:          "&&",
	Or:           "||",
	Semicolon:    ";",
	RedirIn:      "<",
	RedirOut:     ">",
	RedirAppend:  ">>",
	RedirHeredoc: "<<",
}

// String returns the operator symbol, or "word".
func (k TokenKind) String() string {
	if sym, ok := tokenSymbols[k]; ok {
		return sym
	}
	if k == Word {
		return "word"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsRedirection reports whether k is one of <, >, >> or <<.
func (k TokenKind) IsRedirection() bool {
	switch k {
	case RedirIn, RedirOut, RedirAppend, RedirHeredoc:
		return true
	}
	return false
}

// IsControl reports whether k joins commands: |, && or ||.
func (k TokenKind) IsControl() bool {
	switch k {
	case Pipe, And, Or:
		return true
	}
	return false
}

// IsSeparator reports whether k is a control operator or a semicolon.
func (k TokenKind) IsSeparator() bool {
	return k.IsControl() || k == Semicolon
}

// Token is a single lexical unit of a command line. Text is only set for
// words and still contains quotes, backslashes and unexpanded variables.
type Token struct {
	Kind TokenKind
	Text string
}

// Symbol returns the text as it appeared on the command line.
func (t Token) Symbol() string {
	if t.Kind == Word {
		return t.Text
	}
	return t.Kind.String()
}

func (t Token) String() string {
	if t.Kind == Word {
		return fmt.Sprintf("Word(%q)", t.Text)
	}
	return t.Kind.String()
}
