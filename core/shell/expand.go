package shell

import (
	"strconv"
	"strings"
)

// Lookup resolves a variable name to its value.
type Lookup interface {
	LookupEnv(key string) (string, bool)
}

// Expander substitutes $NAME and $? and removes quotes.
type Expander struct {
	Env        Lookup
	LastStatus int
}

// ExpandPipeline expands every command of a stage that hasn't been expanded.
func (e *Expander) ExpandPipeline(p *Pipeline) {
	for _, cmd := range p.Commands {
		e.ExpandCommand(cmd)
	}
}

// ExpandCommand expands arguments and redirection targets in place. Arguments
// that end up empty are dropped, targets keep their value. Here-document
// delimiters only lose their quotes and are marked Quoted if they had any.
func (e *Expander) ExpandCommand(cmd *Command) {
	if cmd.Expanded {
		return
	}

	args := cmd.Args[:0]
	for _, arg := range cmd.Args {
		if word := e.ExpandWord(arg); word != "" {
			args = append(args, word)
		}
	}
	cmd.Args = args

	for i := range cmd.Redirections {
		r := &cmd.Redirections[i]
		if r.Kind == RedirectHeredoc {
			r.Quoted = strings.ContainsAny(r.Target, `'"`)
			r.Target = RemoveQuotes(r.Target)
			continue
		}
		r.Target = e.ExpandWord(r.Target)
	}

	cmd.Expanded = true
}

// ExpandWord expands variables in a single word and then removes quotes.
func (e *Expander) ExpandWord(word string) string {
	return removeQuotes(e.substitute(word))
}

// expansion holds substituted text and marks the bytes that came from a
// variable. Marked bytes are never treated as quotes or escapes.
type expansion struct {
	text    []byte
	literal []bool
}

func (x *expansion) add(c byte, literal bool) {
	x.text = append(x.text, c)
	x.literal = append(x.literal, literal)
}

func (x *expansion) addString(s string, literal bool) {
	for i := 0; i < len(s); i++ {
		x.add(s[i], literal)
	}
}

// substitute performs variable expansion with quote tracking.
func (e *Expander) substitute(word string) *expansion {
	out := &expansion{}
	var quote byte

	for i := 0; i < len(word); {
		c := word[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				quote = 0
			}
			out.add(c, false)
			i++

		case c == '\\' && i+1 < len(word):
			// Keep escapes for quote removal but never expand what they protect.
			out.add(c, false)
			out.add(word[i+1], false)
			i += 2

		case c == '\'' && quote == 0, c == '"' && quote == 0:
			quote = c
			out.add(c, false)
			i++

		case c == '"' && quote == '"':
			quote = 0
			out.add(c, false)
			i++

		case c == '$':
			value, n := e.variable(word[i+1:])
			if n == 0 {
				out.add(c, false)
				i++
				continue
			}
			out.addString(value, true)
			i += 1 + n

		default:
			out.add(c, false)
			i++
		}
	}

	return out
}

// variable resolves the reference following a $. It returns the value and
// the number of bytes consumed, zero if no name follows.
func (e *Expander) variable(rest string) (string, int) {
	if strings.HasPrefix(rest, "?") {
		return strconv.Itoa(e.LastStatus), 1
	}

	n := 0
	for n < len(rest) && isNameChar(rest[n]) {
		n++
	}
	if n == 0 {
		return "", 0
	}
	if e.Env == nil {
		return "", n
	}
	value, _ := e.Env.LookupEnv(rest[:n])
	return value, n
}

func isNameChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// RemoveQuotes strips quotes and resolves backslash escapes without expanding
// anything.
func RemoveQuotes(word string) string {
	x := &expansion{}
	x.addString(word, false)
	return removeQuotes(x)
}

func removeQuotes(x *expansion) string {
	var sb strings.Builder
	var quote byte
	s := x.text

	for i := 0; i < len(s); {
		c := s[i]
		if x.literal[i] {
			sb.WriteByte(c)
			i++
			continue
		}

		switch {
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
			i++
		case quote != 0 && c == quote:
			quote = 0
			i++
		case c == '\\' && quote == 0 && i+1 < len(s):
			sb.WriteByte(s[i+1])
			i += 2
		case c == '\\' && quote == '"' && i+1 < len(s) && isDoubleQuoteEscape(s[i+1]):
			sb.WriteByte(s[i+1])
			i += 2
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String()
}

func isDoubleQuoteEscape(c byte) bool {
	return c == '"' || c == '$' || c == '\\'
}

// ExpandHeredocLine expands one line of an unquoted here-document. Quotes
// are ordinary characters; \$ and \\ lose their backslash.
func (e *Expander) ExpandHeredocLine(line string) string {
	var sb strings.Builder

	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && (line[i+1] == '$' || line[i+1] == '\\'):
			sb.WriteByte(line[i+1])
			i += 2
		case c == '$':
			value, n := e.variable(line[i+1:])
			if n == 0 {
				sb.WriteByte(c)
				i++
				continue
			}
			sb.WriteString(value)
			i += 1 + n
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String()
}
