package shell

// RedirectionKind is the kind of a Redirection.
type RedirectionKind int

const (
	RedirectIn RedirectionKind = iota
	RedirectOut
	RedirectAppend
	RedirectHeredoc
)

func (k RedirectionKind) String() string {
	switch k {
	case RedirectIn:
		return "<"
	case RedirectOut:
		return ">"
	case RedirectAppend:
		return ">>"
	case RedirectHeredoc:
		return "<<"
	}
	return "?"
}

// Redirection is a single redirection of a command, in source order.
type Redirection struct {
	Kind RedirectionKind
	// Target is the file name, or the delimiter of a here-document.
	Target string
	// Quoted is set for here-document delimiters that contained quotes. The
	// body of such a here-document is not expanded.
	Quoted bool
}

// Command is a simple command: its words and redirections. A command with no
// arguments but some redirections is valid and does nothing but redirect.
type Command struct {
	Args         []string
	Redirections []Redirection
	// Expanded is set once variables and quotes have been processed.
	Expanded bool
}

// Operator joins a Pipeline to the one after it.
type Operator int

const (
	OpNone Operator = iota
	OpSequence
	OpAnd
	OpOr
)

func (o Operator) String() string {
	switch o {
	case OpSequence:
		return ";"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	}
	return ""
}

// Pipeline is one stage of a Sequence: commands joined by pipes, and the
// operator introducing the next stage.
type Pipeline struct {
	Commands []*Command
	Op       Operator
}

// Sequence is a parsed logical line.
type Sequence struct {
	Stages []*Pipeline
}

var redirectionKinds = map[TokenKind]RedirectionKind{
	RedirIn:      RedirectIn,
	RedirOut:     RedirectOut,
	RedirAppend:  RedirectAppend,
	RedirHeredoc: RedirectHeredoc,
}

var stageOperators = map[TokenKind]Operator{
	Semicolon: OpSequence,
	And:       OpAnd,
	Or:        OpOr,
}

// Parse builds a Sequence from tokens accepted by Validate. Leading and
// repeated semicolons produce no stages.
func Parse(tokens []Token) *Sequence {
	p := &parser{tokens: tokens}
	seq := &Sequence{}

	for {
		p.skipSemicolons()
		if p.done() {
			break
		}
		stage := p.pipeline()
		if stage == nil {
			break
		}
		seq.Stages = append(seq.Stages, stage)

		if p.done() {
			break
		}
		op, ok := stageOperators[p.peek().Kind]
		if !ok {
			break
		}
		stage.Op = op
		p.pos++
	}

	// A trailing semicolon joins nothing.
	if n := len(seq.Stages); n > 0 && seq.Stages[n-1].Op == OpSequence {
		seq.Stages[n-1].Op = OpNone
	}

	return seq
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) skipSemicolons() {
	for !p.done() && p.peek().Kind == Semicolon {
		p.pos++
	}
}

func (p *parser) pipeline() *Pipeline {
	stage := &Pipeline{}
	for {
		cmd := p.command()
		if cmd == nil {
			break
		}
		stage.Commands = append(stage.Commands, cmd)
		if p.done() || p.peek().Kind != Pipe {
			break
		}
		p.pos++
	}
	if len(stage.Commands) == 0 {
		return nil
	}
	return stage
}

func (p *parser) command() *Command {
	cmd := &Command{}
	found := false

	for !p.done() {
		tok := p.peek()
		if kind, ok := redirectionKinds[tok.Kind]; ok {
			p.pos++
			var target string
			if !p.done() && p.peek().Kind == Word {
				target = p.peek().Text
				p.pos++
			}
			cmd.Redirections = append(cmd.Redirections, Redirection{Kind: kind, Target: target})
			found = true
			continue
		}
		if tok.Kind != Word {
			break
		}
		cmd.Args = append(cmd.Args, tok.Text)
		found = true
		p.pos++
	}

	if !found {
		return nil
	}
	return cmd
}
