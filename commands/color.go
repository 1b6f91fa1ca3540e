package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/josephlewis42/minishell/core/config"
)

// ColorBoldYellow is used for the prompt.
var ColorBoldYellow = []color.Attribute{color.FgYellow, color.Bold}

// ColorPrinter decides whether output gets ANSI colors.
type ColorPrinter struct {
	// Mode is one of config.ColorAlways, config.ColorAuto or config.ColorNever.
	Mode string
	// IsTerminal is used to decide in config.ColorAuto mode.
	IsTerminal bool
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.Mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return c.IsTerminal
	}
}

// Sprintf formats the string, wrapped in the given attributes if the output
// should be colored.
func (c *ColorPrinter) Sprintf(attrs []color.Attribute, format string, a ...interface{}) string {
	if !c.ShouldColor() {
		return fmt.Sprintf(format, a...)
	}

	// The package level NoColor is decided from os.Stdout, the decision here
	// overrides it.
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprintf(format, a...)
}
