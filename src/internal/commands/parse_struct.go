package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/m3tools/m3cd/src/internal/structparse"
)

// ParseStructCommand prints the top-level entries of a struct string.
// It needs no merge job.
type ParseStructCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	brackets bool
	asJSON   bool
	input    string
}

func CreateParseStructCommand() Runner {
	return &ParseStructCommand{}
}

func (c *ParseStructCommand) Name() string {
	return "parse-struct"
}

func (c *ParseStructCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet(c.Name(), flag.ExitOnError)
	c.fs.BoolVar(&c.brackets, "brackets", false, "Use '[' and ']' as delimiters instead of '(' and ')'")
	c.fs.BoolVar(&c.asJSON, "json", false, "Print entries as JSON")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if c.fs.NArg() == 0 {
		return fmt.Errorf("missing struct string argument")
	}
	c.input = strings.Join(c.fs.Args(), " ")

	return nil
}

func (c *ParseStructCommand) Run() error {
	parse := structparse.ParseParens
	if c.brackets {
		parse = structparse.ParseBrackets
	}

	s, err := parse(c.input)
	if err != nil {
		return err
	}

	out := c.ctx.out()
	if c.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Entries())
	}

	for _, e := range s.Entries() {
		fmt.Fprintf(out, "%s = %s\n", e.Key, e.Value)
	}
	return nil
}
