// Command bnf reads a grammar file and runs one of four operations over
// it: generate a random sample, match an input string, print the parsed
// abstract syntax, or check the grammar for lex/parse/resolve errors only.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/grammarlang/bnf"
)

func loadGrammar(c *cli.Context) (*bnf.Grammar, error) {
	path := c.Args().First()
	if path == "" {
		return nil, cli.Exit("a grammar file is required", 1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	g, err := bnf.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if start := c.String("start"); start != "" {
		if _, err := g.SetStart(start); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func startFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "start",
		Usage: "name of the rule to use as the start symbol (default: the grammar's first rule)",
	}
}

func generateAction(c *cli.Context) error {
	g, err := loadGrammar(c)
	if err != nil {
		return err
	}

	out := g.Generate()
	if out == "" {
		return cli.Exit("generation failed: no start rule, or the sample is empty", 1)
	}

	fmt.Println(out)
	return nil
}

func matchAction(c *cli.Context) error {
	g, err := loadGrammar(c)
	if err != nil {
		return err
	}

	input := c.Args().Get(1)
	if input == "" {
		return cli.Exit("an input string is required", 1)
	}

	if _, ok := g.ParseInput(input); !ok {
		fmt.Println("no match")
		os.Exit(1)
	}

	fmt.Println("match")
	return nil
}

func printAction(c *cli.Context) error {
	g, err := loadGrammar(c)
	if err != nil {
		return err
	}

	return g.Print(os.Stdout)
}

func checkAction(c *cli.Context) error {
	if _, err := loadGrammar(c); err != nil {
		return err
	}

	fmt.Println("ok")
	return nil
}

func buildCliApp() *cli.App {
	return &cli.App{
		Name:  "bnf",
		Usage: "interpret a BNF-like grammar: generate, match, print, or check",
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "print one random sample from the grammar's start rule",
				ArgsUsage: "<grammar-file>",
				Flags:     []cli.Flag{startFlag()},
				Action:    generateAction,
			},
			{
				Name:      "match",
				Usage:     "report whether an input string derives from the grammar's start rule",
				ArgsUsage: "<grammar-file> <input>",
				Flags:     []cli.Flag{startFlag()},
				Action:    matchAction,
			},
			{
				Name:      "print",
				Usage:     "pretty-print the grammar's parsed abstract syntax",
				ArgsUsage: "<grammar-file>",
				Action:    printAction,
			},
			{
				Name:      "check",
				Usage:     "lex, parse, and resolve the grammar, reporting only the first error found",
				ArgsUsage: "<grammar-file>",
				Action:    checkAction,
			},
		},
	}
}

func main() {
	if err := buildCliApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
