// Command almanac resolves seeds through the category tables of an almanac
// file and prints the lowest location any of them reaches.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/almanac/core/almanac"
	"github.com/FocuswithJustin/almanac/internal/logging"
	"github.com/FocuswithJustin/almanac/internal/solver"
)

const version = "0.1.0"

// answerLabel prefixes every printed answer.
const answerLabel = "Answer: "

// CLI defines the command-line interface for almanac.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level written to stderr" default:"warn" enum:"debug,info,warn,error" env:"ALMANAC_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format written to stderr" default:"text" enum:"json,text" env:"ALMANAC_LOG_FORMAT"`

	Solve   SolveCmd   `cmd:"" default:"withargs" help:"Resolve an almanac and print the lowest location"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// stdout is where answers are printed; bound into command Run methods.
type stdout struct {
	io.Writer
}

// SolveCmd resolves one or more almanac files.
type SolveCmd struct {
	Files    []string `arg:"" help:"Almanac files (plain, .gz or .xz; - reads stdin)"`
	Mode     string   `short:"m" help:"Read the seeds line as ids or as (start, length) ranges" default:"ids" enum:"ids,ranges" env:"ALMANAC_MODE"`
	Strategy string   `short:"s" help:"Range resolution: split, or enumerate every seed (small inputs only)" default:"split" enum:"split,enumerate" env:"ALMANAC_STRATEGY"`
	Workers  int      `short:"w" help:"Parallel workers (0 = one per CPU)" default:"0" env:"ALMANAC_WORKERS"`
}

func (c *SolveCmd) Run(out *stdout) error {
	mode, err := almanac.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	strategy, err := solver.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("--workers must not be negative, got %d", c.Workers)
	}

	s := solver.New(solver.Config{Mode: mode, Strategy: strategy, Workers: c.Workers})
	ctx := context.Background()

	// Nothing is printed unless every file resolves.
	results := make([]solver.Result, 0, len(c.Files))
	for _, path := range c.Files {
		res, err := s.SolveFile(ctx, path)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	for _, res := range results {
		if len(results) > 1 {
			fmt.Fprintf(out, "%s: %s%d\n", res.Path, answerLabel, res.Answer)
		} else {
			fmt.Fprintf(out, "%s%d\n", answerLabel, res.Answer)
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(out *stdout) error {
	fmt.Fprintf(out, "almanac version %s\n", version)
	return nil
}

func (c *CLI) configureLogging() error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("almanac"),
		kong.Description("Resolve seeds through almanac category maps"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	}
}

// run parses args and executes the selected command, writing answers to out.
func run(args []string, out io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli, options()...)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	if err := cli.configureLogging(); err != nil {
		return err
	}
	return ctx.Run(&stdout{out})
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, options()...)
	ctx.FatalIfErrorf(cli.configureLogging())
	err := ctx.Run(&stdout{os.Stdout})
	ctx.FatalIfErrorf(err)
}
