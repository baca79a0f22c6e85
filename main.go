package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mcncl/jsonlens/internal/config"
	"github.com/mcncl/jsonlens/internal/dedupe"
	"github.com/mcncl/jsonlens/internal/duplicates"
	"github.com/mcncl/jsonlens/internal/edit"
	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/generator"
	"github.com/mcncl/jsonlens/internal/jsontext"
	"github.com/mcncl/jsonlens/internal/models"
	"github.com/mcncl/jsonlens/internal/parser"
	"github.com/mcncl/jsonlens/internal/pathaddr"
)

// Version information
const (
	Version = "0.1.0"
)

// valueWidth is the display width at which values are cut in the dupes table.
const valueWidth = 40

// CLI defines the command-line interface
type CLI struct {
	Input  string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config string `help:"Path to config file. Defaults to .jsonlens.yml in the working directory or a parent." short:"c" type:"path"`
	Indent int    `help:"Spaces per indentation level, 0 for compact output. Defaults to the config value." default:"-1"`
	Debug  bool   `help:"Enable debug logging." short:"d"`

	Get     GetCmd     `cmd:"" help:"Print the value at a path such as $.user.tags[2]."`
	Set     SetCmd     `cmd:"" help:"Replace the leaf at a path and print the new document."`
	Dupes   DupesCmd   `cmd:"" help:"List string values that occur more than once."`
	Dedupe  DedupeCmd  `cmd:"" help:"Number repeated strings so that every occurrence is distinct."`
	Fmt     FmtCmd     `cmd:"" help:"Pretty-print the document, optionally with its source map."`
	Schema  SchemaCmd  `cmd:"" help:"Print a single type description of the document."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Context holds the runtime context handed to every command
type Context struct {
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	inputPath  string
	outputPath string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonlens --help\n")
		os.Exit(1)
	}
}

// run parses args, loads the configuration and executes the selected command.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	app, err := kong.New(&cli,
		kong.Name("jsonlens"),
		kong.Description("Inspect, edit and describe JSON documents by path"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	kctx, err := app.Parse(args)
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("invalid arguments: %v", err), err)
	}

	ctx, err := newContext(&cli, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	return kctx.Run(ctx)
}

func newContext(cli *CLI, stdin io.Reader, stdout, stderr io.Writer) (*Context, error) {
	configPath := cli.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	overrides := config.Overrides{Debug: cli.Debug}
	if cli.Indent >= 0 {
		indent := cli.Indent
		overrides.Indent = &indent
	}
	cfg, err := config.LoadConfigWithCLI(configPath, overrides)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	if configPath != "" {
		logger.Debug("Loaded config", "path", configPath)
	}

	return &Context{
		Config:     cfg,
		Logger:     logger,
		Stdin:      stdin,
		Stdout:     stdout,
		Stderr:     stderr,
		inputPath:  cli.Input,
		outputPath: cli.Output,
	}, nil
}

// readDocument parses the input file, or stdin when no file was given.
func (c *Context) readDocument() (models.JSONValue, error) {
	if c.inputPath != "" {
		c.Logger.Debug("Reading input", "path", c.inputPath)
		return parser.ParseFile(c.inputPath)
	}

	if f, ok := c.Stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(c.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return parser.ParseBytes(data)
}

// writeOutput writes text to the output file or stdout, ending with a newline.
func (c *Context) writeOutput(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if c.outputPath != "" {
		if err := os.WriteFile(c.outputPath, []byte(text), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", c.outputPath), err)
		}
		c.Logger.Info("Wrote output", "path", c.outputPath)
		return nil
	}
	if _, err := io.WriteString(c.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// serialize renders value with the configured indent, logging anything that
// had to be written as null.
func (c *Context) serialize(value models.JSONValue) *formatter.SourceMap {
	sm := formatter.Serialize(value, c.Config.Indent)
	for _, d := range sm.Diagnostics {
		c.Logger.Warn("Value written as null", "error", d)
	}
	return sm
}

// GetCmd prints the value at a path
type GetCmd struct {
	Path string `arg:"" help:"Path to read, e.g. $.user.tags[2]."`
}

func (cmd *GetCmd) Run(ctx *Context) error {
	doc, err := ctx.readDocument()
	if err != nil {
		return err
	}
	path, err := pathaddr.Parse(cmd.Path)
	if err != nil {
		return err
	}
	value, err := pathaddr.Resolve(path, doc)
	if err != nil {
		return err
	}
	return ctx.writeOutput(ctx.serialize(value).Text)
}

// SetCmd replaces a leaf value
type SetCmd struct {
	Path  string `arg:"" help:"Path of the leaf to replace."`
	Value string `arg:"" help:"New value, interpreted according to the current value's type."`
}

func (cmd *SetCmd) Run(ctx *Context) error {
	doc, err := ctx.readDocument()
	if err != nil {
		return err
	}
	path, err := pathaddr.Parse(cmd.Path)
	if err != nil {
		return err
	}
	updated, err := edit.Apply(doc, path, cmd.Value)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("Updated value", "path", path.String())
	return ctx.writeOutput(ctx.serialize(updated).Text)
}

// DupesCmd lists duplicated strings
type DupesCmd struct {
	Query string `help:"Only show values containing this text (case-insensitive)." short:"q"`
	JSON  bool   `help:"Print the records as JSON." name:"json"`
}

func (cmd *DupesCmd) Run(ctx *Context) error {
	doc, err := ctx.readDocument()
	if err != nil {
		return err
	}
	records := duplicates.Filter(duplicates.FindDuplicates(doc), cmd.Query)

	if cmd.JSON {
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(records, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode duplicates", err)
		}
		return ctx.writeOutput(string(data))
	}
	return ctx.writeOutput(renderDuplicates(records))
}

// renderDuplicates lays records out as a table. Counts use digit grouping;
// values are quoted and cut to valueWidth display columns.
func renderDuplicates(records []models.DuplicateRecord) string {
	p := message.NewPrinter(language.English)
	if len(records) == 0 {
		return "No duplicate strings found."
	}

	var b strings.Builder
	occurrences := 0
	b.WriteString(p.Sprintf("%6s  %s  %s\n", "COUNT", runewidth.FillRight("VALUE", valueWidth), "FIRST PATH"))
	for _, r := range records {
		occurrences += r.Count
		value := runewidth.Truncate(jsontext.Quote(r.Value), valueWidth, "...")
		b.WriteString(p.Sprintf("%6d  %s  %s\n", r.Count, runewidth.FillRight(value, valueWidth), r.Paths[0]))
	}
	b.WriteString(p.Sprintf("%d duplicated values, %d occurrences", len(records), occurrences))
	return b.String()
}

// DedupeCmd numbers repeated strings
type DedupeCmd struct {
	Value string `help:"Only number this value. All duplicated values are numbered when empty."`
}

func (cmd *DedupeCmd) Run(ctx *Context) error {
	doc, err := ctx.readDocument()
	if err != nil {
		return err
	}

	d := dedupe.New(
		dedupe.WithSeparator(ctx.Config.Dedupe.Separator),
		dedupe.WithMinWidth(ctx.Config.Dedupe.MinWidth),
		dedupe.WithLogger(ctx.Logger),
	)
	var result dedupe.Result
	if cmd.Value != "" {
		result = d.DeduplicateOne(doc, cmd.Value)
	} else {
		result = d.DeduplicateAll(doc)
	}
	ctx.Logger.Info("Deduplicated strings", "rewritten", result.Rewritten, "skipped", len(result.Skipped))
	return ctx.writeOutput(ctx.serialize(result.Value).Text)
}

// FmtCmd pretty-prints the document
type FmtCmd struct {
	Pointers bool `help:"Print the source map (line and offsets of every node) instead of the text."`
	Line     int  `help:"Print the path of the value starting on this 1-based line of the output."`
}

func (cmd *FmtCmd) Run(ctx *Context) error {
	doc, err := ctx.readDocument()
	if err != nil {
		return err
	}
	sm := ctx.serialize(doc)

	switch {
	case cmd.Line > 0:
		ptr, ok := sm.PointerAtLine(cmd.Line)
		if !ok {
			return errors.NewPathNotFoundError(fmt.Sprintf("no value starts on line %d", cmd.Line))
		}
		path, err := pathaddr.FromPointer(ptr, doc)
		if err != nil {
			return err
		}
		return ctx.writeOutput(path.String())
	case cmd.Pointers:
		return ctx.writeOutput(renderSourceMap(sm))
	default:
		return ctx.writeOutput(sm.Text)
	}
}

// renderSourceMap lists every node in text order.
func renderSourceMap(sm *formatter.SourceMap) string {
	pointers := make([]string, 0, len(sm.Pointers))
	for ptr := range sm.Pointers {
		pointers = append(pointers, ptr)
	}
	sort.Slice(pointers, func(i, j int) bool {
		return sm.Pointers[pointers[i]].Start < sm.Pointers[pointers[j]].Start
	})

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%5s %7s %7s  %s\n", "LINE", "START", "END", "POINTER"))
	for _, ptr := range pointers {
		span := sm.Pointers[ptr]
		display := ptr
		if display == "" {
			display = "(root)"
		}
		b.WriteString(fmt.Sprintf("%5d %7d %7d  %s\n", span.Line, span.Start, span.End, display))
	}
	return b.String()
}

// SchemaCmd prints the type description
type SchemaCmd struct {
	Positions bool `help:"Also list the output line of every property."`
}

func (cmd *SchemaCmd) Run(ctx *Context) error {
	doc, err := ctx.readDocument()
	if err != nil {
		return err
	}

	p := generator.Project(doc, ctx.Config)
	if p.Err != nil {
		ctx.Logger.Warn("Type description failed", "error", p.Err)
	}
	if !cmd.Positions {
		return ctx.writeOutput(p.Description)
	}

	var b strings.Builder
	b.WriteString(p.Description)
	b.WriteString("\n\n")
	for _, prop := range p.Properties {
		b.WriteString(fmt.Sprintf("// line %d: %s\n", prop.Line, prop.Pointer))
	}
	return ctx.writeOutput(b.String())
}

// VersionCmd prints the version
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "jsonlens version %s\n", Version)
	return err
}
