package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/gerunddev/mdjson/convert"
	"github.com/gerunddev/mdjson/internal/config"
	"github.com/gerunddev/mdjson/internal/logger"
	"github.com/gerunddev/mdjson/internal/preview"
	"github.com/gerunddev/mdjson/internal/styles"
)

// Input and output formats for the structured side
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// decodeMarkdown is the decoder ToJSON runs. Can be overridden for testing
var decodeMarkdown = convert.MarkdownToJSON

var (
	// ErrFatal is returned when the decoder hit an unrecoverable fault
	ErrFatal = errors.New("markdown could not be decoded")
	// ErrNotFaithful is returned by Roundtrip when the value changed
	ErrNotFaithful = errors.New("round trip changed the document")
)

// Runner carries what every subcommand needs
type Runner struct {
	Config *config.Config
	Log    *logger.Logger
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
}

// NewRunner returns a Runner on the process's standard streams
func NewRunner(cfg *config.Config, log *logger.Logger) *Runner {
	return &Runner{
		Config: cfg,
		Log:    log,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

func (r *Runner) flagSet(name, usage string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(r.Err)
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintf(r.Err, "Usage: mdjson %s [flags] [file]\n\n%s\n\nFlags:\n", name, usage)
		flags.PrintDefaults()
	}
	return flags
}

// readInput reads the single positional file, or stdin when there is none
// or it is "-". It returns the bytes and a label for logs and diagnostics
func (r *Runner) readInput(args []string) ([]byte, string, error) {
	if len(args) > 1 {
		return nil, "", fmt.Errorf("expected at most one input file, got %d", len(args))
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(r.In)
		if err != nil {
			return nil, "stdin", fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, "stdin", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, args[0], fmt.Errorf("failed to read input: %w", err)
	}
	return data, args[0], nil
}

// parseStructured decodes JSON or YAML input into the ordered value model
func parseStructured(data []byte, format string) (any, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return convert.ParseJSON(data)
	case FormatYAML, "yml":
		return convert.ParseYAML(data)
	}
	return nil, fmt.Errorf("unsupported format %q: must be json or yaml", format)
}

func formatStructured(v any, format string, compact bool) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		indent := "  "
		if compact {
			indent = ""
		}
		out, err := convert.FormatJSON(v, indent)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case FormatYAML, "yml":
		return convert.FormatYAML(v)
	}
	return nil, fmt.Errorf("unsupported format %q: must be json or yaml", format)
}

// encodeFlags binds the encoder overrides shared by to-md and roundtrip
// Flag defaults come from the config
type encodeFlags struct {
	opts convert.EncodeOptions
}

func (e *encodeFlags) register(flags *pflag.FlagSet, cfg *config.Config) {
	e.opts = cfg.EncodeOptions()
	flags.IntVar(&e.opts.IndentSize, "indent", e.opts.IndentSize, "Spaces per nesting level")
	flags.BoolVar(&e.opts.UseNumberedLists, "numbered", e.opts.UseNumberedLists, "Render arrays as numbered lists")
	flags.BoolVar(&e.opts.ArraysAsTables, "tables", e.opts.ArraysAsTables, "Render arrays of objects as tables")
	flags.IntVar(&e.opts.MaxDepth, "max-depth", e.opts.MaxDepth, "Nesting depth before truncation")
	flags.IntVar(&e.opts.HeadingLevel, "heading-level", e.opts.HeadingLevel, "Base heading level (1-6)")
}

func (e *encodeFlags) options() (convert.EncodeOptions, error) {
	if e.opts.IndentSize < 1 {
		return convert.EncodeOptions{}, fmt.Errorf("--indent must be positive, got %d", e.opts.IndentSize)
	}
	if e.opts.MaxDepth < 1 {
		return convert.EncodeOptions{}, fmt.Errorf("--max-depth must be positive, got %d", e.opts.MaxDepth)
	}
	if e.opts.HeadingLevel < 1 || e.opts.HeadingLevel > 6 {
		return convert.EncodeOptions{}, fmt.Errorf("--heading-level must be between 1 and 6, got %d", e.opts.HeadingLevel)
	}
	return e.opts, nil
}

// ToMarkdown converts a JSON or YAML document to Markdown
func (r *Runner) ToMarkdown(args []string) error {
	var (
		from   string
		render string
		enc    encodeFlags
	)

	flags := r.flagSet("to-md", "Convert a JSON (or YAML) document to Markdown.")
	flags.StringVarP(&from, "from", "f", FormatJSON, "Input format: json|yaml")
	flags.StringVar(&render, "render", r.Config.Render, "Styled output: auto|always|never")
	enc.register(flags, r.Config)

	if err := flags.Parse(args); err != nil {
		return err
	}

	opts, err := enc.options()
	if err != nil {
		return err
	}

	data, source, err := r.readInput(flags.Args())
	if err != nil {
		r.Log.InputError(source, err)
		return err
	}

	start := time.Now()
	r.Log.ConversionStarted("to-md", source)

	v, err := parseStructured(data, from)
	if err != nil {
		r.Log.InputError(source, err)
		return fmt.Errorf("%s: %w", source, err)
	}

	md := convert.JSONToMarkdown(v, &opts)
	if preview.ShouldRender(render, r.Out) {
		fmt.Fprint(r.Out, preview.Render(md, preview.Width(r.Out, preview.DefaultWidth)))
	} else {
		fmt.Fprintln(r.Out, md)
	}

	r.Log.ConversionCompleted("to-md", len(md), 0, time.Since(start))
	return nil
}

// ToJSON converts Markdown back to JSON (or YAML). Diagnostics go to the
// error stream; a fatal diagnostic makes the command fail
func (r *Runner) ToJSON(args []string) error {
	var (
		to         string
		compact    bool
		noNumbered bool
		noTables   bool
		camelCase  bool
	)

	dec := r.Config.DecodeOptions()

	flags := r.flagSet("to-json", "Convert Markdown to a JSON (or YAML) document.")
	flags.StringVarP(&to, "to", "t", FormatJSON, "Output format: json|yaml")
	flags.BoolVarP(&compact, "compact", "c", false, "Compact JSON output")
	flags.BoolVar(&noNumbered, "no-numbered", dec.DisableNumberedLists, "Do not parse numbered lists")
	flags.BoolVar(&noTables, "no-tables", dec.DisableTables, "Do not parse tables")
	flags.BoolVar(&camelCase, "camel-case", dec.CamelCaseKeys, "Convert keys to camelCase")

	if err := flags.Parse(args); err != nil {
		return err
	}

	data, source, err := r.readInput(flags.Args())
	if err != nil {
		r.Log.InputError(source, err)
		return err
	}

	start := time.Now()
	r.Log.ConversionStarted("to-json", source)

	res := decodeMarkdown(string(data), &convert.DecodeOptions{
		DisableNumberedLists: noNumbered,
		DisableTables:        noTables,
		CamelCaseKeys:        camelCase,
	})

	fatal := r.reportDiagnostics(source, res.Diagnostics)
	if fatal {
		return ErrFatal
	}

	out, err := formatStructured(res.Value, to, compact)
	if err != nil {
		return err
	}
	if _, err := r.Out.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	r.Log.ConversionCompleted("to-json", len(out), len(res.Diagnostics), time.Since(start))
	return nil
}

// reportDiagnostics prints each diagnostic wrapped to the terminal width and
// reports whether one of them was fatal
func (r *Runner) reportDiagnostics(source string, diagnostics []string) bool {
	width := preview.Width(r.Err, preview.DefaultWidth)
	fatal := false

	for _, d := range diagnostics {
		r.Log.Diagnostic(source, d)

		style := styles.WarningStyle
		label := "warning: "
		if strings.HasPrefix(d, convert.FatalPrefix) {
			fatal = true
			style = styles.ErrorStyle
			label = "error: "
		}
		prefix := style.Render(label) + styles.PathStyle.Render(source) + ": "
		fmt.Fprintln(r.Err, preview.Wrap(prefix, d, width))
	}
	return fatal
}
