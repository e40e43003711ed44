package commands

import (
	"fmt"

	"github.com/gerunddev/mdjson/internal/diff"
	"github.com/gerunddev/mdjson/internal/preview"
	"github.com/gerunddev/mdjson/internal/styles"
)

// Roundtrip encodes a document to Markdown, decodes it again and prints a
// unified diff of anything that changed
func (r *Runner) Roundtrip(args []string) error {
	var (
		from         string
		render       string
		showMarkdown bool
		enc          encodeFlags
	)

	flags := r.flagSet("roundtrip", "Check what survives a JSON -> Markdown -> JSON trip.")
	flags.StringVarP(&from, "from", "f", FormatJSON, "Input format: json|yaml")
	flags.StringVar(&render, "render", r.Config.Render, "Styled diff: auto|always|never")
	flags.BoolVarP(&showMarkdown, "markdown", "m", false, "Also print the intermediate Markdown")
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

	v, err := parseStructured(data, from)
	if err != nil {
		r.Log.InputError(source, err)
		return fmt.Errorf("%s: %w", source, err)
	}

	report, err := diff.Roundtrip(source, v, opts, r.Config.DecodeOptions())
	if err != nil {
		return err
	}

	if showMarkdown {
		fmt.Fprintln(r.Out, report.Markdown)
	}
	r.reportDiagnostics(source, report.Diagnostics)

	if report.Faithful() {
		fmt.Fprintln(r.Out, styles.SuccessStyle.Render("✓ "+source+" round-trips unchanged"))
		return nil
	}

	if report.Unified != "" {
		if preview.ShouldRender(render, r.Out) {
			fmt.Fprint(r.Out, diff.Render(report, preview.Width(r.Out, preview.DefaultWidth)))
		} else {
			fmt.Fprint(r.Out, report.Unified)
		}
	}
	fmt.Fprintln(r.Out, styles.ErrorStyle.Render("✗ "+source+" changed on the way back"))
	return ErrNotFaithful
}
