package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gerunddev/mdjson/internal/config"
	"github.com/gerunddev/mdjson/internal/preview"
	"github.com/gerunddev/mdjson/internal/styles"
)

// ShowConfig prints the config file location and the effective values
// With --init it writes the current values to the config file first
func (r *Runner) ShowConfig(args []string) error {
	var initFile bool

	flags := r.flagSet("config", "Show the effective configuration.")
	flags.BoolVar(&initFile, "init", false, "Write the effective configuration to the config file")

	if err := flags.Parse(args); err != nil {
		return err
	}

	path := config.ConfigPath()
	if initFile {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
		if err := r.Config.Save(); err != nil {
			return err
		}
		fmt.Fprintln(r.Out, styles.SuccessStyle.Render("✓ wrote "+path))
	}

	status := "(defaults, file not found)"
	if _, err := os.Stat(path); err == nil {
		status = ""
	}
	fmt.Fprintf(r.Out, "%s %s %s\n\n",
		styles.KeyStyle.Render("Config file:"),
		styles.PathStyle.Render(path),
		styles.DimStyle.Render(status))

	c := r.Config
	logFile := c.LogFile
	if logFile == "" {
		logFile = "stderr"
	}

	rows := []struct {
		key   string
		value string
		help  string
	}{
		{"heading_level", strconv.Itoa(c.HeadingLevel), "base heading level, carried for compatibility"},
		{"indent_size", strconv.Itoa(c.IndentSize), "spaces per nesting level when encoding"},
		{"use_numbered_lists", strconv.FormatBool(c.UseNumberedLists), "encode arrays as numbered lists"},
		{"arrays_as_tables", strconv.FormatBool(c.ArraysAsTables), "encode arrays of objects as tables"},
		{"max_depth", strconv.Itoa(c.MaxDepth), "nesting depth before the truncation marker"},
		{"parse_numbered_lists", strconv.FormatBool(c.ParseNumberedLists), "decode numbered lists as arrays"},
		{"parse_tables", strconv.FormatBool(c.ParseTables), "decode tables as arrays of objects"},
		{"camel_case_keys", strconv.FormatBool(c.CamelCaseKeys), "camelCase keys when decoding"},
		{"log_file", logFile, ""},
		{"log_level", c.LogLevel, ""},
		{"render", c.Render, "glamour styling: auto, always or never"},
	}

	width := preview.Width(r.Out, preview.DefaultWidth)
	for _, row := range rows {
		line := fmt.Sprintf("  %-22s %s", row.key, styles.ValueStyle.Render(row.value))
		if row.help == "" {
			fmt.Fprintln(r.Out, line)
			continue
		}
		fmt.Fprintln(r.Out, preview.Wrap(line+"  ", styles.DimStyle.Render(row.help), width))
	}
	return nil
}
