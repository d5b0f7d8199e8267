// rocreport prints the dominance, frontier preference and average recall
// report for a set of classifiers plotted in ROC space.
//
// Usage:
//
//	rocreport -example
//	rocreport -in models.yaml
//	cat models.json | rocreport -in - -json
//
// Input is YAML or JSON, either a list of points or a document with a
// "points" key. Each point has "model", "x" (false positive rate) and
// "y" (true positive rate).
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
	"github.com/MikeSquared-Agency/Coverage/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rocreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inFlag := fs.String("in", "", "points file (YAML or JSON), - for stdin")
	exampleFlag := fs.Bool("example", false, "use the built-in five model example")
	jsonFlag := fs.Bool("json", false, "print the analysis as JSON")
	plainFlag := fs.Bool("plain", false, "disable styling")
	decimalsFlag := fs.Int("decimals", analysis.DefaultDecimals, "decimal places for slopes and recall")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *decimalsFlag < 0 || *decimalsFlag > analysis.MaxDecimals {
		fmt.Fprintf(stderr, "rocreport: -decimals must be within [0, %d], got %d\n", analysis.MaxDecimals, *decimalsFlag)
		return 2
	}

	var points []analysis.Point
	switch {
	case *exampleFlag:
		points = analysis.ExamplePoints()
	case *inFlag == "-":
		p, err := decodePoints(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "rocreport: read stdin: %v\n", err)
			return 1
		}
		points = p
	case *inFlag != "":
		p, err := loadPoints(*inFlag)
		if err != nil {
			fmt.Fprintf(stderr, "rocreport: %v\n", err)
			return 1
		}
		points = p
	default:
		fmt.Fprintln(stderr, "rocreport: one of -in or -example is required")
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	res, err := analysis.NewAnalyzer(*decimalsFlag, 0, logger).Analyze(points)
	if err != nil {
		fmt.Fprintf(stderr, "rocreport: %v\n", err)
		return 1
	}

	if *jsonFlag {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(stderr, "rocreport: encode: %v\n", err)
			return 1
		}
		return 0
	}

	sections := report.Build(res)
	if *plainFlag || !isTTYWriter(stdout) {
		fmt.Fprint(stdout, report.Text(sections))
		return 0
	}
	fmt.Fprint(stdout, render(sections, lipgloss.NewRenderer(stdout), termWidth(stdout)))
	return 0
}

type pointsFile struct {
	Points []analysis.Point `yaml:"points" json:"points"`
}

func loadPoints(path string) ([]analysis.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open points file: %w", err)
	}
	defer f.Close()
	points, err := decodePoints(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return points, nil
}

// decodePoints accepts YAML or JSON, as a bare list or under a points key.
func decodePoints(r io.Reader) ([]analysis.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("no points")
	}

	var doc pointsFile
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Points) > 0 {
		return doc.Points, nil
	}
	var list []analysis.Point
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New("no points")
	}
	return list, nil
}

// render styles the report sections for a terminal of the given width.
func render(sections []report.Section, r *lipgloss.Renderer, width int) string {
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	ruleStyle := r.NewStyle().Foreground(lipgloss.Color("8"))
	lineStyle := r.NewStyle().PaddingLeft(2).Width(width)
	mutedStyle := r.NewStyle().PaddingLeft(2).Italic(true).Foreground(lipgloss.Color("8"))

	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(titleStyle.Render(s.Title))
		sb.WriteString("\n")
		sb.WriteString(ruleStyle.Render(strings.Repeat("─", runewidth.StringWidth(s.Title))))
		sb.WriteString("\n")
		if len(s.Lines) == 0 {
			sb.WriteString(mutedStyle.Render(s.Empty))
			sb.WriteString("\n")
			continue
		}
		for _, line := range s.Lines {
			sb.WriteString(lineStyle.Render("• " + line))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
