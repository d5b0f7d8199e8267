package report

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/Coverage/internal/analysis"
)

// Section is one titled list of report sentences. Empty is shown instead of
// the list when there are no lines.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
	Empty string   `json:"empty,omitempty"`
}

const (
	TitleDominated   = "Which models are dominated?"
	TitlePreferences = "When do models have greater accuracy?"
	TitleRecall      = "Which models have the same average recall?"
)

// Dominated lists every dominance pair as "<dominated> is dominated by <dominator>".
func Dominated(pairs []analysis.DominancePair) Section {
	s := Section{Title: TitleDominated, Lines: []string{}, Empty: "No models are dominated."}
	for _, p := range pairs {
		s.Lines = append(s.Lines, fmt.Sprintf("%s is dominated by %s", p.Dominated.Model, p.Dominator.Model))
	}
	return s
}

// Preferences lists when the higher-x model of each segment becomes preferable.
func Preferences(segments []analysis.PreferenceSegment) Section {
	s := Section{Title: TitlePreferences, Lines: []string{}}
	for _, seg := range segments {
		s.Lines = append(s.Lines, fmt.Sprintf("%s is preferred to %s when the class ratio ≥ %s",
			Capitalize(seg.High.Model), seg.Low.Model, FormatNumber(seg.Slope)))
	}
	return s
}

// Recall lists the groups of models tied on average recall.
func Recall(groups []analysis.RecallGroup) Section {
	s := Section{Title: TitleRecall, Lines: []string{}, Empty: "No models have the same average recall."}
	for _, g := range groups {
		s.Lines = append(s.Lines, fmt.Sprintf("%s have average recall %s", JoinNames(g.Models), FormatNumber(g.AverageRecall)))
	}
	return s
}

// Build renders the three report sections for res.
func Build(res *analysis.Result) []Section {
	return []Section{
		Dominated(res.Dominated),
		Preferences(res.Preferences),
		Recall(res.RecallGroups),
	}
}

// Text renders sections as plain text with one bullet per line.
func Text(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title)
		b.WriteString("\n")
		if len(s.Lines) == 0 {
			if s.Empty != "" {
				b.WriteString(s.Empty)
				b.WriteString("\n")
			}
			continue
		}
		for _, line := range s.Lines {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
