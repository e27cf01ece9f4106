package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginTop(1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render formats a dashboard render pass for the terminal, grouped by
// category. Failed hooks are listed with their errors so a broken provider
// is visible rather than silently absent.
func Render(branch, repo string, results []Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s @ %s", repo, branch)))
	b.WriteString("\n")

	if len(results) == 0 {
		b.WriteString(dimStyle.Render("no dashboard hooks registered"))
		b.WriteString("\n")
		return b.String()
	}

	for _, group := range GroupByCategory(results) {
		b.WriteString(categoryStyle.Render(strings.ToUpper(group.Category)))
		b.WriteString("\n")
		for _, r := range group.Results {
			if !r.Success {
				b.WriteString(errorStyle.Render(fmt.Sprintf("  %s: %s", r.Label(), r.Error)))
				b.WriteString("\n")
				continue
			}
			b.WriteString(titleStyle.Render("  " + r.Content.Title))
			b.WriteString("\n")
			for _, item := range r.Content.Items {
				line := item.Label
				if item.Value != "" {
					line = fmt.Sprintf("%s: %s", item.Label, valueStyle.Render(item.Value))
				}
				b.WriteString(itemStyle.Render(line))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
