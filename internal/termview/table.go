// Package termview renders a ranked applicant list for the terminal.
package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fmuoria/applicant-pipeline/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tierStyles  = map[models.Tier]lipgloss.Style{
		models.TierHigh: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		models.TierMid:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		models.TierLow:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type column struct {
	title string
	width int
}

var columns = []column{
	{"#", 3},
	{"Applicant", 24},
	{"Match", 6},
	{"Status", 10},
	{"Exp", 5},
	{"Applied", 12},
}

// Render draws the job heading, the ranked rows and a status count footer
func Render(job models.Job, applicants []models.ScoredApplicant) string {
	var sb strings.Builder

	title := job.Title
	if job.Company != "" {
		title = fmt.Sprintf("%s · %s", job.Title, job.Company)
	}
	sb.WriteString(headerStyle.Render(title))
	sb.WriteString("\n")
	if len(job.Keywords) > 0 {
		sb.WriteString(mutedStyle.Render("Skills: " + strings.Join(job.Keywords, ", ")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = cell(c, c.title, headerStyle)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	sb.WriteString("\n")

	if len(applicants) == 0 {
		sb.WriteString(mutedStyle.Render("No applicants"))
		sb.WriteString("\n")
	}

	for i, a := range applicants {
		plain := lipgloss.NewStyle()
		values := []string{
			cell(columns[0], fmt.Sprintf("%d", i+1), plain),
			cell(columns[1], truncate(a.Name, columns[1].width-1), plain),
			cell(columns[2], fmt.Sprintf("%d%%", a.MatchScore), tierStyles[models.TierFor(a.MatchScore)]),
			cell(columns[3], a.Status.Label(), plain),
			cell(columns[4], fmt.Sprintf("%g", a.Experience), plain),
			cell(columns[5], dateOnly(a.AppliedDate), mutedStyle),
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, values...))
		sb.WriteString("\n")
	}

	counts := models.CountScoredByStatus(applicants)
	parts := make([]string, 0, len(models.Statuses()))
	for _, s := range models.Statuses() {
		parts = append(parts, fmt.Sprintf("%s %d", s.Label(), counts.Get(s)))
	}
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(strings.Join(parts, "  ")))

	return boxStyle.Render(sb.String())
}

func cell(c column, value string, style lipgloss.Style) string {
	return style.Width(c.width).MaxWidth(c.width).Render(value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func dateOnly(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
