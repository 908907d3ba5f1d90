package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders every run seen so far, one section per run, one line
// per (host, action) pair.
func (m Model) View() string {
	var sections []string

	for _, runID := range m.runOrder {
		rv := m.runs[runID]
		header := fmt.Sprintf("run %s", rv.name)
		if rv.completed {
			if rv.success {
				header = successStyle.Render(header + " (done)")
			} else {
				header = failureStyle.Render(header + " (failed)")
			}
		}
		sections = append(sections, titleStyle.Render(header))

		for _, hostID := range rv.hostOrder {
			hv := rv.hosts[hostID]
			sections = append(sections, sectionStyle.Render(hv.host))
			for _, actionID := range hv.order {
				av := hv.actions[actionID]
				name := av.name
				if name == "" {
					name = "action"
				}
				line := fmt.Sprintf(" %s %s (%s)", statusIcon(av.status), name, statusLabel(av.status))
				sections = append(sections, line)
			}
			if hv.failed && len(hv.order) == 0 {
				sections = append(sections, failureStyle.Render(" node failed to start"))
			}
		}
	}

	if m.finished {
		sections = append(sections, "")
		if m.allPassed {
			sections = append(sections, successStyle.Render("all runs completed"))
		} else {
			sections = append(sections, failureStyle.Render("run failed"))
		}
	}

	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, sections...), "\n")
}
