package format

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"gtd-cli/internal/model"
	"gtd-cli/internal/views"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// RenderTasks writes one line per task: checkbox, title, priority, and a
// humanized due date.
func RenderTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No tasks found."))
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, taskLine(t))
	}
}

// RenderDateGroups writes day-sectioned task lists (inbox layout).
func RenderDateGroups(w io.Writer, groups []views.DateGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No tasks found."))
		return
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, sectionStyle.Render(g.Title))
		for _, t := range g.Tasks {
			fmt.Fprintln(w, taskLine(t))
		}
	}
}

// RenderNextActions writes context-grouped next actions, or matching
// projects with open-task badges when the filter hit a project name.
func RenderNextActions(w io.Writer, res views.NextActionsResult) {
	if len(res.Projects) > 0 {
		for _, pm := range res.Projects {
			badge := badgeStyle.Render(fmt.Sprintf("(%d open)", pm.OpenTasks))
			fmt.Fprintf(w, "%s %s\n", titleStyle.Render(pm.Project.Name), badge)
		}
		return
	}
	if len(res.Groups) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No next actions."))
		return
	}
	for i, g := range res.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, sectionStyle.Render("@"+g.Context.Name))
		for _, t := range g.Tasks {
			fmt.Fprintln(w, taskLine(t))
		}
	}
}

// RenderProjects writes projects with their live open-task counts.
func RenderProjects(w io.Writer, projects []model.Project, count func(projectID string) int) {
	if len(projects) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No projects."))
		return
	}
	for _, p := range projects {
		badge := badgeStyle.Render(fmt.Sprintf("(%d open)", count(p.ID)))
		fmt.Fprintf(w, "%s %s %s\n", titleStyle.Render(p.Name), badge, dimStyle.Render(p.ID))
	}
}

// RenderContexts writes the context list.
func RenderContexts(w io.Writer, contexts []model.Context) {
	if len(contexts) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No contexts."))
		return
	}
	for _, c := range contexts {
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render("@"+c.Name), dimStyle.Render(c.ID))
	}
}

func taskLine(t model.Task) string {
	box := "[ ]"
	title := titleStyle.Render(t.Title)
	if t.Completed {
		box = "[x]"
		title = doneStyle.Render(t.Title)
	}
	line := fmt.Sprintf("%s %s %s", box, title, dimStyle.Render(fmt.Sprintf("p%d", t.Priority)))
	if !t.DueDate.IsZero() {
		line += " " + dimStyle.Render("due "+humanize.Time(t.DueDate))
	}
	return line
}

// Greeting is the empty-today encouragement line.
func Greeting(now time.Time) string {
	head := titleStyle.Render(fmt.Sprintf("Enjoy your %s!", now.Weekday()))
	return head + "\n" + dimStyle.Render("Take a deep breath. You've cleared your priorities.")
}
