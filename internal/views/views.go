// Package views holds the pure query functions consumed by presentation
// layers. Nothing here mutates state; everything filters trashed tasks.
package views

import (
	"sort"
	"strings"
	"time"

	"gtd-cli/internal/model"
	"gtd-cli/internal/store"
)

// epochFloor is a sentinel: tasks whose due date is not after it are treated
// as having no real due date and stay out of the inbox grouping.
var epochFloor = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// SameDay reports whether a and b fall on the same calendar day, comparing
// year/month/day components rather than elapsed time.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Today returns the open tasks due on now's calendar day, highest priority
// first, ties broken by due date.
func Today(st store.State, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range st.Tasks {
		if t.Open() && SameDay(t.DueDate, now) {
			out = append(out, t)
		}
	}
	sortByPriorityThenDue(out)
	return out
}

// DateGroup is one calendar day's worth of tasks with a ready-to-render
// section title.
type DateGroup struct {
	Date  time.Time
	Title string
	Tasks []model.Task
}

// GroupTasksByDate buckets tasks by the calendar date of their due date.
// Groups come back in date order; tasks within a group are sorted by
// priority, preserving the caller's order on ties.
func GroupTasksByDate(tasks []model.Task) []DateGroup {
	byDay := map[time.Time][]model.Task{}
	for _, t := range tasks {
		day := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, t.DueDate.Location())
		byDay[day] = append(byDay[day], t)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]DateGroup, 0, len(days))
	for _, day := range days {
		group := byDay[day]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Priority < group[j].Priority })
		out = append(out, DateGroup{
			Date:  day,
			Title: day.Format("02 Jan • Monday"),
			Tasks: group,
		})
	}
	return out
}

// Inbox returns the open, untriaged tasks (category inbox or unset) with a
// real due date, grouped by calendar day in due-date order.
func Inbox(st store.State) []DateGroup {
	var filtered []model.Task
	for _, t := range st.Tasks {
		if !t.Open() {
			continue
		}
		if t.Category != "" && t.Category != model.CategoryInbox {
			continue
		}
		if !t.DueDate.After(epochFloor) {
			continue
		}
		filtered = append(filtered, t)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].DueDate.Before(filtered[j].DueDate)
	})
	return GroupTasksByDate(filtered)
}

// ContextGroup pairs a context with its open next actions.
type ContextGroup struct {
	Context model.Context
	Tasks   []model.Task
}

// ProjectMatch is a project surfaced by a Next Actions text filter, with a
// live count of its open tasks.
type ProjectMatch struct {
	Project   model.Project
	OpenTasks int
}

// NextActionsResult is either context groups or, when the filter text hits
// a project name, the matching projects with task counts.
type NextActionsResult struct {
	Groups   []ContextGroup
	Projects []ProjectMatch
}

// NextActions groups open next-action tasks under their contexts. Contexts
// with no matching tasks are omitted. A non-empty filter matches context
// names (a leading "@" in either the filter or the name is ignored) or
// project names; project matches take over the result.
func NextActions(st store.State, filter string) NextActionsResult {
	needle := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(filter), "@"))

	if needle != "" {
		var projects []ProjectMatch
		for _, p := range st.Projects {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				projects = append(projects, ProjectMatch{
					Project:   p,
					OpenTasks: ProjectTaskCount(st, p.ID),
				})
			}
		}
		if len(projects) > 0 {
			return NextActionsResult{Projects: projects}
		}
	}

	var groups []ContextGroup
	for _, cx := range st.Contexts {
		name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(cx.Name), "@"))
		if needle != "" && !strings.Contains(name, needle) {
			continue
		}
		var tasks []model.Task
		for _, t := range st.Tasks {
			if !t.Open() || !t.Category.IsNextActions() {
				continue
			}
			if t.ContextID == nil || *t.ContextID != cx.ID {
				continue
			}
			tasks = append(tasks, t)
		}
		if len(tasks) == 0 {
			continue
		}
		sortByPriorityThenDue(tasks)
		groups = append(groups, ContextGroup{Context: cx, Tasks: tasks})
	}
	return NextActionsResult{Groups: groups}
}

// ProjectTaskCount counts a project's open, untrashed tasks. Used as a live
// badge next to the project name.
func ProjectTaskCount(st store.State, projectID string) int {
	n := 0
	for _, t := range st.Tasks {
		if t.ProjectID != nil && *t.ProjectID == projectID && t.Open() {
			n++
		}
	}
	return n
}

func sortByPriorityThenDue(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].DueDate.Before(tasks[j].DueDate)
	})
}
