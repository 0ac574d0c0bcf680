package mutate

import "gtd-cli/internal/model"

// classify holds the whole move-semantics policy in one place so callers
// never encode category rules themselves.
//
// Moving to a project keeps an existing nextActions category: a next action
// assigned to a project stays a next action. Moving to a context always
// takes the task over to nextActions. A task may reference a project and a
// context at once; category records which list view owns it.
func classify(t model.Task, dest Destination, projectID, contextID *string) model.Task {
	switch dest {
	case DestinationProject:
		t.ProjectID = projectID
		if t.Category.IsNextActions() {
			t.Category = model.CategoryNextActions
		} else {
			t.Category = model.CategoryProjects
		}
	case DestinationNext:
		t.ContextID = contextID
		t.Category = model.CategoryNextActions
	}
	return t
}
