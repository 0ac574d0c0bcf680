package store

import (
	"strings"

	"gtd-cli/internal/model"
)

// State is the root of everything the app persists: the full task, project,
// and context collections. It is the unit of persistence: every mutation
// produces a new State value that is serialized wholesale.
type State struct {
	Tasks    []model.Task    `json:"tasks"`
	Projects []model.Project `json:"projects"`
	Contexts []model.Context `json:"contexts"`
}

// EmptyState returns the default state used when no blob exists yet (or the
// stored one fails to parse).
func EmptyState() State {
	return State{
		Tasks:    []model.Task{},
		Projects: []model.Project{},
		Contexts: []model.Context{},
	}
}

// Normalize replaces nil collections with empty ones so callers and the
// persisted JSON stay stable across round-trips.
func (st State) Normalize() State {
	if st.Tasks == nil {
		st.Tasks = []model.Task{}
	}
	if st.Projects == nil {
		st.Projects = []model.Project{}
	}
	if st.Contexts == nil {
		st.Contexts = []model.Context{}
	}
	return st
}

func (st State) FindTask(id string) (*model.Task, bool) {
	for i := range st.Tasks {
		if st.Tasks[i].ID == id {
			return &st.Tasks[i], true
		}
	}
	return nil, false
}

func (st State) FindProject(id string) (*model.Project, bool) {
	for i := range st.Projects {
		if st.Projects[i].ID == id {
			return &st.Projects[i], true
		}
	}
	return nil, false
}

func (st State) FindContext(id string) (*model.Context, bool) {
	for i := range st.Contexts {
		if st.Contexts[i].ID == id {
			return &st.Contexts[i], true
		}
	}
	return nil, false
}

// ContextByName matches on the trimmed display name. Context names are
// unique by construction (AddContext suppresses duplicates).
func (st State) ContextByName(name string) (*model.Context, bool) {
	name = strings.TrimSpace(name)
	for i := range st.Contexts {
		if strings.TrimSpace(st.Contexts[i].Name) == name {
			return &st.Contexts[i], true
		}
	}
	return nil, false
}
