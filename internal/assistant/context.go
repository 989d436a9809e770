package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/metalagman/freelo/internal/model"
)

// Snapshot is the grounding context of one invocation: the caller's projects
// as of invocation start.
type Snapshot struct {
	Projects []model.ProjectRef
}

// HasProject reports whether id names one of the snapshot's projects.
func (s Snapshot) HasProject(id string) bool {
	return slices.ContainsFunc(s.Projects, func(p model.ProjectRef) bool { return p.ID == id })
}

// ProjectName returns the display name of the project with id.
func (s Snapshot) ProjectName(id string) string {
	for _, p := range s.Projects {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func (s Snapshot) projectsJSON() string {
	projects := s.Projects
	if projects == nil {
		projects = []model.ProjectRef{}
	}
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

// ProjectSource lists the caller's projects.
type ProjectSource interface {
	ListProjectRefs(ctx context.Context, ownerID string) ([]model.ProjectRef, error)
}

func gatherContext(ctx context.Context, src ProjectSource, ownerID string) (Snapshot, error) {
	if ownerID == "" {
		return Snapshot{}, fmt.Errorf("%w: owner id is required", ErrContextUnavailable)
	}
	refs, err := src.ListProjectRefs(ctx, ownerID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrContextUnavailable, err)
	}
	return Snapshot{Projects: slices.Clone(refs)}, nil
}
