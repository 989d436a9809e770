package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/metalagman/freelo/internal/model"
	"github.com/metalagman/freelo/internal/records"
)

type projectOutput struct {
	Body model.Project `json:"body"`
}

func registerProjects(api huma.API, store *records.Store) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-project",
		Method:        http.MethodPost,
		Path:          "/projects",
		Summary:       "Create project",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		Body CreateProjectRequest `json:"body"`
	}) (*projectOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		p := model.Project{
			OwnerID:     ownerID,
			ClientID:    input.Body.ClientID,
			Name:        input.Body.Name,
			Description: input.Body.Description,
			Status:      input.Body.Status,
		}
		if input.Body.HourlyRate != nil {
			p.HourlyRate = *input.Body.HourlyRate
		}
		created, err := store.InsertProject(ctx, p)
		if err != nil {
			return nil, handleError(err)
		}
		return &projectOutput{Body: created}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects",
	}, func(ctx context.Context, input *struct {
		Status string `query:"status" doc:"Filter by status"`
	}) (*struct {
		Body []model.Project `json:"body"`
	}, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		var status *string
		if input.Status != "" {
			status = &input.Status
		}
		items, err := store.ListProjects(ctx, ownerID, status)
		if err != nil {
			return nil, handleError(err)
		}
		if items == nil {
			items = []model.Project{}
		}
		return &struct {
			Body []model.Project `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{project_id}",
		Summary:     "Get project",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ProjectID string `path:"project_id"`
	}) (*projectOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		p, err := store.GetProject(ctx, ownerID, input.ProjectID)
		if err != nil {
			return nil, handleError(err)
		}
		return &projectOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPatch,
		Path:        "/projects/{project_id}",
		Summary:     "Update project",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ProjectID string               `path:"project_id"`
		Body      UpdateProjectRequest `json:"body"`
	}) (*projectOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		p, err := store.UpdateProject(ctx, ownerID, input.ProjectID, records.ProjectUpdate{
			ClientID:    input.Body.ClientID,
			Name:        input.Body.Name,
			Description: input.Body.Description,
			Status:      input.Body.Status,
			HourlyRate:  input.Body.HourlyRate,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &projectOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-project",
		Method:        http.MethodDelete,
		Path:          "/projects/{project_id}",
		Summary:       "Delete project",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ProjectID string `path:"project_id"`
	}) (*struct{}, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		if err := store.DeleteProject(ctx, ownerID, input.ProjectID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}
