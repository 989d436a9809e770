package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/metalagman/freelo/internal/model"
	"github.com/metalagman/freelo/internal/records"
)

type timeEntryOutput struct {
	Body model.TimeEntry `json:"body"`
}

func registerTimeEntries(api huma.API, store *records.Store) {
	huma.Register(api, huma.Operation{
		OperationID:   "start-timer",
		Method:        http.MethodPost,
		Path:          "/time-entries",
		Summary:       "Start a timer",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
	}, func(ctx context.Context, input *struct {
		Body StartTimerRequest `json:"body"`
	}) (*timeEntryOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		billable := true
		if input.Body.Billable != nil {
			billable = *input.Body.Billable
		}
		e, err := store.StartTimer(ctx, model.TimeEntry{
			OwnerID:     ownerID,
			ProjectID:   input.Body.ProjectID,
			TaskID:      input.Body.TaskID,
			Description: input.Body.Description,
			Billable:    billable,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &timeEntryOutput{Body: e}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "stop-timer",
		Method:      http.MethodPost,
		Path:        "/time-entries/{entry_id}/stop",
		Summary:     "Stop a timer",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		EntryID string `path:"entry_id"`
	}) (*timeEntryOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		e, err := store.StopTimer(ctx, ownerID, input.EntryID)
		if err != nil {
			return nil, handleError(err)
		}
		return &timeEntryOutput{Body: e}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-time-entries",
		Method:      http.MethodGet,
		Path:        "/time-entries",
		Summary:     "List time entries",
	}, func(ctx context.Context, input *struct {
		ProjectID string `query:"project_id"`
	}) (*struct {
		Body []model.TimeEntry `json:"body"`
	}, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		items, err := store.ListTimeEntries(ctx, ownerID, input.ProjectID)
		if err != nil {
			return nil, handleError(err)
		}
		if items == nil {
			items = []model.TimeEntry{}
		}
		return &struct {
			Body []model.TimeEntry `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-time-entry",
		Method:        http.MethodDelete,
		Path:          "/time-entries/{entry_id}",
		Summary:       "Delete time entry",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		EntryID string `path:"entry_id"`
	}) (*struct{}, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		if err := store.DeleteTimeEntry(ctx, ownerID, input.EntryID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}
