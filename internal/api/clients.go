package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/metalagman/freelo/internal/model"
	"github.com/metalagman/freelo/internal/records"
)

type clientOutput struct {
	Body model.Client `json:"body"`
}

func registerClients(api huma.API, store *records.Store) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-client",
		Method:        http.MethodPost,
		Path:          "/clients",
		Summary:       "Create client",
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Body CreateClientRequest `json:"body"`
	}) (*clientOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		c, err := store.InsertClient(ctx, model.Client{
			OwnerID: ownerID,
			Name:    input.Body.Name,
			Email:   input.Body.Email,
			Company: input.Body.Company,
			Phone:   input.Body.Phone,
			Status:  input.Body.Status,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &clientOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-clients",
		Method:      http.MethodGet,
		Path:        "/clients",
		Summary:     "List clients",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []model.Client `json:"body"`
	}, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		items, err := store.ListClients(ctx, ownerID)
		if err != nil {
			return nil, handleError(err)
		}
		if items == nil {
			items = []model.Client{}
		}
		return &struct {
			Body []model.Client `json:"body"`
		}{Body: items}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-client",
		Method:      http.MethodGet,
		Path:        "/clients/{client_id}",
		Summary:     "Get client",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ClientID string `path:"client_id"`
	}) (*clientOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		c, err := store.GetClient(ctx, ownerID, input.ClientID)
		if err != nil {
			return nil, handleError(err)
		}
		return &clientOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-client",
		Method:      http.MethodPatch,
		Path:        "/clients/{client_id}",
		Summary:     "Update client",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ClientID string              `path:"client_id"`
		Body     UpdateClientRequest `json:"body"`
	}) (*clientOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		c, err := store.UpdateClient(ctx, ownerID, input.ClientID, records.ClientUpdate{
			Name:    input.Body.Name,
			Email:   input.Body.Email,
			Company: input.Body.Company,
			Phone:   input.Body.Phone,
			Status:  input.Body.Status,
		})
		if err != nil {
			return nil, handleError(err)
		}
		return &clientOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-client",
		Method:        http.MethodDelete,
		Path:          "/clients/{client_id}",
		Summary:       "Delete client",
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ClientID string `path:"client_id"`
	}) (*struct{}, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		if err := store.DeleteClient(ctx, ownerID, input.ClientID); err != nil {
			return nil, handleError(err)
		}
		return &struct{}{}, nil
	})
}
