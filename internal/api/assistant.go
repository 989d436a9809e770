package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/metalagman/freelo/internal/assistant"
)

type assistantOutput struct {
	Status int
	Body   assistant.Reply
}

func registerAssistant(api huma.API, a Assistant) {
	huma.Register(api, huma.Operation{
		OperationID: "assistant-message",
		Method:      http.MethodPost,
		Path:        "/assistant/messages",
		Summary:     "Send a message to the assistant",
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusServiceUnavailable},
	}, func(ctx context.Context, input *struct {
		Body AssistantMessageRequest `json:"body"`
	}) (*assistantOutput, error) {
		ownerID, authErr := ownerFromContext(ctx)
		if authErr != nil {
			return nil, authErr
		}
		reply := a.HandleUtterance(ctx, ownerID, input.Body.Message)
		return &assistantOutput{Status: replyStatus(reply), Body: reply}, nil
	})
}

func replyStatus(reply assistant.Reply) int {
	if reply.OK {
		return http.StatusOK
	}
	switch {
	case errors.Is(reply.Err, assistant.ErrContextUnavailable),
		errors.Is(reply.Err, assistant.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(reply.Err, assistant.ErrCanceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
