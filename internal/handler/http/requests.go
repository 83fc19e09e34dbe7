package http

import (
	"context"
	"net/http"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/avopro-hr/hr-backend-go/internal/handler/http/response"
)

// RequestFeed lists leave and overtime requests of every account together.
type RequestFeed interface {
	ListAllRequests(ctx context.Context, caller user.AuthenticatedCaller) ([]interface{}, error)
}

type RequestHandler interface {
	ListAll(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	feed RequestFeed
}

func NewRequestHandler(feed RequestFeed) RequestHandler {
	return &requestHandlerImpl{feed: feed}
}

// ListAll handles GET /requests
func (h *requestHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	items, err := h.feed.ListAllRequests(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, items, &response.Meta{TotalItems: int64(len(items))})
}
