package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/handler/http/response"
)

type HistoryHandler interface {
	LoadPage(w http.ResponseWriter, r *http.Request)
}

type historyHandlerImpl struct {
	historyService attendance.HistoryService
}

func NewHistoryHandler(historyService attendance.HistoryService) HistoryHandler {
	return &historyHandlerImpl{
		historyService: historyService,
	}
}

// LoadPage implements HistoryHandler.
func (h *historyHandlerImpl) LoadPage(w http.ResponseWriter, r *http.Request) {
	var req attendance.PageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.historyService.LoadPage(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
