package http

import (
	"net/http"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/handler/http/response"
)

type EmployeesHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
}

type employeesHandlerImpl struct {
	boardService attendance.BoardService
}

func NewEmployeesHandler(boardService attendance.BoardService) EmployeesHandler {
	return &employeesHandlerImpl{
		boardService: boardService,
	}
}

// Status implements EmployeesHandler.
func (h *employeesHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.boardService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
