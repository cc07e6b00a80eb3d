package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/handler/http/response"
)

type TrackerHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ResetSession(w http.ResponseWriter, r *http.Request)
}

type trackerHandlerImpl struct {
	trackerService attendance.TrackerService
}

func NewTrackerHandler(trackerService attendance.TrackerService) TrackerHandler {
	return &trackerHandlerImpl{
		trackerService: trackerService,
	}
}

// decodeAction parses the optional action body. An empty body is a
// valid request with no note.
func decodeAction(r *http.Request) (attendance.ActionRequest, error) {
	var req attendance.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return attendance.ActionRequest{}, err
	}
	return req, nil
}

// Today implements TrackerHandler.
func (h *trackerHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.trackerService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockIn implements TrackerHandler.
func (h *trackerHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAction(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.trackerService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", result)
}

// StartBreak implements TrackerHandler.
func (h *trackerHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAction(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.trackerService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", result)
}

// EndBreak implements TrackerHandler.
func (h *trackerHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAction(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.trackerService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// ClockOut implements TrackerHandler.
func (h *trackerHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAction(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.trackerService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", result)
}

// ResetSession implements TrackerHandler.
func (h *trackerHandlerImpl) ResetSession(w http.ResponseWriter, r *http.Request) {
	if err := h.trackerService.ResetSession(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session cleared", nil)
}
