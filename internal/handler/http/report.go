package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/domain/report"
	"github.com/shiftsense/attendance-engine-go/internal/handler/http/response"
)

type ReportHandler interface {
	Hours(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// Hours implements ReportHandler.
func (h *reportHandlerImpl) Hours(w http.ResponseWriter, r *http.Request) {
	req := report.HoursRequest{
		Kind:   r.URL.Query().Get("kind"),
		Offset: getIntQueryParam(r, "offset", 0),
	}
	if req.Kind == "" {
		req.Kind = attendance.WindowWeek
	}

	result, err := h.reportService.Hours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Dashboard implements ReportHandler.
func (h *reportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements ReportHandler. Streams the monthly timesheet
// workbook as a file download.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	offset := getIntQueryParam(r, "offset", 0)

	file, err := h.reportService.ExportMonth(r.Context(), offset)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}
