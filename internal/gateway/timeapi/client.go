package timeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/jwt"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/validator"
)

// Client is the HTTP implementation of attendance.Gateway. It forwards
// the caller's bearer token when one is on the context and falls back
// to the configured service token for background jobs.
type Client struct {
	baseURL      string
	serviceToken string
	httpClient   *http.Client
}

func NewClient(baseURL string, serviceToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		serviceToken: serviceToken,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// ========================================
// WIRE SHAPES
// ========================================

type recordDTO struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee_id"`
	EmployeeName     string     `json:"employee_name"`
	EmployeeImageURL *string    `json:"employee_image_url"`
	Date             string     `json:"date"`
	ClockIn          *time.Time `json:"clock_in"`
	ClockOut         *time.Time `json:"clock_out"`
	BreakStart       *time.Time `json:"break_start"`
	BreakEnd         *time.Time `json:"break_end"`
	Status           string     `json:"status"`
	Note             *string    `json:"note"`
	LastModified     time.Time  `json:"last_modified"`
}

func (d recordDTO) toRecord() (attendance.Record, error) {
	date, ok := validator.IsValidDate(d.Date)
	if !ok {
		return attendance.Record{}, fmt.Errorf("invalid record date %q", d.Date)
	}
	return attendance.Record{
		ID:               d.ID,
		EmployeeID:       d.EmployeeID,
		EmployeeName:     d.EmployeeName,
		EmployeeImageURL: d.EmployeeImageURL,
		Date:             date,
		ClockIn:          d.ClockIn,
		ClockOut:         d.ClockOut,
		BreakStart:       d.BreakStart,
		BreakEnd:         d.BreakEnd,
		Status:           d.Status,
		Note:             d.Note,
		LastModified:     d.LastModified,
	}, nil
}

type actionPayload struct {
	Note string `json:"note,omitempty"`
}

type todayDTO struct {
	Record *recordDTO `json:"record"`
	States struct {
		ClockIn  string `json:"clock_in"`
		Break    string `json:"break"`
		ClockOut string `json:"clock_out"`
	} `json:"states"`
}

type statusBoardDTO struct {
	In      int         `json:"IN"`
	InBreak int         `json:"IN_BREAK"`
	Out     int         `json:"OUT"`
	Total   int         `json:"TOTAL"`
	Absent  int         `json:"ABSENT"`
	Recent  []recordDTO `json:"RECENT"`
}

// errorEnvelope covers the two error shapes the remote API is known to
// produce.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ========================================
// GATEWAY OPERATIONS
// ========================================

// ClockIn implements attendance.Gateway.
func (c *Client) ClockIn(ctx context.Context, note string) (attendance.Record, error) {
	return c.postAction(ctx, "clock_in", note)
}

// StartBreak implements attendance.Gateway.
func (c *Client) StartBreak(ctx context.Context, note string) (attendance.Record, error) {
	return c.postAction(ctx, "start_break", note)
}

// EndBreak implements attendance.Gateway.
func (c *Client) EndBreak(ctx context.Context, note string) (attendance.Record, error) {
	return c.postAction(ctx, "end_break", note)
}

// ClockOut implements attendance.Gateway.
func (c *Client) ClockOut(ctx context.Context, note string) (attendance.Record, error) {
	return c.postAction(ctx, "clock_out", note)
}

func (c *Client) postAction(ctx context.Context, action string, note string) (attendance.Record, error) {
	var dto recordDTO
	if err := c.do(ctx, http.MethodPost, action, actionPayload{Note: note}, &dto); err != nil {
		return attendance.Record{}, err
	}
	return dto.toRecord()
}

// Today implements attendance.Gateway.
func (c *Client) Today(ctx context.Context) (*attendance.Record, attendance.ActionStates, error) {
	var dto todayDTO
	if err := c.do(ctx, http.MethodGet, "today_time_sheet", nil, &dto); err != nil {
		// A missing sheet means the day has not started, not a failure.
		var remoteErr *attendance.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return nil, attendance.ActionStates{}, nil
		}
		return nil, attendance.ActionStates{}, err
	}

	states := attendance.ActionStates{
		ClockIn:  dto.States.ClockIn,
		Break:    dto.States.Break,
		ClockOut: dto.States.ClockOut,
	}

	if dto.Record == nil {
		return nil, states, nil
	}
	rec, err := dto.Record.toRecord()
	if err != nil {
		return nil, states, err
	}
	return &rec, states, nil
}

// Sheets implements attendance.Gateway.
func (c *Client) Sheets(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	path := fmt.Sprintf("user_time_sheets?start_date=%s&end_date=%s",
		url.QueryEscape(start.Format("2006-01-02")),
		url.QueryEscape(end.Format("2006-01-02")))

	var dtos []recordDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}

	records := make([]attendance.Record, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := dto.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Day implements attendance.Gateway.
func (c *Client) Day(ctx context.Context, date time.Time) (*attendance.Record, error) {
	var dto recordDTO
	err := c.do(ctx, http.MethodGet, "day_time_sheet/"+date.Format("2006-01-02"), nil, &dto)
	if err != nil {
		var remoteErr *attendance.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	rec, err := dto.toRecord()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// EmployeesStatus implements attendance.Gateway.
func (c *Client) EmployeesStatus(ctx context.Context) (attendance.StatusBoard, error) {
	var dto statusBoardDTO
	if err := c.do(ctx, http.MethodGet, "employees_status", nil, &dto); err != nil {
		return attendance.StatusBoard{}, err
	}

	recent := make([]attendance.Record, 0, len(dto.Recent))
	for _, r := range dto.Recent {
		rec, err := r.toRecord()
		if err != nil {
			return attendance.StatusBoard{}, err
		}
		recent = append(recent, rec)
	}

	return attendance.StatusBoard{
		In:        dto.In,
		InBreak:   dto.InBreak,
		Out:       dto.Out,
		Total:     dto.Total,
		Absent:    dto.Absent,
		Recent:    recent,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// do performs one authenticated round trip, decoding into out on 2xx
// and into a RemoteError otherwise.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := jwt.RawTokenFromContext(ctx)
	if token == "" {
		token = c.serviceToken
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &attendance.RemoteError{
			StatusCode: 0,
			Message:    "could not reach the attendance service",
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &attendance.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// extractErrorMessage prefers the server-provided detail over a
// generic transport message.
func extractErrorMessage(body io.Reader) string {
	var envelope errorEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return "the attendance service returned an error"
}
