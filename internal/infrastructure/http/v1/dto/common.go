// Package dto provides Data Transfer Objects for API requests/responses.
//
// Every response carries the uniform envelope: {success: true, ...payload}
// on the happy path, {success: false, error: ...} from the error middleware.
package dto

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DataResponse wraps a single payload.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ListResponse wraps list results with paging metadata.
type ListResponse struct {
	Success    bool  `json:"success"`
	Data       any   `json:"data"`
	TotalCount int64 `json:"totalCount,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	Offset     int   `json:"offset,omitempty"`
}

// IDResponse for create operations.
type IDResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// ErrorResponse is produced only by the error middleware.
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
