package common

import "net/http"

// SuccessResponse and ErrorResponse are the two envelopes every handler
// writes. Status repeats the HTTP code so consumers reading only the body
// can still branch on the outcome.
type SuccessResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Status:  http.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string, data interface{}, status int) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Success: false,
		Message: message,
		Data:    data,
	}
}

// PaginationResult wraps the listing endpoints (payouts, ledger statements).
// NextPage and PrevPage are 0 at the respective edge.
type PaginationResult struct {
	Message     string      `json:"message"`
	Data        interface{} `json:"data"`
	Count       int64       `json:"count"`
	CurrentPage int         `json:"currentPage"`
	NextPage    int         `json:"nextPage"`
	PrevPage    int         `json:"prevPage"`
	LastPage    int         `json:"lastPage"`
}

func PaginateResponse(data interface{}, total int64, page int, limit int, message string) PaginationResult {
	if message == "" {
		message = "success"
	}

	lastPage := 0
	if limit > 0 {
		lastPage = int((total + int64(limit) - 1) / int64(limit))
	}

	nextPage := 0
	if page < lastPage {
		nextPage = page + 1
	}
	prevPage := 0
	if page > 1 {
		prevPage = page - 1
	}

	return PaginationResult{
		Message:     message,
		Data:        data,
		Count:       total,
		CurrentPage: page,
		NextPage:    nextPage,
		PrevPage:    prevPage,
		LastPage:    lastPage,
	}
}
