package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/environment"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// JSONResponse is the standard JSON envelope.
type JSONResponse struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
	cause  error
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	body := j.body
	// Unclassified errors keep their text out of production responses.
	if j.cause != nil && body.Error != nil && !environment.IsProduction(r.Context()) {
		detail := *body.Error
		detail.Message = j.cause.Error()
		body.Error = &detail
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(body)
}

// JSON creates a 200 response carrying data.
func JSON(code string, data any) Response {
	return jsonResponse{
		status: http.StatusOK,
		body:   JSONResponse{Code: code, Data: data},
	}
}

// JSONError maps err to an error envelope. HTTPError values anywhere in the
// chain set the status and key; everything else becomes a 500.
func JSONError(err error) Response {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return jsonResponse{
			status: httpErr.Code,
			body: JSONResponse{
				Code:  httpErr.Key,
				Error: &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)},
			},
		}
	}

	return jsonResponse{
		status: http.StatusInternalServerError,
		body: JSONResponse{
			Code:  ErrInternalServerError.Key,
			Error: &ErrorDetail{Code: ErrInternalServerError.Key, Message: http.StatusText(http.StatusInternalServerError)},
		},
		cause: err,
	}
}
