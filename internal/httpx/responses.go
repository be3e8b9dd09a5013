package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{Message: message})
}

// NotFound answers unknown routes the same way as failed requests.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Error(w, http.StatusNotFound, fmt.Sprintf("Route %s:%s not found", r.Method, r.URL.Path))
}

// DecodeError is returned by DecodeJSON; Status is the code to answer with.
type DecodeError struct {
	Status  int
	Message string
}

func (e *DecodeError) Error() string { return e.Message }

// DecodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are ignored.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &maxErr):
			return &DecodeError{Status: http.StatusRequestEntityTooLarge, Message: "Request body is too large"}
		case errors.Is(err, io.EOF):
			return &DecodeError{Status: http.StatusBadRequest, Message: "body must be object"}
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return &DecodeError{Status: http.StatusBadRequest, Message: "Body is not valid JSON"}
		case errors.As(err, &typeErr):
			if typeErr.Field == "" {
				return &DecodeError{Status: http.StatusBadRequest, Message: "body must be object"}
			}
			return &DecodeError{Status: http.StatusBadRequest, Message: fmt.Sprintf("body/%s must be %s", typeErr.Field, jsonKind(typeErr.Type.Kind().String()))}
		default:
			return &DecodeError{Status: http.StatusBadRequest, Message: err.Error()}
		}
	}
	if dec.More() {
		return &DecodeError{Status: http.StatusBadRequest, Message: "Body is not valid JSON"}
	}
	return nil
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "int", "int64", "float64":
		return "number"
	case "struct", "map":
		return "object"
	case "slice":
		return "array"
	}
	return goKind
}
