package response

import (
	"encoding/json"
	"net/http"

	apperr "github.com/fixora/insights/pkg/error"
)

type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Code    string      `json:"code,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, status bool, message string, data interface{}) {
	write(w, statusCode, Envelope{Status: status, Message: message, Data: data})
}

func write(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	WriteJSON(w, statusCode, true, message, data)
}

func OK(w http.ResponseWriter, message string, data interface{}) {
	Success(w, http.StatusOK, message, data)
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	Success(w, http.StatusCreated, message, data)
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, false, message, nil)
}

// Fail writes err mapped to its API code and status
func Fail(w http.ResponseWriter, err error) {
	e := apperr.MapError(err)
	write(w, e.Status, Envelope{Status: false, Message: e.Message, Code: e.Code})
}

func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, apperr.NewBadRequest(message))
}

func NotFound(w http.ResponseWriter, message string) {
	Fail(w, apperr.NewNotFound(message))
}

func InternalServerError(w http.ResponseWriter, message string) {
	Fail(w, apperr.NewInternalServer(message))
}
