package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pullcast/internal/forecast"
	"pullcast/internal/gacha"
)

// apiError is the JSON body every failed request carries.
type apiError struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func statusFor(err error) int {
	if errors.Is(err, gacha.ErrPoolNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout
	}
	var fe *forecast.Error
	if errors.As(err, &fe) {
		switch fe.Kind {
		case forecast.KindValidation:
			return http.StatusBadRequest
		case forecast.KindConfig:
			return http.StatusUnprocessableEntity
		case forecast.KindCompute:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := apiError{
		Error:     err.Error(),
		Kind:      "internal",
		RequestID: middleware.GetReqID(r.Context()),
	}
	var fe *forecast.Error
	if errors.As(err, &fe) {
		body.Kind = string(fe.Kind)
		body.Field = fe.Field
	}

	log := s.log.Warn
	if status >= 500 {
		log = s.log.Error
	}
	log("request failed",
		zap.String("requestId", body.RequestID),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, field, msg string) {
	s.writeError(w, r, &forecast.Error{Kind: forecast.KindValidation, Field: field, Msg: msg})
}
