package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todoauth/internal/common"
	"github.com/dmitrijs2005/todoauth/internal/logging"
	"github.com/dmitrijs2005/todoauth/internal/server/metrics"
	"github.com/dmitrijs2005/todoauth/internal/server/services"
	"github.com/julienschmidt/httprouter"
)

const maxBodyBytes = 1 << 20

// Error messages written to clients.
const (
	MessageMissingCredentials = "MissingCredentials"
	MessageInvalidCredentials = "InvalidCredentials"
	MessageEmailExists        = "EmailExists"
	MessageInternalFailure    = "InternalFailure"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type authCall func(w http.ResponseWriter, r *http.Request) (*services.AuthResult, error)

// handle times call, records its outcome and writes either the result with
// okStatus or the mapped error.
func (s *HTTPServer) handle(operation string, okStatus int, call authCall) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()
		res, err := call(w, r)
		s.metrics.Observe(operation, metrics.OutcomeFor(err), time.Since(start))

		if err != nil {
			s.writeError(w, r, operation, err)
			return
		}
		writeJSON(w, okStatus, res)
	}
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) (*services.AuthResult, error) {
	c := readCredentials(w, r)
	return s.auth.Login(r.Context(), c.Email, c.Password)
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) (*services.AuthResult, error) {
	c := readCredentials(w, r)
	return s.auth.Register(r.Context(), c.Email, c.Password)
}

func (s *HTTPServer) demoLogin(w http.ResponseWriter, r *http.Request) (*services.AuthResult, error) {
	return s.auth.DemoLogin(r.Context())
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// readCredentials decodes the request body. A missing or malformed body
// yields empty credentials, which the service rejects as missing.
func readCredentials(w http.ResponseWriter, r *http.Request) credentials {
	var c credentials
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		return credentials{}
	}
	return c
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	switch {
	case errors.Is(err, common.ErrMissingCredentials):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: MessageMissingCredentials})
	case errors.Is(err, common.ErrEmailExists):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: MessageEmailExists})
	case errors.Is(err, common.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: MessageInvalidCredentials})
	default:
		attrs := append([]any{"operation", operation}, logging.ErrorAttrs(err)...)
		s.logger.Error(r.Context(), "auth request failed", attrs...)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: MessageInternalFailure})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
