// File: internal/rpc/server.go
package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-chat/internal/logger"
	"github.com/iyunix/go-chat/internal/middleware"
	"github.com/iyunix/go-chat/internal/render"
	"github.com/iyunix/go-chat/internal/services/chat"
)

const (
	maxBodyBytes = 1 << 20
	maxBatchSize = 32
)

// Request is one procedure call. ID is echoed back untouched.
type Request struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result interface{}     `json:"result,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

// Server dispatches procedure calls to the chat service.
type Server struct {
	service    chat.Service
	markdown   *render.Markdown
	logger     logger.Logger
	procedures map[string]Procedure
}

func NewServer(service chat.Service, markdown *render.Markdown, log logger.Logger) *Server {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	s := &Server{service: service, markdown: markdown, logger: log}
	s.registerProcedures()
	return s
}

// RegisterRoutes mounts the batch endpoint and the single-call shortcut.
func (s *Server) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/rpc", s.HandleRPC).Methods(http.MethodPost)
	r.HandleFunc("/api/rpc/{method}", s.HandleProcedure).Methods(http.MethodPost)
}

// HandleRPC accepts a single call object or an array of calls. Batch entries
// run in order and fail independently.
func (s *Server) HandleRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, Response{Error: &ErrorBody{Code: CodeParseError, Message: "request body too large"}})
		return
	}
	body = bytes.TrimSpace(body)

	if len(body) > 0 && body[0] == '[' {
		var calls []Request
		if err := json.Unmarshal(body, &calls); err != nil {
			writeParseError(w, "malformed batch")
			return
		}
		if len(calls) == 0 || len(calls) > maxBatchSize {
			writeParseError(w, "batch must contain between 1 and 32 calls")
			return
		}

		responses := make([]Response, 0, len(calls))
		for _, call := range calls {
			responses = append(responses, s.invoke(r, call))
		}
		writeJSON(w, http.StatusOK, responses)
		return
	}

	var call Request
	if err := json.Unmarshal(body, &call); err != nil {
		writeParseError(w, "malformed request")
		return
	}
	resp := s.invoke(r, call)
	writeJSON(w, statusOf(resp), resp)
}

// HandleProcedure is the single-call form: the method is in the path and the
// body holds the params.
func (s *Server) HandleProcedure(w http.ResponseWriter, r *http.Request) {
	params, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, Response{Error: &ErrorBody{Code: CodeParseError, Message: "request body too large"}})
		return
	}
	if len(bytes.TrimSpace(params)) > 0 && !json.Valid(params) {
		writeParseError(w, "malformed params")
		return
	}

	resp := s.invoke(r, Request{Method: mux.Vars(r)["method"], Params: params})
	writeJSON(w, statusOf(resp), resp)
}

func (s *Server) invoke(r *http.Request, call Request) Response {
	resp := Response{ID: call.ID}

	proc, ok := s.procedures[call.Method]
	if !ok {
		resp.Error = &ErrorBody{Code: CodeMethodNotFound, Message: "unknown method: " + call.Method}
		return resp
	}

	ctx := r.Context()
	userID := middleware.UserIDFrom(ctx)
	if userID == "" && !publicProcedures[call.Method] {
		resp.Error = errorBody(chat.NewUnauthorizedError(call.Method))
		return resp
	}

	result, err := proc(ctx, userID, call.Params)
	if err != nil {
		resp.Error = errorBody(err)
		if code := chat.CodeOf(err); code == chat.CodeDependencyFailure {
			s.logger.Error("procedure failed", "method", call.Method, "error", err)
		} else {
			s.logger.Debug("procedure rejected", "method", call.Method, "code", code)
		}
		return resp
	}

	resp.Result = result
	return resp
}

func statusOf(resp Response) int {
	if resp.Error == nil {
		return http.StatusOK
	}
	return statusFor(resp.Error.Code)
}

func writeParseError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, Response{Error: &ErrorBody{Code: CodeParseError, Message: msg}})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
