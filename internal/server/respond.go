package server

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"socialnet/internal/social"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Token     string `json:"token,omitempty"`
	CommentID string `json:"commentId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func statusFor(kind social.Kind) int {
	switch kind {
	case social.KindInvalidArgument:
		return http.StatusBadRequest
	case social.KindUnauthorized:
		return http.StatusUnauthorized
	case social.KindForbidden:
		return http.StatusForbidden
	case social.KindNotFound:
		return http.StatusNotFound
	case social.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(social.KindOf(err))
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, envelope{Success: false, Message: social.Message(err)})
}

func badRequest(msg string) error {
	return &social.Error{Kind: social.KindInvalidArgument, Msg: msg}
}

// readFields pulls named string fields from a JSON or form-encoded body.
func readFields(w http.ResponseWriter, r *http.Request, names ...string) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	out := make(map[string]string, len(names))

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, badRequest("Invalid JSON body")
		}
		for _, name := range names {
			switch v := raw[name].(type) {
			case nil:
			case string:
				out[name] = v
			default:
				out[name] = fmt.Sprint(v)
			}
		}
		return out, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, badRequest("Invalid form body")
	}
	for _, name := range names {
		out[name] = r.PostForm.Get(name)
	}
	return out, nil
}
