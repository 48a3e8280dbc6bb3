package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"socialnet/internal/auth"
	"socialnet/internal/models"
	"socialnet/internal/social"
)

type Options struct {
	AllowedOrigins []string
}

type Server struct {
	Social *social.Service

	log     *zap.Logger
	handler http.Handler
}

func New(svc *social.Service, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{Social: svc, log: logger}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:         300,
	})
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(logger.Named("panic"))),
		handlers.PrintRecoveryStack(true),
	)
	s.handler = s.logRequests(recovery(c.Handler(s.routes())))
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		mux.HandleFunc(method+" "+path, h)
		mux.HandleFunc(method+" /api"+path, h)
	}

	handle("GET /healthz", s.handleHealth)
	handle("POST /register", s.handleRegister)
	handle("POST /authenticate", s.handleAuthenticate)
	handle("POST /logout", s.requireAuth(s.handleLogout))

	handle("POST /follow/{id}", s.requireAuth(s.handleFollow))
	handle("POST /unfollow/{id}", s.requireAuth(s.handleUnfollow))
	handle("GET /user", s.requireAuth(s.handleProfile))

	handle("POST /posts", s.requireAuth(s.handleCreatePost))
	handle("DELETE /posts/{id}", s.requireAuth(s.handleDeletePost))
	handle("GET /posts/{id}", s.handleGetPost)
	handle("GET /all_posts", s.requireAuth(s.handleAllPosts))

	handle("POST /like/{id}", s.requireAuth(s.handleReaction(models.ReactionLike, "Successfully liked")))
	handle("POST /unlike/{id}", s.requireAuth(s.handleReaction(models.ReactionUnlike, "Successfully unliked")))
	handle("POST /comment/{id}", s.requireAuth(s.handleComment))
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", m.Code),
			zap.Duration("duration", m.Duration),
			zap.Int64("bytes", m.Written),
		)
	})
}

// principal is the authenticated caller of a request.
type principal struct {
	user   *models.User
	claims *auth.Claims
}

// middleware
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, *principal)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		user, claims, err := s.Social.Accounts.Resolve(r.Context(), strings.TrimSpace(token))
		if err != nil {
			s.fail(w, r, err)
			return
		}
		next(w, r, &principal{user: user, claims: claims})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "ok", Data: map[string]string{"time": time.Now().UTC().Format(time.RFC3339)}})
}
