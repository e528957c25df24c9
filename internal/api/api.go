package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/config"
	"finance-tracker/internal/domain/models"
	"finance-tracker/internal/lib/jwt"

	"github.com/gorilla/mux"
)

// Storage is the persistence surface the API needs. Declared on the
// consumer side so tests can substitute an in-memory implementation.
type Storage interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SaveTransaction(ctx context.Context, t *models.Transaction) error
	GetTransaction(ctx context.Context, id, userID string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id, userID string) error
}

type APIServer struct {
	config    *config.Config
	logger    *slog.Logger
	storage   Storage
	revoked   *auth.RevocationList
	server    *http.Server
	jwtSecret []byte
}

func New(config *config.Config, logger *slog.Logger, storage Storage, revoked *auth.RevocationList, jwtSecret []byte) *APIServer {
	return &APIServer{
		config:  config,
		logger:  logger,
		storage: storage,
		revoked: revoked,
		server: &http.Server{
			Addr: config.ApiHost + ":" + strconv.Itoa(config.ApiPort),
		},
		jwtSecret: jwtSecret,
	}
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("port", strconv.Itoa(s.config.ApiPort)))

	s.configureRouter()

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()

	router.HandleFunc("/api/users/signup", s.signupHandler()).Methods("POST")
	router.HandleFunc("/api/users/login", s.loginHandler()).Methods("POST")
	router.HandleFunc("/api/users/logout", s.authenticate(s.logoutHandler())).Methods("POST")
	router.HandleFunc("/api/users/profile", s.authenticate(s.profileHandler())).Methods("GET")

	router.HandleFunc("/api/transactions", s.authenticate(s.createTransactionHandler())).Methods("POST")
	router.HandleFunc("/api/transactions", s.authenticate(s.listTransactionsHandler())).Methods("GET")
	router.HandleFunc("/api/transactions/summary", s.authenticate(s.summaryHandler())).Methods("GET")
	router.HandleFunc("/api/transactions/{id}", s.authenticate(s.getTransactionHandler())).Methods("GET")
	router.HandleFunc("/api/transactions/{id}", s.authenticate(s.updateTransactionHandler())).Methods("PUT")
	router.HandleFunc("/api/transactions/{id}", s.authenticate(s.deleteTransactionHandler())).Methods("DELETE")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Route not found")
	})

	s.server.Handler = router
}

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

// authenticate extracts the bearer token, verifies it, rejects revoked
// tokens and resolves the caller, storing both the user and the raw
// token on the request context. Every failure is a 401.
func (s *APIServer) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || tokenStr == "" {
			respondError(w, http.StatusUnauthorized, "Not authorized, no token provided")
			return
		}

		if s.revoked.IsRevoked(tokenStr) {
			respondError(w, http.StatusUnauthorized, "Not authorized, token invalid")
			return
		}

		userID, err := jwt.ParseToken(tokenStr, s.jwtSecret)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Not authorized, token invalid")
			return
		}

		user, err := s.storage.GetUserByID(r.Context(), userID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, tokenStr)
		next(w, r.WithContext(ctx))
	}
}

func userFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok
}

func tokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenKey).(string)
	return token, ok
}

// decodeJSON parses a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes the uniform {"message": ...} error body.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
