package http

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/user-service/internal/user/domain"
	"github.com/tair/user-service/internal/user/usecase/command"
	"github.com/tair/user-service/internal/user/usecase/query"
	"github.com/tair/user-service/kafka"
	"github.com/tair/user-service/pkg/logger"
)

// UserHandler handles HTTP requests for users
type UserHandler struct {
	// Command handlers
	createHandler *command.CreateUserHandler
	updateHandler *command.UpdateUserHandler
	deleteHandler *command.DeleteUserHandler

	// Query handlers
	getHandler  *query.GetUserHandler
	listHandler *query.ListUsersHandler

	repo           domain.UserRepository
	events         *kafka.Publisher
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	usersTotal     prometheus.Gauge
}

// NewUserHandler creates a new user handler. events may be nil when no
// broker is configured. Metrics register against reg so tests can use an
// isolated registry.
func NewUserHandler(repo domain.UserRepository, events *kafka.Publisher, reg prometheus.Registerer) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_requests_total",
			Help: "Total number of requests to user service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_service_request_duration_seconds",
			Help:    "Duration of user service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	usersTotal := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "user_service_users",
			Help: "Number of users in the store",
		},
	)

	reg.MustRegister(requestCounter)
	reg.MustRegister(requestLatency)
	reg.MustRegister(usersTotal)

	return &UserHandler{
		createHandler:  command.NewCreateUserHandler(repo),
		updateHandler:  command.NewUpdateUserHandler(repo),
		deleteHandler:  command.NewDeleteUserHandler(repo),
		getHandler:     query.NewGetUserHandler(repo),
		listHandler:    query.NewListUsersHandler(repo),
		repo:           repo,
		events:         events,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		usersTotal:     usersTotal,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// pathID extracts the {id} path variable.
func pathID(r *http.Request) (uint, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		return 0, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "id", Reason: "must be a positive integer"},
		}}
	}
	return uint(id), nil
}

// updateUsersMetric refreshes the users gauge from the store.
func (h *UserHandler) updateUsersMetric(ctx context.Context) {
	users, err := h.repo.FindAll(ctx)
	if err == nil {
		h.usersTotal.Set(float64(len(users)))
	}
}

// publish emits a lifecycle event after a successful mutation. Publish
// failures are logged, never surfaced to the caller.
func (h *UserHandler) publish(ctx context.Context, eventType string, user *domain.User) {
	if h.events == nil {
		return
	}
	event := kafka.NewUserEvent(eventType, user)
	if err := h.events.PublishUserEvent(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).
			Str("event_type", eventType).
			Uint("user_id", user.ID).
			Msg("Failed to publish user event")
	}
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(r.Context(), query.ListUsersQuery{})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, domain.ToDTOs(users))
}

// GetUser handles GET /api/v1/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.getHandler.Handle(r.Context(), query.GetUserQuery{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, user.ToDTO())
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto domain.UserDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		respondError(w, err)
		return
	}

	cmd := command.CreateUserCommand{
		Username: dto.Username,
		Email:    dto.Email,
		FullName: dto.FullName,
	}

	user, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info(r.Context()).Uint("user_id", user.ID).Str("username", user.Username).Msg("User created")
	h.updateUsersMetric(r.Context())
	h.publish(r.Context(), kafka.EventTypeUserCreated, user)
	respondData(w, http.StatusCreated, user.ToDTO())
}

// UpdateUser handles PUT /api/v1/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var dto domain.UserDTO
	if err := decodeAndValidate(r, &dto); err != nil {
		respondError(w, err)
		return
	}

	cmd := command.UpdateUserCommand{
		ID:       id,
		Username: dto.Username,
		Email:    dto.Email,
		FullName: dto.FullName,
	}

	user, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	h.updateUsersMetric(r.Context())
	h.publish(r.Context(), kafka.EventTypeUserUpdated, user)
	respondData(w, http.StatusOK, user.ToDTO())
}

// DeleteUser handles DELETE /api/v1/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.deleteHandler.Handle(r.Context(), command.DeleteUserCommand{ID: id})
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info(r.Context()).Uint("user_id", id).Msg("User deleted")
	h.updateUsersMetric(r.Context())
	h.publish(r.Context(), kafka.EventTypeUserDeleted, user)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health. db may be nil for the in-memory backend.
func (h *UserHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.PingContext(ctx); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Message: "database unreachable",
				})
				return
			}
		}

		respondData(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/users", h.metricsMiddleware("/api/v1/users", h.ListUsers)).Methods("GET")
	router.HandleFunc("/api/v1/users", h.metricsMiddleware("/api/v1/users", h.CreateUser)).Methods("POST")
	router.HandleFunc("/api/v1/users/{id}", h.metricsMiddleware("/api/v1/users/{id}", h.GetUser)).Methods("GET")
	router.HandleFunc("/api/v1/users/{id}", h.metricsMiddleware("/api/v1/users/{id}", h.UpdateUser)).Methods("PUT")
	router.HandleFunc("/api/v1/users/{id}", h.metricsMiddleware("/api/v1/users/{id}", h.DeleteUser)).Methods("DELETE")
}

// RegisterHealthCheck registers health check endpoint
func (h *UserHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
