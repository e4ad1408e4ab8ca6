package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/minimal-api/internal/logging"
	"github.com/minimal-api/internal/metrics"
	"github.com/minimal-api/internal/middleware"
	"github.com/minimal-api/internal/model"
	"github.com/minimal-api/internal/scheduler"
	"github.com/minimal-api/internal/storage"
	"github.com/minimal-api/internal/validation"
)

const (
	msgInvalidBody = "corpo da requisição inválido"
	msgInvalidID   = "id inválido"
	msgInvalidPage = "pagina deve ser um número inteiro"
	msgEmailTaken  = "email já cadastrado!"
)

// DocsPath is where GET / redirects to.
const DocsPath = "/swagger/index.html"

type administratorService interface {
	Login(ctx context.Context, email, password string) (*model.Administrator, error)
	Create(ctx context.Context, req model.AdministratorRequest) (*model.Administrator, error)
	List(ctx context.Context, page int) ([]model.Administrator, error)
	Get(ctx context.Context, id int64) (*model.Administrator, error)
}

type tokenIssuer interface {
	Issue(email string, role model.Role) (string, time.Time, error)
}

// Handler serves the home, health, login and administrator endpoints
type Handler struct {
	admins administratorService
	tokens tokenIssuer
	health *scheduler.HealthMonitor
	log    *logging.Logger
}

func NewHandler(admins administratorService, tokens tokenIssuer, health *scheduler.HealthMonitor, log *logging.Logger) *Handler {
	return &Handler{
		admins: admins,
		tokens: tokens,
		health: health,
		log:    log,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondValidation(w http.ResponseWriter, status int, messages ...string) {
	respondJSON(w, status, model.ValidationErrors{Messages: messages})
}

// respondInternal logs err and answers 500 without exposing it.
func respondInternal(w http.ResponseWriter, r *http.Request, log *logging.Logger, msg string, err error) {
	log.ErrorContext(r.Context(), msg, "error", err, "method", r.Method, "path", r.URL.Path)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// callerAttrs identifies the authenticated caller in log lines.
func callerAttrs(r *http.Request) []any {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return nil
	}
	return []any{"by", claims.Email, "by_role", claims.Role.String()}
}

func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// queryPage reads ?pagina=N. An absent value selects every record (0);
// values below 1 are clamped to the first page.
func queryPage(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("pagina")
	if raw == "" {
		return 0, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return max(page, 1), true
}

// Home godoc
// @Summary Documentation entry point
// @Description Redirects to the interactive API documentation
// @Tags Home
// @Success 302
// @Router / [get]
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DocsPath, http.StatusFound)
}

// Health godoc
// @Summary Health check
// @Description Reports the result of the last store probe
// @Tags Home
// @Produce json
// @Success 200 {object} scheduler.HealthStatus
// @Failure 503 {object} scheduler.HealthStatus
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.health.Status(r.Context())
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, status)
}

// Login godoc
// @Summary Administrator login
// @Description Exchanges email and password for a bearer token valid for 24 hours
// @Tags Administradores
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ValidationErrors "Malformed body"
// @Failure 401 "Invalid credentials"
// @Failure 500 {object} map[string]string "Server error"
// @Router /administradores/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	admin, err := h.admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginError).Inc()
		respondInternal(w, r, h.log, "login failed", err)
		return
	}
	if admin == nil {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginRejected).Inc()
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	token, _, err := h.tokens.Issue(admin.Email, admin.Role)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.LoginError).Inc()
		respondInternal(w, r, h.log, "failed to issue token", err)
		return
	}

	metrics.LoginAttempts.WithLabelValues(metrics.LoginSucceeded).Inc()
	respondJSON(w, http.StatusOK, model.LoginResponse{
		Email: admin.Email,
		Role:  admin.Role,
		Token: token,
	})
}

// ListAdministrators godoc
// @Summary List administrators
// @Description Returns administrators ordered by id, 10 per page. Without pagina every record is returned.
// @Tags Administradores
// @Produce json
// @Param pagina query int false "Page number, starting at 1"
// @Success 200 {array} model.AdministratorView
// @Failure 400 {object} model.ValidationErrors "Invalid page"
// @Failure 401 "Unauthorized"
// @Failure 403 "Forbidden"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /administradores [get]
func (h *Handler) ListAdministrators(w http.ResponseWriter, r *http.Request) {
	page, ok := queryPage(r)
	if !ok {
		respondValidation(w, http.StatusBadRequest, msgInvalidPage)
		return
	}

	admins, err := h.admins.List(r.Context(), page)
	if err != nil {
		respondInternal(w, r, h.log, "failed to list administrators", err)
		return
	}

	views := make([]model.AdministratorView, 0, len(admins))
	for i := range admins {
		views = append(views, admins[i].View())
	}
	respondJSON(w, http.StatusOK, views)
}

// GetAdministrator godoc
// @Summary Get an administrator
// @Tags Administradores
// @Produce json
// @Param id path int true "Administrator ID"
// @Success 200 {object} model.AdministratorView
// @Failure 400 {object} model.ValidationErrors "Invalid id"
// @Failure 401 "Unauthorized"
// @Failure 403 "Forbidden"
// @Failure 404 "Not found"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /administradores/{id} [get]
func (h *Handler) GetAdministrator(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	admin, err := h.admins.Get(r.Context(), id)
	if err != nil {
		respondInternal(w, r, h.log, "failed to get administrator", err)
		return
	}
	if admin == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, admin.View())
}

// CreateAdministrator godoc
// @Summary Create an administrator
// @Description perfil must be Adm or Editor. The password is never returned.
// @Tags Administradores
// @Accept json
// @Produce json
// @Param request body model.AdministratorRequest true "New administrator"
// @Success 201 {object} model.AdministratorView
// @Header 201 {string} Location "/administradores/{id}"
// @Failure 400 {object} model.ValidationErrors "Validation failed"
// @Failure 401 "Unauthorized"
// @Failure 403 "Forbidden"
// @Failure 409 {object} model.ValidationErrors "Email already registered"
// @Failure 500 {object} map[string]string "Server error"
// @Security BearerAuth
// @Router /administradores [post]
func (h *Handler) CreateAdministrator(w http.ResponseWriter, r *http.Request) {
	var req model.AdministratorRequest
	if err := decodeBody(r, &req); err != nil {
		respondValidation(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if msgs := validation.Administrator(req); len(msgs) > 0 {
		respondValidation(w, http.StatusBadRequest, msgs...)
		return
	}

	admin, err := h.admins.Create(r.Context(), req)
	if errors.Is(err, storage.ErrDuplicateEmail) {
		respondValidation(w, http.StatusConflict, msgEmailTaken)
		return
	}
	if err != nil {
		respondInternal(w, r, h.log, "failed to create administrator", err)
		return
	}

	h.log.InfoContext(r.Context(), "administrator created",
		append([]any{"id", admin.ID, "role", admin.Role.String()}, callerAttrs(r)...)...)
	w.Header().Set("Location", "/administradores/"+strconv.FormatInt(admin.ID, 10))
	respondJSON(w, http.StatusCreated, admin.View())
}
