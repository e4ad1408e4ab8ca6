package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/minimal-api/internal/auth"
	"github.com/minimal-api/internal/logging"
	"github.com/minimal-api/internal/middleware"
	"github.com/minimal-api/internal/model"
	"github.com/minimal-api/internal/scheduler"
	"github.com/minimal-api/internal/service"
	"github.com/minimal-api/internal/storage"
	"github.com/minimal-api/internal/validation"
)

var testSecret = []byte("api-test-secret")

type testEnv struct {
	router   http.Handler
	issuer   *auth.TokenIssuer
	admins   *storage.MemoryAdministrators
	vehicles storage.VehicleStore
	logs     *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithVehicles(t, storage.NewMemoryVehicles())
}

func newTestEnvWithVehicles(t *testing.T, vehicles storage.VehicleStore) *testEnv {
	t.Helper()

	logs := &bytes.Buffer{}
	log := logging.NewWithWriter(logs, slog.LevelInfo, "json")
	issuer, err := auth.NewTokenIssuer(testSecret)
	require.NoError(t, err)

	admins := storage.NewMemoryAdministrators()
	svc := service.NewAdministratorService(admins, service.WithBcryptCost(bcrypt.MinCost))
	ctx := context.Background()
	for _, seed := range []struct{ email, password, role string }{
		{"adm@teste.com", "123456", "Adm"},
		{"editor@teste.com", "654321", "Editor"},
	} {
		_, err := svc.Create(ctx, model.AdministratorRequest{Email: seed.email, Password: seed.password, Role: &seed.role})
		require.NoError(t, err)
	}

	health := scheduler.NewHealthMonitor(storage.MemoryPinger{}, log)
	h := NewHandler(svc, issuer, health, log)
	vh := NewVehicleHandler(vehicles, log)
	authMW := middleware.NewAuthMiddleware(auth.NewGuard(issuer), log)

	return &testEnv{
		router:   NewRouter(Routes(h, vh), authMW, log),
		issuer:   issuer,
		admins:   admins,
		vehicles: vehicles,
		logs:     logs,
	}
}

func (e *testEnv) token(t *testing.T, role model.Role) string {
	t.Helper()
	token, _, err := e.issuer.Issue(string(role)+"@teste.com", role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRoutes_RequirementTable(t *testing.T) {
	admin := auth.RoleIn(model.RoleAdmin)
	adminOrEditor := auth.RoleIn(model.RoleAdmin, model.RoleEditor)

	want := map[string]auth.Requirement{
		"GET /":                       auth.Public(),
		"GET /health":                 auth.Public(),
		"POST /administradores/login": auth.Public(),
		"GET /administradores":        admin,
		"GET /administradores/{id}":   admin,
		"POST /administradores":       admin,
		"POST /veiculos":              adminOrEditor,
		"GET /veiculos":               auth.Public(),
		"GET /veiculos/{id}":          adminOrEditor,
		"PUT /veiculos/{id}":          admin,
		"DELETE /veiculos/{id}":       admin,
	}

	routes := Routes(&Handler{}, &VehicleHandler{})
	require.Len(t, routes, len(want))
	for _, rt := range routes {
		key := rt.Method + " " + rt.Path
		req, ok := want[key]
		require.True(t, ok, "unexpected route %s", key)
		assert.Equal(t, req.Level(), rt.Requirement.Level(), key)
		assert.ElementsMatch(t, req.Roles(), rt.Requirement.Roles(), key)
		assert.NotNil(t, rt.Handler, key)
	}
}

func TestHome_RedirectsToDocs(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, DocsPath, rec.Header().Get("Location"))

	rec = env.do(t, http.MethodGet, "/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSwaggerDocServed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/swagger/doc.json", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BearerAuth")
	assert.Contains(t, rec.Body.String(), "/veiculos/{id}")
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[scheduler.HealthStatus](t, rec)
	assert.True(t, status.Healthy)

	env.do(t, http.MethodGet, "/veiculos", nil, "")
	rec = env.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "minimalapi_http_requests_total")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantRole   model.Role
	}{
		{name: "admin", body: model.LoginRequest{Email: "adm@teste.com", Password: "123456"}, wantStatus: http.StatusOK, wantRole: model.RoleAdmin},
		{name: "editor", body: model.LoginRequest{Email: "editor@teste.com", Password: "654321"}, wantStatus: http.StatusOK, wantRole: model.RoleEditor},
		{name: "wrong password", body: model.LoginRequest{Email: "adm@teste.com", Password: "1234567"}, wantStatus: http.StatusUnauthorized},
		{name: "email case differs", body: model.LoginRequest{Email: "ADM@teste.com", Password: "123456"}, wantStatus: http.StatusUnauthorized},
		{name: "unknown email", body: model.LoginRequest{Email: "ghost@teste.com", Password: "123456"}, wantStatus: http.StatusUnauthorized},
		{name: "empty", body: model.LoginRequest{}, wantStatus: http.StatusUnauthorized},
		{name: "malformed", body: "{not json", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/administradores/login", tt.body, "")
			require.Equal(t, tt.wantStatus, rec.Code)

			switch tt.wantStatus {
			case http.StatusOK:
				resp := decode[model.LoginResponse](t, rec)
				assert.Equal(t, tt.wantRole, resp.Role)
				claims, err := env.issuer.Verify(resp.Token)
				require.NoError(t, err)
				assert.Equal(t, resp.Email, claims.Email)
				assert.Equal(t, tt.wantRole, claims.Role)
			case http.StatusUnauthorized:
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestLoginToken_GrantsAccess(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/administradores/login", model.LoginRequest{Email: "adm@teste.com", Password: "123456"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[model.LoginResponse](t, rec).Token

	rec = env.do(t, http.MethodGet, "/administradores", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEditorToken_DeniedOnAdminCreate_AllowedOnVehicleCreate(t *testing.T) {
	env := newTestEnv(t)
	editor := env.token(t, model.RoleEditor)
	role := "Editor"

	rec := env.do(t, http.MethodPost, "/administradores",
		model.AdministratorRequest{Email: "new@teste.com", Password: "x", Role: &role}, editor)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Body.String())

	found, err := env.admins.FindByEmail(context.Background(), "new@teste.com")
	require.NoError(t, err)
	assert.Nil(t, found)

	rec = env.do(t, http.MethodPost, "/veiculos", model.VehicleRequest{Name: "Uno", Brand: "Fiat", Year: 2010}, editor)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAccessControl(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)
	editor := env.token(t, model.RoleEditor)

	expiredIssuer, err := auth.NewTokenIssuer(testSecret, auth.WithClock(func() time.Time {
		return time.Now().Add(-auth.TokenTTL - time.Minute)
	}))
	require.NoError(t, err)
	expired, _, err := expiredIssuer.Issue("adm@teste.com", model.RoleAdmin)
	require.NoError(t, err)

	otherIssuer, err := auth.NewTokenIssuer([]byte("another-secret"))
	require.NoError(t, err)
	forged, _, err := otherIssuer.Issue("adm@teste.com", model.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{"list admins anonymous", http.MethodGet, "/administradores", "", http.StatusUnauthorized},
		{"list admins editor", http.MethodGet, "/administradores", editor, http.StatusForbidden},
		{"list admins admin", http.MethodGet, "/administradores", admin, http.StatusOK},
		{"list admins expired", http.MethodGet, "/administradores", expired, http.StatusUnauthorized},
		{"list admins forged", http.MethodGet, "/administradores", forged, http.StatusUnauthorized},
		{"get admin editor", http.MethodGet, "/administradores/1", editor, http.StatusForbidden},
		{"list vehicles anonymous", http.MethodGet, "/veiculos", "", http.StatusOK},
		{"list vehicles expired token", http.MethodGet, "/veiculos", expired, http.StatusOK},
		{"get vehicle anonymous", http.MethodGet, "/veiculos/1", "", http.StatusUnauthorized},
		{"get vehicle editor", http.MethodGet, "/veiculos/1", editor, http.StatusNotFound},
		{"delete vehicle editor", http.MethodDelete, "/veiculos/1", editor, http.StatusForbidden},
		{"delete vehicle expired", http.MethodDelete, "/veiculos/1", expired, http.StatusUnauthorized},
		{"put vehicle editor", http.MethodPut, "/veiculos/1", editor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, nil, tt.token)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized || tt.wantStatus == http.StatusForbidden {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestAdministrator_CreateThenGet(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)
	role := "Adm"

	rec := env.do(t, http.MethodPost, "/administradores",
		model.AdministratorRequest{Email: "a@b.com", Password: "x", Role: &role}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "senha")
	assert.NotContains(t, rec.Body.String(), "password")

	created := decode[model.AdministratorView](t, rec)
	assert.Equal(t, "/administradores/3", rec.Header().Get("Location"))

	rec = env.do(t, http.MethodGet, rec.Header().Get("Location"), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "senha")

	got := decode[model.AdministratorView](t, rec)
	assert.Equal(t, created, got)
	assert.Equal(t, "a@b.com", got.Email)
	assert.Equal(t, model.RoleAdmin, got.Role)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.ElementsMatch(t, []string{"id", "email", "perfil"}, keys(raw))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestCreateAdministrator_Validation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)
	editorRole, badRole := "Editor", "root"

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantMsgs   []string
	}{
		{
			name:       "everything missing",
			body:       model.AdministratorRequest{},
			wantStatus: http.StatusBadRequest,
			wantMsgs:   []string{validation.MsgEmailRequired, validation.MsgPasswordRequired, validation.MsgRoleRequired},
		},
		{
			name:       "unknown role",
			body:       model.AdministratorRequest{Email: "x@y.com", Password: "p", Role: &badRole},
			wantStatus: http.StatusBadRequest,
			wantMsgs:   []string{validation.MsgRoleInvalid},
		},
		{
			name:       "duplicate email",
			body:       model.AdministratorRequest{Email: "editor@teste.com", Password: "p", Role: &editorRole},
			wantStatus: http.StatusConflict,
			wantMsgs:   []string{msgEmailTaken},
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantMsgs:   []string{msgInvalidBody},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/administradores", tt.body, admin)
			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsgs, decode[model.ValidationErrors](t, rec).Messages)
		})
	}
}

func TestListAdministrators_Pagination(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)

	ctx := context.Background()
	for i := range 10 {
		a := &model.Administrator{Email: "user" + string(rune('a'+i)) + "@teste.com", PasswordHash: "h", Role: model.RoleEditor}
		require.NoError(t, env.admins.Create(ctx, a))
	}

	tests := []struct {
		query   string
		wantLen int
		firstID int64
	}{
		{query: "", wantLen: 12, firstID: 1},
		{query: "?pagina=1", wantLen: 10, firstID: 1},
		{query: "?pagina=2", wantLen: 2, firstID: 11},
		{query: "?pagina=3", wantLen: 0},
		{query: "?pagina=0", wantLen: 10, firstID: 1},
		{query: "?pagina=-4", wantLen: 10, firstID: 1},
		{query: "?pagina=9223372036854775807", wantLen: 0},
	}

	for _, tt := range tests {
		t.Run("page"+tt.query, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/administradores"+tt.query, nil, admin)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.NotContains(t, rec.Body.String(), "password")

			views := decode[[]model.AdministratorView](t, rec)
			require.Len(t, views, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.firstID, views[0].ID)
			}
		})
	}

	rec := env.do(t, http.MethodGet, "/administradores?pagina=abc", nil, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{msgInvalidPage}, decode[model.ValidationErrors](t, rec).Messages)
}

func TestGetAdministrator_NotFoundAndBadID(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)

	rec := env.do(t, http.MethodGet, "/administradores/999", nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/administradores/abc", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVehicle_CreateDeleteGet(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/veiculos", `{"nome":"Civic","marca":"Honda","ano":2020}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[model.Vehicle](t, rec)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Civic", created.Name)
	assert.Equal(t, "Honda", created.Brand)
	assert.Equal(t, 2020, created.Year)

	location := rec.Header().Get("Location")
	assert.Equal(t, "/veiculos/1", location)

	rec = env.do(t, http.MethodGet, location, nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[model.Vehicle](t, rec))

	rec = env.do(t, http.MethodDelete, location, nil, admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodGet, location, nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodDelete, location, nil, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateVehicle_YearBoundary(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)

	for _, year := range []int{0, 1900, 1949} {
		rec := env.do(t, http.MethodPost, "/veiculos", model.VehicleRequest{Name: "Ford T", Brand: "Ford", Year: year}, admin)
		require.Equal(t, http.StatusBadRequest, rec.Code, year)
		assert.Contains(t, decode[model.ValidationErrors](t, rec).Messages, validation.MsgVehicleTooOld, year)
	}

	for _, year := range []int{1950, 1951, 2024} {
		rec := env.do(t, http.MethodPost, "/veiculos", model.VehicleRequest{Name: "Fusca", Brand: "VW", Year: year}, admin)
		assert.Equal(t, http.StatusCreated, rec.Code, year)
	}

	rec := env.do(t, http.MethodPost, "/veiculos", model.VehicleRequest{Year: 1800}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t,
		[]string{validation.MsgNameRequired, validation.MsgBrandRequired, validation.MsgVehicleTooOld},
		decode[model.ValidationErrors](t, rec).Messages)
}

func TestUpdateVehicle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)

	v := &model.Vehicle{Name: "Gol", Brand: "VW", Year: 2000}
	require.NoError(t, env.vehicles.Create(context.Background(), v))

	// existence is checked before validation
	rec := env.do(t, http.MethodPut, "/veiculos/999", model.VehicleRequest{Year: 1}, admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/veiculos/1", model.VehicleRequest{Name: "Gol", Brand: "VW", Year: 1949}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{validation.MsgVehicleTooOld}, decode[model.ValidationErrors](t, rec).Messages)

	rec = env.do(t, http.MethodPut, "/veiculos/1", model.VehicleRequest{Name: "Gol G5", Brand: "Volkswagen", Year: 2009}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Vehicle{ID: 1, Name: "Gol G5", Brand: "Volkswagen", Year: 2009}, decode[model.Vehicle](t, rec))

	stored, err := env.vehicles.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Gol G5", stored.Name)
}

func TestListVehicles(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/veiculos", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	ctx := context.Background()
	for i := range 11 {
		require.NoError(t, env.vehicles.Create(ctx, &model.Vehicle{Name: "Carro", Brand: "Marca", Year: 1990 + i}))
	}

	rec = env.do(t, http.MethodGet, "/veiculos?pagina=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[[]model.Vehicle](t, rec)
	require.Len(t, page, 1)
	assert.Equal(t, int64(11), page[0].ID)

	rec = env.do(t, http.MethodGet, "/veiculos", nil, "")
	assert.Len(t, decode[[]model.Vehicle](t, rec), 11)

	for _, page := range []string{"1000000000000000000", "9223372036854775807"} {
		rec = env.do(t, http.MethodGet, "/veiculos?pagina="+page, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, page)
		assert.JSONEq(t, `[]`, rec.Body.String(), page)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPatch, "/veiculos", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

type brokenVehicles struct {
	storage.VehicleStore
}

var errStoreDown = errors.New("pq: connection refused to 10.0.0.7")

func (brokenVehicles) Create(context.Context, *model.Vehicle) error { return errStoreDown }
func (brokenVehicles) FindPage(context.Context, int) ([]model.Vehicle, error) {
	return nil, errStoreDown
}
func (brokenVehicles) FindByID(context.Context, int64) (*model.Vehicle, error) {
	return nil, errStoreDown
}
func (brokenVehicles) Delete(context.Context, int64) error { return errStoreDown }

func TestStoreFailure_IsOpaque500(t *testing.T) {
	env := newTestEnvWithVehicles(t, brokenVehicles{})
	admin := env.token(t, model.RoleAdmin)

	requests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/veiculos", nil},
		{http.MethodGet, "/veiculos/1", nil},
		{http.MethodPost, "/veiculos", model.VehicleRequest{Name: "A", Brand: "B", Year: 2000}},
		{http.MethodPut, "/veiculos/1", model.VehicleRequest{Name: "A", Brand: "B", Year: 2000}},
		{http.MethodDelete, "/veiculos/1", nil},
	}

	for _, r := range requests {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			rec := env.do(t, r.method, r.path, r.body, admin)
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
			assert.False(t, strings.Contains(rec.Body.String(), "10.0.0.7"))
		})
	}
}

func TestMutations_LogCaller(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, model.RoleAdmin)
	role := "Editor"

	rec := env.do(t, http.MethodPost, "/administradores",
		model.AdministratorRequest{Email: "audit@teste.com", Password: "x", Role: &role}, admin)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NoError(t, env.vehicles.Create(context.Background(), &model.Vehicle{Name: "Gol", Brand: "VW", Year: 2000}))
	rec = env.do(t, http.MethodDelete, "/veiculos/1", nil, admin)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var created, deleted map[string]any
	for _, line := range bytes.Split(env.logs.Bytes(), []byte("\n")) {
		var entry map[string]any
		if json.Unmarshal(line, &entry) != nil {
			continue
		}
		switch entry["msg"] {
		case "administrator created":
			created = entry
		case "vehicle deleted":
			deleted = entry
		}
	}

	require.NotNil(t, created)
	assert.Equal(t, "Adm@teste.com", created["by"])
	assert.Equal(t, "Adm", created["by_role"])
	require.NotNil(t, deleted)
	assert.Equal(t, "Adm@teste.com", deleted["by"])
}
