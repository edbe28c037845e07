package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/export"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para levantar la app completa sin DB
// ──────────────────────────────────────────────────────────────────────────────

type memItemRepo struct{ items []*entity.Item }

func (m *memItemRepo) Create(_ context.Context, it *entity.Item) error {
	cp := *it
	m.items = append(m.items, &cp)
	return nil
}

func (m *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	for _, it := range m.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memItemRepo) List(_ context.Context) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(m.items))
	for i := len(m.items) - 1; i >= 0; i-- {
		cp := *m.items[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memItemRepo) Update(_ context.Context, it *entity.Item) error {
	for i, existing := range m.items {
		if existing.ID == it.ID {
			cp := *it
			m.items[i] = &cp
		}
	}
	return nil
}

func (m *memItemRepo) Delete(_ context.Context, id string) error {
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memUserRepo struct{ users []*entity.User }

func (m *memUserRepo) Create(u *entity.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameAlreadyExists
		}
	}
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) UpdateRole(id string, role entity.Role) error {
	for _, u := range m.users {
		if u.ID == id {
			u.Role = role
		}
	}
	return nil
}

func (m *memUserRepo) List() ([]*entity.User, error) { return m.users, nil }

func (m *memUserRepo) Delete(id string) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type memReportRepo struct{ items *memItemRepo }

func (m *memReportRepo) GetSummary(_ context.Context) (repository.SummaryResult, error) {
	var s repository.SummaryResult
	s.TotalItems = len(m.items.items)
	for _, it := range m.items.items {
		s.TotalQuantity += it.Qty
		s.TotalSold += it.QuantitySold
		s.TotalRemaining += it.RemainingQty
	}
	return s, nil
}

func (m *memReportRepo) GetLowStock(_ context.Context, threshold int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range m.items.items {
		if it.RemainingQty < threshold {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memReportRepo) GetRecentExits(_ context.Context, _ int) ([]*entity.Item, error) {
	return nil, nil
}

type nopPDF struct{}

func (nopPDF) GenerateReportPDF(_ context.Context, _ *dto.ReportResponse) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arranque de la app de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	itemRepo *memItemRepo
	userRepo *memUserRepo
	adminID  string
}

func seedUser(t *testing.T, repo *memUserRepo, id, username, password string, role entity.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(&entity.User{
		ID: id, Username: username, PasswordHash: string(hash),
		Role: role, CreatedAt: time.Now(),
	}))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	itemRepo := &memItemRepo{}
	userRepo := &memUserRepo{}
	reportRepo := &memReportRepo{items: itemRepo}

	env := &testEnv{
		app:      fiber.New(),
		itemRepo: itemRepo,
		userRepo: userRepo,
		adminID:  "00000000-0000-0000-0000-0000000000aa",
	}
	seedUser(t, userRepo, env.adminID, "admin", "123456", entity.RoleAdmin)
	seedUser(t, userRepo, "00000000-0000-0000-0000-0000000000bb", "editor", "123456", entity.RoleEditor)
	seedUser(t, userRepo, "00000000-0000-0000-0000-0000000000cc", "viewer", "123456", entity.RoleViewer)

	jwtCfg := auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}
	apphttp.Router(env.app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(userRepo, jwtCfg),
		ItemUC: usecase.NewItemUseCase(itemRepo, export.NewItemsXMLExporter(),
			usecase.ItemPolicy{AllowNegativeRemaining: true}),
		UserUC:    usecase.NewUserUseCase(userRepo),
		ReportUC:  usecase.NewReportUseCase(reportRepo, nopPDF{}),
		JWTSecret: testJWTSecret,
	})
	return env
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Username: username, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login de %s debe funcionar", username)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func itemBody(office string) map[string]any {
	body := map[string]any{
		"company_name":  "Aceros del Norte",
		"name":          "Válvula 3/4",
		"piece_type":    "repuesto",
		"qty":           50,
		"quantity_sold": 20,
	}
	if office != "" {
		body["office"] = office
	}
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_PasswordIncorrecto_401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.request(t, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Username: "admin", Password: "mala"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMe_DevuelveUsuarioDelToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "editor", "123456")

	resp := env.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[map[string]dto.UserResponse](t, resp)
	assert.Equal(t, "editor", out["user"].Username)
	assert.Equal(t, "editor", out["user"].Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_SinToken_401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.request(t, http.MethodGet, "/api/items", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestItems_ViewerPuedeLeer_NoEscribir(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "viewer", "123456")

	resp := env.request(t, http.MethodGet, "/api/items", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/items", token, itemBody("Bogotá"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodDelete, "/api/items/cualquiera", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestItems_EditorCrea_RemainingDerivado(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "editor", "123456")

	resp := env.request(t, http.MethodPost, "/api/items", token, itemBody("Bogotá"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, 30, created.RemainingQty)

	// Round-trip: el item listado conserva el remaining derivado
	resp = env.request(t, http.MethodGet, "/api/items", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.ItemResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, 30, list[0].RemainingQty)
}

func TestItems_RemainingDelClienteSeIgnora(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "editor", "123456")

	body := itemBody("Bogotá")
	body["remaining_qty"] = 9999 // el servidor siempre lo deriva
	resp := env.request(t, http.MethodPost, "/api/items", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, 30, created.RemainingQty)
}

func TestItems_OfficeFaltante_400_NoPersiste(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "editor", "123456")

	resp := env.request(t, http.MethodPost, "/api/items", token, itemBody(""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, env.itemRepo.items, "la lista no debe cambiar tras una validación fallida")
}

func TestItems_UpdateIdInexistente_404(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin", "123456")

	resp := env.request(t, http.MethodPut, "/api/items/no-existe", token, itemBody("Bogotá"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItems_ExportXML(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "viewer", "123456")

	resp := env.request(t, http.MethodGet, "/api/items/export", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")
}

// ──────────────────────────────────────────────────────────────────────────────
// Users
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_EditorNoPuedeGestionar(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "editor", "123456")

	resp := env.request(t, http.MethodGet, "/api/users", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUsers_UsernameDuplicado_400(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin", "123456")

	resp := env.request(t, http.MethodPost, "/api/users", token,
		dto.CreateUserRequest{Username: "editor", Password: "secreto1", Role: "viewer"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_USERNAME", out.Code)
}

func TestUsers_RolInvalido_400(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin", "123456")

	resp := env.request(t, http.MethodPost, "/api/users", token,
		dto.CreateUserRequest{Username: "nuevo", Password: "secreto1", Role: "root"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_AutoEliminacion_400(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin", "123456")

	resp := env.request(t, http.MethodDelete, "/api/users/"+env.adminID, token, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "SELF_DELETE", out.Code)
	assert.Len(t, env.userRepo.users, 3, "la cuenta propia debe seguir existiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reports
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_ViewerBloqueado_EditorPasa(t *testing.T) {
	env := newTestEnv(t)

	viewerToken := env.login(t, "viewer", "123456")
	resp := env.request(t, http.MethodGet, "/api/reports", viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	editorToken := env.login(t, "editor", "123456")
	resp = env.request(t, http.MethodGet, "/api/reports", editorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ReportResponse](t, resp)
	assert.Equal(t, 0, out.TotalItems)
}

func TestReports_PDFDescargable(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin", "123456")

	resp := env.request(t, http.MethodGet, "/api/reports/pdf", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}
