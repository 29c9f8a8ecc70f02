package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/process-hub/internal/application/auth"
	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/application/process"
	"github.com/jhoicas/process-hub/internal/application/tracking"
	"github.com/jhoicas/process-hub/internal/application/usecase"
	domaintracking "github.com/jhoicas/process-hub/internal/domain/tracking"
	"github.com/jhoicas/process-hub/internal/infrastructure/memory"
	"github.com/jhoicas/process-hub/internal/infrastructure/pdf"
	"github.com/jhoicas/process-hub/internal/infrastructure/seedfile"
	apphttp "github.com/jhoicas/process-hub/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/process-hub/pkg/jwt"
)

const seedYAML = `
categories:
  - id: seo
    title: SEO
    icon: Search
    phases:
      - number: 1
        title: Learning Process
        steps:
          - code: "1.10"
            title: Later
          - code: "1.2"
            title: Earlier
clients:
  - name: Acme Corp
users:
  - id: u-admin
    email: admin@agency.test
    password: secret
    role: admin
  - id: u-member
    email: member@agency.test
    password: secret
    role: member
`

func newTestApp(t *testing.T, storeConfigured bool) *fiber.App {
	t.Helper()
	f, err := seedfile.Parse([]byte(seedYAML))
	require.NoError(t, err)
	store := memory.NewStore()
	store.Load(f)

	timeUC := tracking.NewTimeTrackingUseCase(store.TimeLogs(), store.Clients(), pdf.NewMarotoReportGenerator("process-hub"))
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC: process.NewCatalogUseCase(store.Categories(), store.Phases(), store.Steps()),
		ClientUC:  usecase.NewClientUseCase(store.Clients()),
		TimeUC:    timeUC,
		Sessions:  tracking.NewSessionManager(timeUC, domaintracking.SystemClock{}),
		RecordsUC: usecase.NewRecordsUseCase(nil, 0),
		AuthUC: auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		JWTSecret:       testJWTSecret,
		StoreConfigured: storeConfigured,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, raw := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.True(t, out.Success)
	return out.Token
}

func TestRouter_Login(t *testing.T) {
	app := newTestApp(t, true)

	tok := login(t, app, "admin@agency.test")
	assert.NotEmpty(t, tok)

	resp, _ := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@agency.test", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@agency.test"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "Email and password are required")
}

func TestRouter_CatalogoPublicoYOrdenado(t *testing.T) {
	app := newTestApp(t, true)

	resp, raw := call(t, app, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(raw, &cats))
	require.Len(t, cats, 1)
	require.Len(t, cats[0].Phases, 1)
	steps := cats[0].Phases[0].Steps
	require.Len(t, steps, 2)
	assert.Equal(t, "1.2", steps[0].Code)
	assert.Equal(t, "1.10", steps[1].Code)

	resp, _ = call(t, app, http.MethodGet, "/api/categories/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CrearFaseYPaso(t *testing.T) {
	app := newTestApp(t, true)
	n := 2
	phase := dto.CreatePhaseRequest{CategoryID: "seo", Title: "Execution", PhaseNumber: &n}

	resp, _ := call(t, app, http.MethodPost, "/api/phases", "", phase)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	tok := login(t, app, "member@agency.test")
	resp, raw := call(t, app, http.MethodPost, "/api/phases", tok, phase)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var created dto.CreatePhaseResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "seo-p2", created.Phase.ID)

	resp, raw = call(t, app, http.MethodPost, "/api/phases", tok, phase)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "Phase with this number already exists in this category")

	resp, _ = call(t, app, http.MethodPost, "/api/phases", tok, dto.CreatePhaseRequest{CategoryID: "nope", Title: "X", PhaseNumber: &n})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, "/api/steps", tok, dto.CreateStepRequest{PhaseID: "seo-p2", Code: "2.1", Title: "Kickoff"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPost, "/api/steps", tok, dto.CreateStepRequest{PhaseID: "seo-p2", Code: "2.1", Title: "Otra vez"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "Step with this code already exists in this phase")
}

func TestRouter_ActualizarPaso(t *testing.T) {
	app := newTestApp(t, true)
	tok := login(t, app, "member@agency.test")
	status := "completed"

	resp, raw := call(t, app, http.MethodPut, "/api/steps/1.2", tok, dto.UpdateStepRequest{Status: &status})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var out dto.UpdateStepResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.ModifiedCount)

	notes := "ok"
	resp, _ = call(t, app, http.MethodPut, "/api/categories/seo/phases/seo-p1/steps/1.10", tok, dto.UpdateStepRequest{Notes: &notes})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPut, "/api/steps/9.9", tok, dto.UpdateStepRequest{Notes: &notes})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "Step not found")
}

func TestRouter_AltasSoloAdmin(t *testing.T) {
	app := newTestApp(t, true)
	member := login(t, app, "member@agency.test")
	admin := login(t, app, "admin@agency.test")

	resp, _ := call(t, app, http.MethodPost, "/api/clients", member, dto.CreateClientRequest{Name: "Globex"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := call(t, app, http.MethodPost, "/api/clients", admin, dto.CreateClientRequest{Name: "Globex"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodGet, "/api/clients", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var clients []dto.ClientResponse
	require.NoError(t, json.Unmarshal(raw, &clients))
	assert.Len(t, clients, 2)

	resp, _ = call(t, app, http.MethodPost, "/api/categories", admin, dto.CreateCategoryRequest{Title: "Ads"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRouter_TimeTracking(t *testing.T) {
	app := newTestApp(t, true)
	tok := login(t, app, "member@agency.test")
	secs := 120
	entry := dto.LogTimeRequest{
		CategoryID: "seo", CategoryTitle: "SEO", PhaseID: "seo-p1", PhaseTitle: "Learning Process",
		StepID: "1.2", StepTitle: "Earlier", StepCode: "1.2", Seconds: &secs, Date: "2026-03-02",
	}

	resp, _ := call(t, app, http.MethodPost, "/api/time-tracking/log", "", entry)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := call(t, app, http.MethodPost, "/api/time-tracking/log", tok, entry)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, http.MethodGet, "/api/time-tracking/summary?startDate=2026-03-01&endDate=2026-03-31", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var sum dto.TimeSummaryResponse
	require.NoError(t, json.Unmarshal(raw, &sum))
	assert.Equal(t, 120, sum.TotalSeconds)
	assert.Equal(t, 120, sum.ByCategory["seo"].Seconds)

	resp, raw = call(t, app, http.MethodGet, "/api/time-tracking/logs?userId=u-member", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logs []dto.TimeLogResponse
	require.NoError(t, json.Unmarshal(raw, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "u-member", logs[0].UserID)

	resp, _ = call(t, app, http.MethodGet, "/api/time-tracking/summary?startDate=03-2026", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw = call(t, app, http.MethodGet, "/api/time-tracking/report.pdf", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "time-report-")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRouter_Sesiones(t *testing.T) {
	app := newTestApp(t, true)
	tok := login(t, app, "member@agency.test")
	other := login(t, app, "admin@agency.test")

	resp, raw := call(t, app, http.MethodPost, "/api/time-tracking/sessions", tok, dto.OpenSessionRequest{
		CategoryID: "seo", PhaseID: "seo-p1", StepID: "1.2", StepCode: "1.2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var s dto.SessionResponse
	require.NoError(t, json.Unmarshal(raw, &s))
	base := "/api/time-tracking/sessions/" + s.ID

	resp, _ = call(t, app, http.MethodGet, base, other, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "otro usuario no ve la sesión")

	resp, _ = call(t, app, http.MethodPost, base+"/pause", tok, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPost, base+"/start", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPost, base+"/start", tok, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, raw = call(t, app, http.MethodGet, "/api/time-tracking/sessions", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.SessionResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list, 1)

	resp, _ = call(t, app, http.MethodPost, base+"/reset", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPost, base+"/close", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var closed dto.CloseSessionResponse
	require.NoError(t, json.Unmarshal(raw, &closed))
	assert.True(t, closed.Success)
	assert.False(t, closed.Logged, "tras reset no hay tiempo que registrar")

	resp, _ = call(t, app, http.MethodGet, base, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_AlmacenSinConfigurar(t *testing.T) {
	app := newTestApp(t, false)

	resp, raw := call(t, app, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(raw), "Database not configured")
}

func TestRouter_AirtableSinConfigurar(t *testing.T) {
	app := newTestApp(t, false)
	tok, err := pkgjwt.Generate(testJWTSecret, "u-member", "member@agency.test", "member", testIssuer, testExpMin)
	require.NoError(t, err)

	resp, _ := call(t, app, http.MethodGet, "/api/airtable", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := call(t, app, http.MethodGet, "/api/airtable", tok, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Airtable not configured", body.Error)
	assert.Contains(t, body.Message, "AIRTABLE_SECRET_TOKEN")
}

func TestRouter_RutaYMetodoInexistentes(t *testing.T) {
	app := newTestApp(t, true)

	resp, raw := call(t, app, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), `"error"`)

	resp, raw = call(t, app, http.MethodDelete, "/api/clients", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Contains(t, string(raw), "Method not allowed")
}
