package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriplan-dashboard/internal/adapters/storage/memory"
	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/platform/metrics"
	"nutriplan-dashboard/internal/router"
)

// fakeService simula un microservicio con rutas fijas "METHOD /path".
type fakeService struct {
	mu     sync.Mutex
	routes map[string]string
	status map[string]int
	seen   []string
	hdrs   []http.Header
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.RequestURI()

	f.mu.Lock()
	f.seen = append(f.seen, key)
	f.hdrs = append(f.hdrs, r.Header.Clone())
	body, ok := f.routes[key]
	code := f.status[key]
	f.mu.Unlock()

	if r.URL.Path == "/health" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if code == 0 {
		code = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

type env struct {
	api     *httptest.Server
	users   *fakeService
	plans   *fakeService
	recipes *fakeService
}

func setup(t *testing.T, plansDown bool) *env {
	t.Helper()

	today := time.Now().UTC()
	e := &env{
		users: &fakeService{routes: map[string]string{
			"GET /api/usuarios?role=paciente": `[{"id":"u1","nome":"Bia","email":"bia@x.com","role":"paciente","nutricionista_id":"n1","data_criacao":"` + today.Add(-3*time.Hour).Format(time.RFC3339) + `"},{"id":"u2","nome":"Caio","email":"caio@x.com","role":"paciente","nutricionista_id":"n1"}]`,
			"GET /api/usuarios":               `[]`,
			"POST /api/usuarios":              `{"detail":"Email já cadastrado"}`,
		}, status: map[string]int{"POST /api/usuarios": http.StatusBadRequest}},
		plans: &fakeService{routes: map[string]string{
			"GET /planos/":            `[{"_id":"p1","paciente_id":"u1","nutricionista_id":"n1","titulo":"Plano Leve","data_inicio":"` + today.Add(-2*time.Hour).Format(time.RFC3339) + `"}]`,
			"GET /planos/p1/itens":    `[{"_id":"i1","plano_mestre_id":"p1","horario":"07:00","nome_refeicao":"Café","descricao":"Pão"}]`,
			"DELETE /planos/itens/i1": ``,
			"DELETE /planos/p1":       ``,
		}, status: map[string]int{"DELETE /planos/itens/i1": http.StatusNoContent, "DELETE /planos/p1": http.StatusNoContent}},
		recipes: &fakeService{routes: map[string]string{
			"GET /api/receitas": `[{"id":"r1","nome":"Sopa","categoria":"Jantar","tempoPreparo":40,"data_criacao":"` + today.Add(-1*time.Hour).Format(time.RFC3339) + `"},{"id":"r2","nome":"Suco","categoria":"Café","tempoPreparo":5},{"id":"r3","nome":"Salada","categoria":"Almoço","tempoPreparo":10}]`,
		}},
	}

	usersSrv := httptest.NewServer(e.users)
	recipesSrv := httptest.NewServer(e.recipes)
	t.Cleanup(usersSrv.Close)
	t.Cleanup(recipesSrv.Close)

	plansURL := ""
	if plansDown {
		s := httptest.NewServer(http.NotFoundHandler())
		plansURL = s.URL
		s.Close()
	} else {
		s := httptest.NewServer(e.plans)
		t.Cleanup(s.Close)
		plansURL = s.URL
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURLs: map[httpclient.Service]string{
			httpclient.ServiceUsers:   usersSrv.URL,
			httpclient.ServicePlans:   plansURL,
			httpclient.ServiceRecipes: recipesSrv.URL,
		},
		Timeout: 2 * time.Second,
		Circuit: httpclient.Circuit{Cache: memory.NewHealthCache(), Cooldown: time.Minute},
	})
	require.NoError(t, err)

	e.api = httptest.NewServer(router.NewRouter(router.Options{
		Client:              client,
		Metrics:             metrics.New(),
		RecentActivityLimit: 3,
	}))
	t.Cleanup(e.api.Close)
	return e
}

func doReq(t *testing.T, base, method, path string, body any) (int, []byte, http.Header) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, base+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, out, res.Header
}

func TestHTTP_Health(t *testing.T) {
	e := setup(t, false)

	st, body, hdr := doReq(t, e.api.URL, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))
	assert.NotEmpty(t, hdr.Get("X-Request-ID"))
}

func TestHTTP_DashboardWithPlansDown(t *testing.T) {
	e := setup(t, true)

	st, body, _ := doReq(t, e.api.URL, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, st, string(body))

	var ov struct {
		Failed         []string       `json:"failed"`
		Stats          map[string]int `json:"stats"`
		RecentActivity []any          `json:"recent_activity"`
	}
	require.NoError(t, json.Unmarshal(body, &ov))

	assert.Equal(t, []string{"plans"}, ov.Failed)
	assert.Equal(t, 2, ov.Stats["total_patients"])
	assert.Equal(t, 3, ov.Stats["total_recipes"])
	assert.Equal(t, 0, ov.Stats["active_plans"])
	assert.NotNil(t, ov.RecentActivity)
	assert.Empty(t, ov.RecentActivity)
}

func TestHTTP_DashboardAllHealthy(t *testing.T) {
	e := setup(t, false)

	st, body, _ := doReq(t, e.api.URL, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, st, string(body))

	var ov struct {
		Failed         []string `json:"failed"`
		RecentActivity []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"recent_activity"`
	}
	require.NoError(t, json.Unmarshal(body, &ov))

	assert.Empty(t, ov.Failed)
	require.Len(t, ov.RecentActivity, 3)
	assert.Equal(t, "Receita criada: Sopa", ov.RecentActivity[0].Text)
	assert.Equal(t, "Plano criado: Plano Leve", ov.RecentActivity[1].Text)
	assert.Equal(t, "Paciente cadastrado: Bia", ov.RecentActivity[2].Text)
}

func TestHTTP_ListFallbackAndEmptyLive(t *testing.T) {
	e := setup(t, true)

	st, body, _ := doReq(t, e.api.URL, http.MethodGet, "/plans", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `"origin":"fallback"`)
	assert.Contains(t, string(body), `"mock-plan-1"`)

	st, body, _ = doReq(t, e.api.URL, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `{"data":[],"origin":"live"}`, string(body))
}

func TestHTTP_CreateUserErrors(t *testing.T) {
	e := setup(t, false)

	st, body, _ := doReq(t, e.api.URL, http.MethodPost, "/users", map[string]any{"nome": "A", "email": "bad", "role": "paciente"})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Contains(t, string(body), "email")

	st, body, _ = doReq(t, e.api.URL, http.MethodPost, "/users", map[string]any{"nome": "A", "email": "a@x.com", "role": "nutricionista"})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.JSONEq(t, `{"status":"Error","error":"Email já cadastrado"}`, string(body))
}

func TestHTTP_DeletePlanCascade(t *testing.T) {
	e := setup(t, false)

	st, _, _ := doReq(t, e.api.URL, http.MethodDelete, "/plans/p1", nil)
	assert.Equal(t, http.StatusConflict, st)

	st, body, _ := doReq(t, e.api.URL, http.MethodDelete, "/plans/p1?cascade=true", nil)
	require.Equal(t, http.StatusNoContent, st, string(body))

	e.plans.mu.Lock()
	defer e.plans.mu.Unlock()
	var deletes []string
	for _, s := range e.plans.seen {
		if strings.HasPrefix(s, "DELETE") {
			deletes = append(deletes, s)
		}
	}
	assert.Equal(t, []string{"DELETE /planos/itens/i1", "DELETE /planos/p1"}, deletes)
}

func TestHTTP_RequestIDPropagatesUpstream(t *testing.T) {
	e := setup(t, false)

	req, err := http.NewRequest(http.MethodGet, e.api.URL+"/recipes", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-42")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	e.recipes.mu.Lock()
	defer e.recipes.mu.Unlock()
	require.NotEmpty(t, e.recipes.hdrs)
	assert.Equal(t, "trace-42", e.recipes.hdrs[0].Get("X-Request-ID"))
}

func TestHTTP_StatusAndMetrics(t *testing.T) {
	e := setup(t, true)

	st, body, _ := doReq(t, e.api.URL, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `{"services":{"usuarios":true,"planos":false,"receitas":true},"all_up":false,"some_down":true}`, string(body))

	_, _, _ = doReq(t, e.api.URL, http.MethodGet, "/plans", nil)

	st, body, _ = doReq(t, e.api.URL, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), `nutriplan_fallback_total{op="list",source="plans"}`)
	assert.Contains(t, string(body), `nutriplan_http_requests_total`)
}
