package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriplan-dashboard/internal/domain/plans"
	"nutriplan-dashboard/internal/domain/recipes"
	"nutriplan-dashboard/internal/domain/users"
	"nutriplan-dashboard/internal/platform/httpclient"
	"nutriplan-dashboard/internal/ports/upstream"
)

type countingRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (c *countingRecorder) Fallback(source, op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, source+":"+op)
}

type fakeUpstream struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
	routes   map[string]func(w http.ResponseWriter)
}

func newUpstream(t *testing.T, routes map[string]func(w http.ResponseWriter)) (*fakeUpstream, string) {
	t.Helper()
	f := &fakeUpstream{routes: routes}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.RequestURI()
		b, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, key)
		f.bodies = append(f.bodies, string(b))
		f.mu.Unlock()

		h, ok := f.routes[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w)
	}))
	t.Cleanup(ts.Close)
	return f, ts.URL
}

func jsonBody(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newCaller(t *testing.T, base string) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(httpclient.Config{
		BaseURLs: map[httpclient.Service]string{
			httpclient.ServiceUsers:   base,
			httpclient.ServicePlans:   base,
			httpclient.ServiceRecipes: base,
		},
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func deadBase(t *testing.T) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := ts.URL
	ts.Close()
	return base
}

// ---- users ----

func TestUsers_List_Live(t *testing.T) {
	up, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/usuarios?role=paciente": jsonBody(200, `[{"id":"7","nome":"Bia","email":"bia@x.com","role":"paciente","nutricionista_id":"1","data_criacao":"2025-05-01T10:00:00"}]`),
	})
	repo := NewUsersRepo(newCaller(t, base), nil, Options{})

	l, err := repo.List(context.Background(), users.ListFilter{Role: users.RolePatient})
	require.NoError(t, err)

	assert.Equal(t, upstream.OriginLive, l.Origin)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "Bia", l.Items[0].Name)
	assert.True(t, l.Items[0].CreatedAt.Known())
	assert.Equal(t, []string{"GET /api/usuarios?role=paciente"}, up.requests)
}

func TestUsers_List_EmptyArrayIsNotFallback(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/usuarios": jsonBody(200, `[]`),
	})
	rec := &countingRecorder{}
	repo := NewUsersRepo(newCaller(t, base), nil, Options{Recorder: rec})

	l, err := repo.List(context.Background(), users.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, upstream.OriginLive, l.Origin)
	assert.Empty(t, l.Items)
	assert.NotNil(t, l.Items)
	assert.Empty(t, rec.calls)
}

func TestUsers_List_FailureReturnsFilteredFallback(t *testing.T) {
	rec := &countingRecorder{}
	repo := NewUsersRepo(newCaller(t, deadBase(t)), nil, Options{Recorder: rec})

	l, err := repo.List(context.Background(), users.ListFilter{Role: users.RolePatient})
	require.NoError(t, err)

	assert.True(t, l.FromFallback())
	assert.Error(t, l.Cause)
	require.Len(t, l.Items, 2)
	for _, u := range l.Items {
		assert.Equal(t, users.RolePatient, u.Role)
	}
	assert.Equal(t, []string{"users:list"}, rec.calls)
}

func TestUsers_List_InjectedFallback(t *testing.T) {
	fb := []users.User{{ID: "mock-x", Name: "X", Role: users.RolePractitioner}}
	repo := NewUsersRepo(newCaller(t, deadBase(t)), fb, Options{})

	l, err := repo.List(context.Background(), users.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, fb, l.Items)
}

func TestUsers_PatientsOfUsesPractitionerEndpoint(t *testing.T) {
	up, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/nutricionistas/n%201/pacientes": jsonBody(200, `[{"id":"p","nome":"P","role":"paciente"}]`),
	})
	repo := NewUsersRepo(newCaller(t, base), nil, Options{})

	l, err := repo.List(context.Background(), users.ListFilter{PractitionerID: "n 1"})
	require.NoError(t, err)
	assert.Len(t, l.Items, 1)
	assert.Equal(t, []string{"GET /api/nutricionistas/n%201/pacientes"}, up.requests)
}

func TestUsers_GetByID(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/usuarios/42": jsonBody(200, `{"id":"42","nome":"Zé","email":"ze@x.com","role":"nutricionista"}`),
	})
	repo := NewUsersRepo(newCaller(t, base), nil, Options{})
	ctx := context.Background()

	u, origin, err := repo.GetByID(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, upstream.OriginLive, origin)
	assert.Equal(t, "Zé", u.Name)

	// 404 upstream: se busca en el fallback
	u, origin, err = repo.GetByID(ctx, "mock-user-2")
	require.NoError(t, err)
	assert.Equal(t, upstream.OriginFallback, origin)
	assert.Equal(t, "João Santos", u.Name)

	_, _, err = repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestUsers_CreateSurfacesUpstreamMessage(t *testing.T) {
	up, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"POST /api/usuarios": jsonBody(400, `{"detail":"Email já cadastrado"}`),
	})
	repo := NewUsersRepo(newCaller(t, base), nil, Options{})

	_, err := repo.Create(context.Background(), users.CreateInput{Name: "A", Email: "a@x.com", Role: users.RolePractitioner})

	var he *httpclient.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, 400, he.StatusCode)
	assert.Equal(t, "Email já cadastrado", he.Message)
	assert.JSONEq(t, `{"nome":"A","email":"a@x.com","role":"nutricionista"}`, up.bodies[0])
}

func TestUsers_WritesNeverFallBack(t *testing.T) {
	rec := &countingRecorder{}
	repo := NewUsersRepo(newCaller(t, deadBase(t)), nil, Options{Recorder: rec})
	ctx := context.Background()

	_, err := repo.Update(ctx, "mock-user-2", users.UpdateInput{})
	assert.Error(t, err)
	assert.Error(t, repo.Delete(ctx, "mock-user-2"))
	assert.Empty(t, rec.calls)
}

func TestUsers_DeleteAcceptsNoContent(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"DELETE /api/usuarios/9": func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
	})
	repo := NewUsersRepo(newCaller(t, base), nil, Options{})

	assert.NoError(t, repo.Delete(context.Background(), "9"))
}

func TestList_CanceledContextIsAnError(t *testing.T) {
	repo := NewUsersRepo(newCaller(t, deadBase(t)), nil, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx, users.ListFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

// ---- plans ----

func TestPlans_List_MapsIDAndFiltersByPatient(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /planos/": jsonBody(200, `[{"_id":"a","paciente_id":"u1","titulo":"A","data_inicio":"2025-01-01"},{"_id":"b","paciente_id":"u2","titulo":"B"}]`),
	})
	repo := NewPlansRepo(newCaller(t, base), nil, Options{})

	l, err := repo.List(context.Background(), plans.ListFilter{PatientID: "u1"})
	require.NoError(t, err)

	require.Len(t, l.Items, 1)
	assert.Equal(t, "a", l.Items[0].ID)
	assert.Equal(t, "2025-01-01", l.Items[0].StartDate.String())
}

func TestPlans_List_NullBodyFallsBack(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /planos/": jsonBody(200, `null`),
	})
	repo := NewPlansRepo(newCaller(t, base), nil, Options{})

	l, err := repo.List(context.Background(), plans.ListFilter{})
	require.NoError(t, err)
	assert.True(t, l.FromFallback())
	assert.ErrorIs(t, l.Cause, ErrNoData)
	assert.Len(t, l.Items, len(plans.DefaultFallback().Plans))
}

func TestPlans_GetWithItems(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /planos/p1": jsonBody(200, `{"_id":"p1","titulo":"Plano","itens":[{"_id":"i1","plano_mestre_id":"p1","horario":"07:00","nome_refeicao":"Café","descricao":"Pão"}]}`),
		"GET /planos/p2": jsonBody(200, `{"_id":"p2","titulo":"Sem itens"}`),
	})
	repo := NewPlansRepo(newCaller(t, base), nil, Options{})
	ctx := context.Background()

	p, origin, err := repo.GetWithItems(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, upstream.OriginLive, origin)
	assert.Equal(t, "p1", p.ID)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "i1", p.Items[0].ID)

	p, _, err = repo.GetWithItems(ctx, "p2")
	require.NoError(t, err)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)

	p, origin, err = repo.GetWithItems(ctx, "mock-plan-1")
	require.NoError(t, err)
	assert.Equal(t, upstream.OriginFallback, origin)
	assert.Len(t, p.Items, 3)
}

func TestPlans_Items(t *testing.T) {
	up, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /planos/p1/itens":    jsonBody(200, `[{"_id":"i1","plano_mestre_id":"p1"}]`),
		"POST /planos/itens/":     jsonBody(201, `{"_id":"i2","plano_mestre_id":"p1","horario":"12:00","nome_refeicao":"Almoço","descricao":""}`),
		"DELETE /planos/itens/i1": func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
	})
	repo := NewPlansRepo(newCaller(t, base), nil, Options{})
	ctx := context.Background()

	l, err := repo.ListItems(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "i1", l.Items[0].ID)

	it, err := repo.CreateItem(ctx, plans.ItemInput{PlanID: "p1", Time: "12:00", MealName: "Almoço"})
	require.NoError(t, err)
	assert.Equal(t, "i2", it.ID)

	require.NoError(t, repo.DeleteItem(ctx, "i1"))
	assert.Contains(t, up.requests, "DELETE /planos/itens/i1")
}

func TestPlans_ListItems_FallbackScopedToPlan(t *testing.T) {
	repo := NewPlansRepo(newCaller(t, deadBase(t)), nil, Options{})

	l, err := repo.ListItems(context.Background(), "mock-plan-2")
	require.NoError(t, err)
	assert.True(t, l.FromFallback())
	require.Len(t, l.Items, 1)
	assert.Equal(t, "mock-item-4", l.Items[0].ID)
}

// ---- recipes ----

func TestRecipes_ListEndpoints(t *testing.T) {
	up, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/receitas":                  jsonBody(200, `[{"id":"1","nome":"A","tempoPreparo":10},{"id":"2","nome":"B","tempoPreparo":50}]`),
		"GET /api/receitas/paciente/u2":      jsonBody(200, `[{"id":"1","nome":"A","pacienteId":"u2"}]`),
		"GET /api/receitas/nutricionista/u1": jsonBody(200, `[]`),
	})
	repo := NewRecipesRepo(newCaller(t, base), nil, Options{})
	ctx := context.Background()

	l, err := repo.List(ctx, recipes.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, l.Items, 2)

	l, err = repo.List(ctx, recipes.ListFilter{PatientID: "u2"})
	require.NoError(t, err)
	assert.Len(t, l.Items, 1)

	l, err = repo.List(ctx, recipes.ListFilter{PractitionerID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, l.Items)
	assert.Equal(t, upstream.OriginLive, l.Origin)

	assert.Equal(t, []string{
		"GET /api/receitas",
		"GET /api/receitas/paciente/u2",
		"GET /api/receitas/nutricionista/u1",
	}, up.requests)
}

func TestRecipes_FallbackByPatient(t *testing.T) {
	repo := NewRecipesRepo(newCaller(t, deadBase(t)), nil, Options{})

	l, err := repo.List(context.Background(), recipes.ListFilter{PatientID: "mock-user-3"})
	require.NoError(t, err)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "mock-recipe-3", l.Items[0].ID)
}

func TestRecipes_ServerErrorFallsBack(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/receitas": jsonBody(500, `{"message":"db down"}`),
	})
	repo := NewRecipesRepo(newCaller(t, base), nil, Options{})

	l, err := repo.List(context.Background(), recipes.ListFilter{})
	require.NoError(t, err)
	assert.True(t, l.FromFallback())
	assert.EqualError(t, l.Cause, "db down")
	assert.Len(t, l.Items, 3)
}

func TestRecipes_UndecodableBodyFallsBack(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/receitas": jsonBody(200, `{"not":"a list"}`),
	})
	repo := NewRecipesRepo(newCaller(t, base), nil, Options{})

	l, err := repo.List(context.Background(), recipes.ListFilter{})
	require.NoError(t, err)
	assert.True(t, l.FromFallback())
}

func TestRecipes_List_BadRecordIsDroppedNotTheWholeList(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/receitas": jsonBody(200, `[
			{"id":"r1","nome":"Sopa","categoria":"Jantar","tempoPreparo":10},
			{"id":"r2","nome":"Bolo","categoria":"Lanche","tempoPreparo":"30"},
			{"id":"r3","nome":"Torta","categoria":"Lanche","tempoPreparo":{"min":5}},
			null,
			{"id":4,"nome":"Suco","categoria":"Café","tempoPreparo":5,"pacienteId":12}
		]`),
	})
	rec := &countingRecorder{}
	repo := NewRecipesRepo(newCaller(t, base), nil, Options{Recorder: rec})

	l, err := repo.List(context.Background(), recipes.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, upstream.OriginLive, l.Origin)
	assert.Empty(t, rec.calls)
	require.Len(t, l.Items, 3)
	assert.Equal(t, "r1", l.Items[0].ID)
	assert.Equal(t, "r2", l.Items[1].ID)
	assert.Equal(t, 30, l.Items[1].PrepMinutes)
	assert.Equal(t, "4", l.Items[2].ID)
	assert.Equal(t, "12", l.Items[2].PatientID)
}

func TestUsers_List_NumericIDs(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/usuarios": jsonBody(200, `[{"id":1,"nome":"Ana","email":"ana@x.com","role":"paciente","nutricionista_id":9}]`),
	})
	repo := NewUsersRepo(newCaller(t, base), nil, Options{})

	l, err := repo.List(context.Background(), users.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, upstream.OriginLive, l.Origin)
	require.Len(t, l.Items, 1)
	assert.Equal(t, "1", l.Items[0].ID)
	assert.Equal(t, "9", l.Items[0].PractitionerID)
}

func TestRecipes_List_NoReadableRecordFallsBack(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/receitas": jsonBody(200, `[{"id":"r1","tempoPreparo":"meia hora"},null]`),
	})
	repo := NewRecipesRepo(newCaller(t, base), nil, Options{})

	l, err := repo.List(context.Background(), recipes.ListFilter{})
	require.NoError(t, err)

	assert.True(t, l.FromFallback())
	assert.ErrorIs(t, l.Cause, ErrNoValidRecords)
	assert.Len(t, l.Items, 3)
}

func TestRecipes_List_OversizedBodyFallsBackWithReason(t *testing.T) {
	_, base := newUpstream(t, map[string]func(http.ResponseWriter){
		"GET /api/receitas": jsonBody(200, `[{"id":"r1","nome":"Sopa","categoria":"Jantar","tempoPreparo":10}]`),
	})
	c, err := httpclient.New(httpclient.Config{
		BaseURLs:     map[httpclient.Service]string{httpclient.ServiceRecipes: base},
		MaxBodyBytes: 32,
	})
	require.NoError(t, err)
	repo := NewRecipesRepo(c, nil, Options{})

	l, err := repo.List(context.Background(), recipes.ListFilter{})
	require.NoError(t, err)

	assert.True(t, l.FromFallback())
	assert.ErrorIs(t, l.Cause, httpclient.ErrBodyTooLarge)
}
