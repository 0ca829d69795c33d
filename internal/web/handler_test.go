package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"transaction_form/internal/formlinks"
	"transaction_form/internal/transactions/ports"
	"transaction_form/platform/apperr"
	"transaction_form/platform/config"
	"transaction_form/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDirectory struct {
	leadCalls int
}

func (f *fakeDirectory) ListAgents(context.Context) ([]ports.Agent, error) {
	return []ports.Agent{{ID: "7", FirstName: "John", LastName: "Smith", Email: "john@example.com"}}, nil
}

func (f *fakeDirectory) GetLead(_ context.Context, personID string) (ports.Lead, error) {
	f.leadCalls++
	if personID == "404" {
		return ports.Lead{}, apperr.NotFound("Lead not found")
	}
	return ports.Lead{ID: personID, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "650-253-0000"}, nil
}

func newEngine(t *testing.T, dir *fakeDirectory) *gin.Engine {
	t.Helper()
	h, err := NewHandler(formlinks.NewBuilder(&config.Config{}), dir)
	require.NoError(t, err)

	engine := gin.New()
	h.RegisterPageRoutes(engine)
	h.RegisterAPIRoutes(engine.Group("/api"))
	return engine
}

func get(t *testing.T, engine *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) httpkit.Envelope {
	t.Helper()
	var env httpkit.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestPageRendersRules(t *testing.T) {
	engine := newEngine(t, &fakeDirectory{})

	for _, path := range []string{"/", "/form"} {
		w := get(t, engine, path)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		body := w.Body.String()
		assert.Contains(t, body, `id="form-rules"`)
		assert.Contains(t, body, `"allowedKinds"`)
		assert.Contains(t, body, "Buyer Broker Agreement (BBA)")
		assert.Contains(t, body, `src="/static/form.js"`)
	}
}

func TestStaticAssets(t *testing.T) {
	engine := newEngine(t, &fakeDirectory{})

	w := get(t, engine, "/static/form.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, w.Body.String(), "/api/transactions")

	w = get(t, engine, "/static/form.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
}

func TestOptionsEndpoint(t *testing.T) {
	engine := newEngine(t, &fakeDirectory{})

	w := get(t, engine, "/api/form/options?buyerOrSeller=seller&transactionType=la")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]any)
	assert.Equal(t, true, data["showListingType"])
	assert.Equal(t, true, data["showDeals"])
	assert.Equal(t, "Showing FUB Deals for Seller Applications", data["conditionalMessage"])
	assert.Len(t, data["allowedTransactionTypes"], 2)

	w = get(t, engine, "/api/form/options?buyerOrSeller=buyer&transactionType=la")
	data = decode(t, w).Data.(map[string]any)
	assert.Equal(t, false, data["showDeals"])
	assert.Equal(t, false, data["showListingType"])
	assert.NotContains(t, data, "conditionalMessage")
}

func TestFormLinkUsesAgentAndLead(t *testing.T) {
	dir := &fakeDirectory{}
	engine := newEngine(t, dir)

	w := get(t, engine, "/api/form-link?buyerOrSeller=seller&transactionType=la&agentId=7&personId=8")
	require.Equal(t, http.StatusOK, w.Code)

	link := decode(t, w).Data.(map[string]any)["url"].(string)
	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "John", q.Get("Name2_First"))
	assert.Equal(t, "Smith", q.Get("Name2_Last"))
	assert.Equal(t, "Jane", q.Get("Name_First"))
	assert.Equal(t, "Doe", q.Get("Name_Last"))
	assert.Equal(t, "jane@example.com", q.Get("Email"))
	assert.Equal(t, "+16502530000", q.Get("PhoneNumber1"))
	assert.Equal(t, 1, dir.leadCalls)
}

func TestFormLinkClientNameOverridesLead(t *testing.T) {
	engine := newEngine(t, &fakeDirectory{})

	w := get(t, engine, "/api/form-link?buyerOrSeller=buyer&transactionType=bba&clientName=Mary+Major&personId=8")
	require.Equal(t, http.StatusOK, w.Code)

	u, err := url.Parse(decode(t, w).Data.(map[string]any)["url"].(string))
	require.NoError(t, err)
	assert.Equal(t, "Mary", u.Query().Get("Name1_First"))
	assert.Equal(t, "Major", u.Query().Get("Name1_Last"))
}

func TestFormLinkFailsClosed(t *testing.T) {
	engine := newEngine(t, &fakeDirectory{})

	w := get(t, engine, "/api/form-link?buyerOrSeller=buyer&transactionType=la&agentId=7")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Nil(t, env.Data)

	w = get(t, engine, "/api/form-link?buyerOrSeller=seller&transactionType=uc&personId=404")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFormLinkUnknownAgent(t *testing.T) {
	dir := &fakeDirectory{}
	engine := newEngine(t, dir)

	w := get(t, engine, "/api/form-link?buyerOrSeller=seller&transactionType=la&agentId=99&personId=8")
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Agent not found", env.Error)
	assert.Nil(t, env.Data)
	assert.Zero(t, dir.leadCalls)
}
