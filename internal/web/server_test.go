package web_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acapps/fridgechef/internal/domain"
	"github.com/acapps/fridgechef/internal/recipes"
	"github.com/acapps/fridgechef/internal/service"
	"github.com/acapps/fridgechef/internal/web"
	"github.com/acapps/fridgechef/internal/whatsapp"
)

const threeRecipeJSON = `[{"name":"A","ingredients":["x"],"instructions":["y"]},{"name":"B","ingredients":["x"],"instructions":["y"]},{"name":"C","ingredients":["x"],"instructions":["y"]}]`

const testWebhookURL = "http://localhost:8080/api/whatsapp/webhook"

type fakeGenerator struct {
	response string
	calls    int
}

func (g *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return g.response, nil
}

type fakeFetcher struct {
	dataURL string
}

func (f *fakeFetcher) FetchAsDataURL(_ context.Context, _ string) (string, error) {
	return f.dataURL, nil
}

type recordingSender struct {
	bodies []string
}

func (s *recordingSender) Send(_ context.Context, _, body string) error {
	s.bodies = append(s.bodies, body)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer wires a real service and dispatcher around fakes, mirroring
// the production composition in cmd/fridgechef.
func newTestServer(gen *fakeGenerator, sender *recordingSender) *web.Server {
	logger := testLogger()
	svc := service.NewRecipeService(gen, &fakeFetcher{dataURL: "data:image/jpeg;base64,AAAA"}, &recipes.Extractor{}, logger)

	var dispatcher web.Dispatcher
	if sender != nil {
		d := whatsapp.NewDispatcher(sender, time.Millisecond, logger)
		dispatcher = d
	}
	return web.NewServer(svc, dispatcher, testWebhookURL, logger)
}

func postForm(t *testing.T, srv *web.Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestGenerateRecipes(t *testing.T) {
	gen := &fakeGenerator{response: threeRecipeJSON}
	srv := newTestServer(gen, nil)

	body := `{"image":"data:image/jpeg;base64,AAAA"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-recipes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Recipes []domain.Recipe `json:"recipes"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Recipes, 3)
	assert.Equal(t, "A", resp.Recipes[0].Name)
	assert.Equal(t, "C", resp.Recipes[2].Name)
}

func TestGenerateRecipesMissingImage(t *testing.T) {
	srv := newTestServer(&fakeGenerator{response: threeRecipeJSON}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-recipes", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No image provided")
}

func TestGenerateRecipesNotConfigured(t *testing.T) {
	logger := testLogger()
	svc := service.NewRecipeService(nil, nil, &recipes.Extractor{}, logger)
	srv := web.NewServer(svc, nil, testWebhookURL, logger)

	body := `{"image":"data:image/jpeg;base64,AAAA"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-recipes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "not configured")
}

func TestGenerateRecipesParseFailure(t *testing.T) {
	srv := newTestServer(&fakeGenerator{response: "no json here"}, nil)

	body := `{"image":"data:image/jpeg;base64,AAAA"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-recipes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to parse recipe data")
	// The raw model text stays server-side.
	assert.NotContains(t, rec.Body.String(), "no json here")
}

func TestWebhookFullFlow(t *testing.T) {
	gen := &fakeGenerator{response: threeRecipeJSON}
	sender := &recordingSender{}
	srv := newTestServer(gen, sender)

	rec := postForm(t, srv, "/api/whatsapp/webhook", url.Values{
		"From":      {"whatsapp:+15551234567"},
		"NumMedia":  {"1"},
		"MediaUrl0": {"https://api.twilio.com/media/0"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	// Processing notice, three recipes in order, completion notice.
	require.Len(t, sender.bodies, 5)
	assert.Contains(t, sender.bodies[1], "Recipe 1: A")
	assert.Contains(t, sender.bodies[2], "Recipe 2: B")
	assert.Contains(t, sender.bodies[3], "Recipe 3: C")
}

func TestWebhookNoImageSendsWelcome(t *testing.T) {
	gen := &fakeGenerator{response: threeRecipeJSON}
	sender := &recordingSender{}
	srv := newTestServer(gen, sender)

	rec := postForm(t, srv, "/api/whatsapp/webhook", url.Values{
		"From":     {"whatsapp:+15551234567"},
		"NumMedia": {"0"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.bodies, 1)
	assert.Contains(t, sender.bodies[0], "Welcome")
	// The generation pipeline is never invoked without an image.
	assert.Zero(t, gen.calls)
}

func TestWebhookMissingSender(t *testing.T) {
	srv := newTestServer(&fakeGenerator{response: threeRecipeJSON}, &recordingSender{})

	rec := postForm(t, srv, "/api/whatsapp/webhook", url.Values{
		"NumMedia": {"1"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookNotConfigured(t *testing.T) {
	srv := newTestServer(&fakeGenerator{response: threeRecipeJSON}, nil)

	rec := postForm(t, srv, "/api/whatsapp/webhook", url.Values{
		"From": {"whatsapp:+15551234567"},
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWebhookFailureSendsErrorNotice(t *testing.T) {
	gen := &fakeGenerator{response: "the model rambled instead"}
	sender := &recordingSender{}
	srv := newTestServer(gen, sender)

	rec := postForm(t, srv, "/api/whatsapp/webhook", url.Values{
		"From":      {"whatsapp:+15551234567"},
		"NumMedia":  {"1"},
		"MediaUrl0": {"https://api.twilio.com/media/0"},
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, sender.bodies, 1)
	assert.Contains(t, sender.bodies[0], "Sorry")
}

func TestWebhookGet(t *testing.T) {
	srv := newTestServer(&fakeGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/whatsapp/webhook", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "WhatsApp webhook is active", rec.Body.String())
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		sender     *recordingSender
		configured bool
	}{
		{name: "configured", sender: &recordingSender{}, configured: true},
		{name: "unconfigured", sender: nil, configured: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeGenerator{response: threeRecipeJSON}, tt.sender)

			req := httptest.NewRequest(http.MethodGet, "/api/whatsapp/status", nil)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				Configured bool   `json:"configured"`
				WebhookURL string `json:"webhookUrl"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.configured, resp.Configured)
			assert.Equal(t, testWebhookURL, resp.WebhookURL)
		})
	}
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(&fakeGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Leftover Recipe AI")
}
