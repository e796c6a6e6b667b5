package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faraz1977/ai-visionary/internal/checkout"
	"github.com/faraz1977/ai-visionary/internal/domain"
	"github.com/faraz1977/ai-visionary/internal/middleware"
	"github.com/faraz1977/ai-visionary/internal/session"
	"github.com/faraz1977/ai-visionary/internal/workflow"
)

type fakeEditor struct {
	result domain.Image
	err    error
}

func (f *fakeEditor) Edit(ctx context.Context, source domain.Image, tool domain.ToolID) (domain.Image, error) {
	if f.err != nil {
		return domain.Image{}, f.err
	}
	return f.result, nil
}

func newTestApp(editor *fakeEditor) *App {
	logger := zerolog.New(io.Discard)
	sim := checkout.NewSimulator(checkout.Options{
		ProcessingDelay: time.Millisecond,
		ConfirmDelay:    time.Millisecond,
	}, logger)
	return &App{
		Logger:        logger,
		Sessions:      session.NewManager(),
		Workflow:      workflow.NewController(editor, logger),
		Checkout:      checkout.NewProcessor(sim, logger),
		SessionSecret: "test-secret",
	}
}

func loginSession(t *testing.T, app *App) *session.State {
	t.Helper()
	return app.Sessions.Login()
}

func authedRequest(method, target string, body io.Reader, st *session.State) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.ContextWithSessionID(req.Context(), st.ID))
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func multipartImage(t *testing.T, tool string, data []byte, mime string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="input.png"`)
	header.Set("Content-Type", mime)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	if tool != "" {
		require.NoError(t, mw.WriteField("tool", tool))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	app := newTestApp(&fakeEditor{})

	rec := httptest.NewRecorder()
	app.Login(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token   string `json:"token"`
		Account struct {
			Name    string `json:"name"`
			Plan    string `json:"plan"`
			Credits int    `json:"credits"`
		} `json:"account"`
		View string `json:"view"`
	}
	decodeJSON(t, rec, &resp)

	assert.Equal(t, "Artist Faraz", resp.Account.Name)
	assert.Equal(t, string(domain.PlanFree), resp.Account.Plan)
	assert.Equal(t, domain.FreeStartingCredits, resp.Account.Credits)
	assert.Equal(t, string(session.ViewDashboard), resp.View)

	sessionID, err := middleware.VerifySessionToken(app.SessionSecret, resp.Token)
	require.NoError(t, err)
	_, err = app.Sessions.Get(sessionID)
	assert.NoError(t, err)
}

func TestRequestWithoutSessionIsRejected(t *testing.T) {
	app := newTestApp(&fakeEditor{})

	rec := httptest.NewRecorder()
	app.Me(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadProcessDownloadFlow(t *testing.T) {
	app := newTestApp(&fakeEditor{result: domain.Image{Data: []byte("edited-bytes"), MIME: "image/png"}})
	st := loginSession(t, app)

	body, contentType := multipartImage(t, "WATERMARK", []byte("source-bytes"), "image/png")
	req := authedRequest(http.MethodPost, "/v1/job/upload", body, st)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.JobUpload(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var uploaded jobDTO
	decodeJSON(t, rec, &uploaded)
	assert.Equal(t, string(domain.JobStatusImageLoaded), uploaded.Status)
	assert.Equal(t, "WATERMARK", uploaded.Tool)

	rec = httptest.NewRecorder()
	app.JobProcess(rec, authedRequest(http.MethodPost, "/v1/job/process", nil, st))
	require.Equal(t, http.StatusOK, rec.Code)

	var processed struct {
		Job     jobDTO `json:"job"`
		Credits int    `json:"credits"`
	}
	decodeJSON(t, rec, &processed)
	assert.Equal(t, string(domain.JobStatusSucceeded), processed.Job.Status)
	assert.Equal(t, "visionary_ai_watermark.png", processed.Job.DownloadName)
	assert.Equal(t, domain.FreeStartingCredits-2, processed.Credits)

	rec = httptest.NewRecorder()
	app.JobResult(rec, authedRequest(http.MethodGet, "/v1/job/result", nil, st))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="visionary_ai_watermark.png"`)
	assert.Equal(t, "edited-bytes", rec.Body.String())
}

func TestProcessWithoutCreditsReturns402AndOpensPricing(t *testing.T) {
	app := newTestApp(&fakeEditor{result: domain.Image{Data: []byte("edited"), MIME: "image/png"}})
	st := loginSession(t, app)
	st.With(func(s *session.State) { s.Account.Credits = 1 })

	body, contentType := multipartImage(t, "UPSCALE", []byte("source"), "image/jpeg")
	req := authedRequest(http.MethodPost, "/v1/job/upload", body, st)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.JobUpload(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	app.JobProcess(rec, authedRequest(http.MethodPost, "/v1/job/process", nil, st))
	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	var errResp struct {
		Error string `json:"error"`
	}
	decodeJSON(t, rec, &errResp)
	assert.Equal(t, "insufficient_credits", errResp.Error)

	rec = httptest.NewRecorder()
	app.SessionState(rec, authedRequest(http.MethodGet, "/v1/session", nil, st))
	require.Equal(t, http.StatusOK, rec.Code)
	var view viewStateDTO
	decodeJSON(t, rec, &view)
	assert.True(t, view.PricingModal)
	assert.Equal(t, 1, view.Account.Credits)
}

func TestProcessFailureMapsToBadGateway(t *testing.T) {
	app := newTestApp(&fakeEditor{err: domain.ErrProviderFailure})
	st := loginSession(t, app)

	body, contentType := multipartImage(t, "ENHANCE", []byte("source"), "image/png")
	req := authedRequest(http.MethodPost, "/v1/job/upload", body, st)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.JobUpload(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	app.JobProcess(rec, authedRequest(http.MethodPost, "/v1/job/process", nil, st))
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var credits int
	st.With(func(s *session.State) { credits = s.Account.Credits })
	assert.Equal(t, domain.FreeStartingCredits, credits, "failed jobs must not debit")
}

func TestUploadRejectsUnknownTool(t *testing.T) {
	app := newTestApp(&fakeEditor{})
	st := loginSession(t, app)

	body, contentType := multipartImage(t, "SEPIA", []byte("source"), "image/png")
	req := authedRequest(http.MethodPost, "/v1/job/upload", body, st)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.JobUpload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadWithoutToolFallsBackToActiveTool(t *testing.T) {
	app := newTestApp(&fakeEditor{})
	st := loginSession(t, app)
	st.With(func(s *session.State) { s.Nav.SelectTool(domain.ToolBackground, true) })

	body, contentType := multipartImage(t, "", []byte("source"), "image/png")
	req := authedRequest(http.MethodPost, "/v1/job/upload", body, st)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.JobUpload(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var uploaded jobDTO
	decodeJSON(t, rec, &uploaded)
	assert.Equal(t, string(domain.ToolBackground), uploaded.Tool)
}

func TestNavigateTransitions(t *testing.T) {
	app := newTestApp(&fakeEditor{})
	st := loginSession(t, app)

	navigate := func(payload string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		app.SessionNavigate(rec, authedRequest(http.MethodPost, "/v1/session/navigate", strings.NewReader(payload), st))
		return rec
	}

	rec := navigate(`{"action":"select-tool","tool":"ENHANCE"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var view viewStateDTO
	decodeJSON(t, rec, &view)
	assert.Equal(t, string(session.ViewTool), view.View)
	assert.Equal(t, string(domain.ToolEnhance), view.ActiveTool)

	rec = navigate(`{"action":"back"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view = viewStateDTO{}
	decodeJSON(t, rec, &view)
	assert.Equal(t, string(session.ViewDashboard), view.View)

	rec = navigate(`{"action":"teleport"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = navigate(`{"action":"select-tool","tool":"NOPE"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutChargeUpgradesAndReturnsDashboard(t *testing.T) {
	app := newTestApp(&fakeEditor{})
	st := loginSession(t, app)
	st.With(func(s *session.State) { s.Nav.OpenPayment() })

	rec := httptest.NewRecorder()
	app.CheckoutCharge(rec, authedRequest(http.MethodPost, "/v1/checkout/charge", nil, st))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Account accountDTO `json:"account"`
		View    string     `json:"view"`
	}
	decodeJSON(t, rec, &resp)
	assert.Equal(t, string(domain.PlanPro), resp.Account.Plan)
	assert.Equal(t, domain.ProCredits, resp.Account.Credits)
	assert.Equal(t, string(session.ViewDashboard), resp.View)
}

func TestCheckoutQuoteHonorsCurrencyOverride(t *testing.T) {
	app := newTestApp(&fakeEditor{})
	st := loginSession(t, app)

	rec := httptest.NewRecorder()
	app.CheckoutQuote(rec, authedRequest(http.MethodGet, "/v1/checkout/quote?currency=PKR&annual=true", nil, st))
	require.Equal(t, http.StatusOK, rec.Code)

	var quote checkout.Quote
	decodeJSON(t, rec, &quote)
	assert.Equal(t, checkout.CurrencyPKR, quote.Currency)
	assert.True(t, quote.AnnualBilling)
}

func TestToolsListReturnsCatalog(t *testing.T) {
	app := newTestApp(&fakeEditor{})
	st := loginSession(t, app)

	rec := httptest.NewRecorder()
	app.ToolsList(rec, authedRequest(http.MethodGet, "/v1/tools", nil, st))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []toolDTO `json:"items"`
	}
	decodeJSON(t, rec, &resp)
	assert.Len(t, resp.Items, 4)
}

func TestLogoutDiscardsSession(t *testing.T) {
	app := newTestApp(&fakeEditor{})
	st := loginSession(t, app)

	rec := httptest.NewRecorder()
	app.Logout(rec, authedRequest(http.MethodPost, "/v1/auth/logout", nil, st))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err := app.Sessions.Get(st.ID)
	assert.Error(t, err)
}
