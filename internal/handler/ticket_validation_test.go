package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests cover the validation layer of the ticket handlers: every
// case here must be rejected before any repository call, so the handler
// is constructed without dependencies.

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestCrearTicket_Validation(t *testing.T) {
	t.Parallel()

	h := &TicketHandler{}
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"titulo": `},
		{"missing titulo", `{"descripcion":"x"}`},
		{"blank titulo", `{"titulo":"   "}`},
		{"unknown prioridad", `{"titulo":"impresora rota","prioridad":"critica"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Crear, "/tickets", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestActualizarTicket_Validation(t *testing.T) {
	t.Parallel()

	h := &TicketHandler{}
	e := echo.New()
	tests := []struct {
		name string
		body string
	}{
		{"unknown estado", `{"estado":"open"}`},
		{"unknown prioridad", `{"prioridad":"critica"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/tickets/1", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues("1")
			require.NoError(t, h.Actualizar(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestActualizarTicket_BadID(t *testing.T) {
	t.Parallel()

	h := &TicketHandler{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/tickets/abc", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Actualizar(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListarTickets_BadFilter(t *testing.T) {
	t.Parallel()

	h := &TicketHandler{}
	e := echo.New()
	for _, target := range []string{"/tickets?estado=open", "/tickets?prioridad=critical"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.Listar(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestCrearInteraccion_Validation(t *testing.T) {
	t.Parallel()

	h := &InteraccionHandler{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/tickets/1/interacciones", strings.NewReader(`{"mensaje":"  "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Crear(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryInt(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tickets?page=3&limit=abc", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, 3, queryInt(c, "page", 1))
	assert.Equal(t, 20, queryInt(c, "limit", 20)) // non-numeric falls back
	assert.Equal(t, 1, queryInt(c, "missing", 1))
}
