package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imontoya/soporte-tickets/internal/auth"
	"github.com/imontoya/soporte-tickets/internal/middleware"
	"github.com/imontoya/soporte-tickets/internal/model"
	"github.com/imontoya/soporte-tickets/internal/repository"
)

// fakeUserStore serves the auth handlers without a database.
type fakeUserStore struct {
	byID map[uint64]model.Usuario
}

func (f *fakeUserStore) Create(ctx context.Context, nombre, email, password string, rol model.Rol, cost int) (model.Usuario, error) {
	return model.Usuario{}, repository.ErrEmailExists
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (model.Usuario, error) {
	return model.Usuario{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint64) (model.Usuario, error) {
	u, ok := f.byID[id]
	if !ok {
		return model.Usuario{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) TouchUltimoAcceso(ctx context.Context, id uint64) error { return nil }

func TestRegistro_Validation(t *testing.T) {
	t.Parallel()

	h := &AuthHandler{}
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"nombre": `},
		{"missing password", `{"nombre":"Ana","email":"ana@example.com"}`},
		{"missing email", `{"nombre":"Ana","password":"s3cret"}`},
		{"email without at sign", `{"nombre":"Ana","email":"ana","password":"s3cret"}`},
		{"unknown rol", `{"nombre":"Ana","email":"ana@example.com","password":"s3cret","rol":"root"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Registro, "/auth/registro", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()

	h := &AuthHandler{}
	for _, body := range []string{`{"email":"ana@example.com"}`, `{"password":"s3cret"}`} {
		rec := postJSON(t, h.Login, "/auth/login", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

// A token may outlive its user row: Me must report the missing *user*,
// not fall through to the generic ticket not-found message.
func TestMe_UserGone(t *testing.T) {
	t.Parallel()

	h := &AuthHandler{Users: &fakeUserStore{}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ActorKey, auth.Actor{ID: 42, Rol: model.RolUsuario})

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "usuario no encontrado")
}

func TestMe_ReturnsStoredRow(t *testing.T) {
	t.Parallel()

	store := &fakeUserStore{byID: map[uint64]model.Usuario{
		42: {ID: 42, Nombre: "Ana", Email: "ana@example.com", Rol: model.RolUsuario, Activo: true},
	}}
	h := &AuthHandler{Users: store}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ActorKey, auth.Actor{ID: 42, Rol: model.RolUsuario})

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@example.com")
}
