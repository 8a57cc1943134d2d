package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imontoya/soporte-tickets/internal/auth"
	"github.com/imontoya/soporte-tickets/internal/model"
	"github.com/imontoya/soporte-tickets/internal/repository"
	"github.com/imontoya/soporte-tickets/internal/utils"
)

const testSecret = "test-secret"

// fakeUserLoader stands in for the credential store.
type fakeUserLoader struct {
	users map[uint64]model.Usuario
}

func (f *fakeUserLoader) GetByID(_ context.Context, id uint64) (model.Usuario, error) {
	u, ok := f.users[id]
	if !ok {
		return model.Usuario{}, repository.ErrNotFound
	}
	return u, nil
}

func newLoader() *fakeUserLoader {
	return &fakeUserLoader{users: map[uint64]model.Usuario{
		1: {ID: 1, Nombre: "Ana", Rol: model.RolAdmin, Activo: true},
		2: {ID: 2, Nombre: "Beto", Rol: model.RolUsuario, Activo: true},
		3: {ID: 3, Nombre: "Caro", Rol: model.RolUsuario, Activo: false},
	}}
}

// run sends a request through JWTAuth into a probe handler that records
// the actor it saw.
func run(t *testing.T, authz string) (*httptest.ResponseRecorder, *auth.Actor) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *auth.Actor
	h := JWTAuth(testSecret, newLoader())(func(c echo.Context) error {
		a, ok := ActorFrom(c)
		require.True(t, ok, "actor must be present in context")
		seen = &a
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, seen
}

func bearerFor(t *testing.T, id uint64, rol model.Rol) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, id, rol)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	rec, _ := run(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_MalformedToken(t *testing.T) {
	t.Parallel()

	rec, _ := run(t, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_UnknownUser(t *testing.T) {
	t.Parallel()

	rec, _ := run(t, bearerFor(t, 99, model.RolUsuario))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_InactiveUser(t *testing.T) {
	t.Parallel()

	// A syntactically valid, unexpired token for a deactivated account
	// is rejected by the per-request store lookup.
	rec, _ := run(t, bearerFor(t, 3, model.RolUsuario))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ActorFromStoreNotToken(t *testing.T) {
	t.Parallel()

	// The token claims an admin role, but the stored row says usuario:
	// the store wins.
	rec, seen := run(t, bearerFor(t, 2, model.RolAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, uint64(2), seen.ID)
	assert.Equal(t, model.RolUsuario, seen.Rol)
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for _, tt := range []struct {
		name  string
		actor interface{}
		want  int
	}{
		{"admin passes", auth.Actor{ID: 1, Rol: model.RolAdmin}, http.StatusOK},
		{"usuario forbidden", auth.Actor{ID: 2, Rol: model.RolUsuario}, http.StatusForbidden},
		{"missing actor forbidden", nil, http.StatusForbidden},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.actor != nil {
				c.Set(ActorKey, tt.actor)
			}
			require.NoError(t, RequireAdmin()(next)(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
