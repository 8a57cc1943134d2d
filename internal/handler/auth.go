package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/imontoya/soporte-tickets/internal/config"
	"github.com/imontoya/soporte-tickets/internal/model"
	"github.com/imontoya/soporte-tickets/internal/repository"
	"github.com/imontoya/soporte-tickets/internal/utils"
)

// UserStore is the slice of the user repository the auth endpoints
// need.  *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, nombre, email, password string, rol model.Rol, cost int) (model.Usuario, error)
	GetByEmail(ctx context.Context, email string) (model.Usuario, error)
	GetByID(ctx context.Context, id uint64) (model.Usuario, error)
	TouchUltimoAcceso(ctx context.Context, id uint64) error
}

// AuthHandler bundles dependencies for the registration/login/identity
// endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registroReq struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"` // admin | usuario, defaults usuario
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type usuarioResp struct {
	UsuarioID    uint64     `json:"usuario_id"`
	Nombre       string     `json:"nombre"`
	Email        string     `json:"email"`
	Rol          string     `json:"rol"`
	Activo       bool       `json:"activo"`
	CreadoEn     time.Time  `json:"creado_en"`
	UltimoAcceso *time.Time `json:"ultimo_acceso,omitempty"`
}
type tokenResp struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Usuario     usuarioResp `json:"usuario"`
}

func toUsuarioResp(u model.Usuario) usuarioResp {
	return usuarioResp{
		UsuarioID:    u.ID,
		Nombre:       u.Nombre,
		Email:        u.Email,
		Rol:          string(u.Rol),
		Activo:       u.Activo,
		CreadoEn:     u.CreadoEn,
		UltimoAcceso: u.UltimoAcceso,
	}
}

// Registro creates a user and returns a token immediately so the client
// is logged in right after signing up.  A duplicate email is a 400 per
// the API contract.
func (h *AuthHandler) Registro(c echo.Context) error {
	var req registroReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Nombre == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "nombre, email y password son obligatorios"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email inválido"})
	}
	rol := model.Rol(strings.TrimSpace(req.Rol))
	if rol == "" {
		rol = model.RolUsuario
	}
	if !rol.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rol inválido"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Nombre, req.Email, req.Password, rol, h.Cfg.BcryptCost)
	if err != nil {
		return repoError(c, err)
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Rol)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no se pudo emitir el token"})
	}

	return c.JSON(http.StatusCreated, tokenResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		Usuario:     toUsuarioResp(u),
	})
}

// Login verifies credentials, stamps ultimo_acceso and returns a fresh
// token.  Unknown email and wrong password are indistinguishable to the
// caller; an inactive account is also a 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cuerpo inválido"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email y password son obligatorios"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "credenciales incorrectas"})
		}
		return repoError(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "credenciales incorrectas"})
	}
	if !u.Activo {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "usuario inactivo"})
	}

	if err := h.Users.TouchUltimoAcceso(ctx, u.ID); err != nil {
		return repoError(c, err)
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Rol)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no se pudo emitir el token"})
	}
	return c.JSON(http.StatusOK, tokenResp{
		AccessToken: access.Token,
		TokenType:   "bearer",
		Usuario:     toUsuarioResp(u),
	})
}

// Me returns the authenticated user's stored row.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, actor(c).ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usuario no encontrado"})
		}
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toUsuarioResp(u))
}
