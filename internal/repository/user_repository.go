package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/imontoya/soporte-tickets/internal/model"
	"github.com/imontoya/soporte-tickets/internal/utils"
)

// UserRepo is the credential store: it owns every read and write
// against the Usuarios table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "usuario_id, nombre, email, password_hash, rol, activo, creado_en, ultimo_acceso"

// Create inserts a user with a bcrypt-hashed password and returns the
// stored row. A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, nombre, email, password string, rol model.Rol, cost int) (model.Usuario, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.Usuario{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO Usuarios (nombre, email, password_hash, rol) VALUES (?,?,?,?)",
		nombre, email, hash, string(rol))
	if err != nil {
		if isDuplicateEntry(err) {
			return model.Usuario{}, ErrEmailExists
		}
		return model.Usuario{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Usuario{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// isDuplicateEntry recognizes the MySQL driver's duplicate-key failure
// (1062 = ER_DUP_ENTRY), raised here only by the unique email index.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// GetByEmail fetches a user by normalized email. Missing rows map to
// ErrNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.Usuario, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM Usuarios WHERE email=? LIMIT 1", email)
	return scanUsuario(row)
}

// GetByID fetches a user by id. Missing rows map to ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.Usuario, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM Usuarios WHERE usuario_id=? LIMIT 1", id)
	return scanUsuario(row)
}

// TouchUltimoAcceso stamps the last-access timestamp. Called on every
// successful login.
func (r *UserRepo) TouchUltimoAcceso(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE Usuarios SET ultimo_acceso = NOW() WHERE usuario_id=?", id)
	return err
}

// ListAll returns every user, newest first. Admin-only listing; the
// authorization gate lives in the middleware, not here.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.Usuario, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM Usuarios ORDER BY creado_en DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Usuario
	for rows.Next() {
		u, err := scanUsuarioRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUsuario(row *sql.Row) (model.Usuario, error) {
	var u model.Usuario
	var ultimo sql.NullTime
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreadoEn, &ultimo)
	if err == sql.ErrNoRows {
		return model.Usuario{}, ErrNotFound
	}
	if err != nil {
		return model.Usuario{}, err
	}
	if ultimo.Valid {
		t := ultimo.Time
		u.UltimoAcceso = &t
	}
	return u, nil
}

func scanUsuarioRows(rows *sql.Rows) (model.Usuario, error) {
	var u model.Usuario
	var ultimo sql.NullTime
	if err := rows.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreadoEn, &ultimo); err != nil {
		return model.Usuario{}, err
	}
	if ultimo.Valid {
		t := ultimo.Time
		u.UltimoAcceso = &t
	}
	return u, nil
}
