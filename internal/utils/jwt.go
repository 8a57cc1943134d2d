package utils // package utils provides helpers for token issuing and password hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"

    "github.com/imontoya/soporte-tickets/internal/model"
)

// Access tokens are self-contained HS256 JWTs valid for 24 hours.  There
// is deliberately no refresh token and no revocation list: deactivating
// a user only takes effect through the per-request lookup against the
// Usuarios table, while an already-issued token stays verifiable until
// its natural expiry.
const AccessTokenTTL = 24 * time.Hour

// Verification errors.  Handlers map both to HTTP 401; the distinction
// exists for logging and tests.
var (
    ErrTokenExpired   = errors.New("token expired")
    ErrTokenMalformed = errors.New("token malformed")
)

// AccessToken is a signed JWT along with its expiry, returned to the
// client at registration and login.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // UTC expiration time
}

// Claims are the verified contents of an access token: the subject user
// id and the role the token was issued with.
type Claims struct {
    UsuarioID uint64
    Rol       model.Rol
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The claims
// are the standard sub/exp/iat plus the user's role under "rol".
func NewAccessToken(secret string, usuarioID uint64, rol model.Rol) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(AccessTokenTTL)
    claims := jwt.MapClaims{
        "sub": usuarioID,
        "rol": string(rol),
        "exp": exp.Unix(),
        "iat": now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a token and
// extracts its claims.  Expired tokens return ErrTokenExpired; any
// other parse or structure failure returns ErrTokenMalformed.  The
// user's current active flag is NOT checked here – that lookup happens
// against the credential store on every request.
func ParseAccessToken(secret, raw string) (Claims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrTokenMalformed
        }
        return []byte(secret), nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return Claims{}, ErrTokenExpired
        }
        return Claims{}, ErrTokenMalformed
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok || !tok.Valid {
        return Claims{}, ErrTokenMalformed
    }
    sub, ok := mc["sub"].(float64) // numeric claims decode as float64
    if !ok || sub <= 0 {
        return Claims{}, ErrTokenMalformed
    }
    rolStr, ok := mc["rol"].(string)
    if !ok {
        return Claims{}, ErrTokenMalformed
    }
    rol := model.Rol(rolStr)
    if !rol.Valid() {
        return Claims{}, ErrTokenMalformed
    }
    return Claims{UsuarioID: uint64(sub), Rol: rol}, nil
}
