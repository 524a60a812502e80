package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
)

func authRouter(h *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/register-client", h.RegisterClient)
	r.POST("/api/auth/login", h.Login)
	return r
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewAuthHandler(db, &config.Config{JWTSecret: "secret", JWTTTL: time.Hour})
	h.emailDomainOK = func(string) bool { return false }
	r := authRouter(h)

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"barbershop_name": "Navalha", "barbershop_slug": "navalha",
		"name": "Ana", "email": "ana@naoexiste.test", "password": "123456",
		"timezone": "Mars/Olympus",
	})
	assert.Equal(t, "invalid_timezone", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"barbershop_name": "Navalha", "barbershop_slug": "navalha",
		"name": "Ana", "email": "ana@naoexiste.test", "password": "123456",
	})
	assert.Equal(t, "invalid_email_domain", decodeError(t, w).Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register-client", gin.H{
		"name": "Ana", "email": "ana@x.test", "password": "12",
	})
	assert.Equal(t, "invalid_request", decodeError(t, w).Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login(t *testing.T) {
	db, mock := newMockDB(t)
	cfg := &config.Config{JWTSecret: "secret", JWTTTL: time.Hour}
	r := authRouter(NewAuthHandler(db, cfg))

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("joao@cliente.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "barbershop_id", "name", "email", "password_hash", "role"}).
			AddRow(7, nil, "João", "joao@cliente.com", string(hash), "client"))

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "Joao@Cliente.com ", "password": "123456"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, jsonUnmarshal(w, &body))
	assert.Nil(t, body.User["barbershop_id"])

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(body.Token, claims, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.Equal(t, "client", claims["role"])
	assert.Equal(t, float64(7), claims["sub"])
	assert.Nil(t, claims["barbershopId"])

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("joao@cliente.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role"}).
			AddRow(7, "joao@cliente.com", string(hash), "client"))

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "joao@cliente.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decodeError(t, w).Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
