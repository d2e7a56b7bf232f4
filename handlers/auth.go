package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/absamad/pigeontracker/middleware"
	"github.com/absamad/pigeontracker/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HashPasswordForUser validates email/password input and returns a bcrypt
// hash for storage.
func HashPasswordForUser(email, password string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", errors.New("email is required")
	}
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

func isAdminRole(role string) bool {
	admins := strings.TrimSpace(os.Getenv("ADMIN_ROLES"))
	if admins == "" {
		admins = "admin"
	}
	for _, a := range strings.Split(admins, ",") {
		if strings.EqualFold(strings.TrimSpace(a), role) {
			return true
		}
	}
	return false
}

// PasswordHash returns a bcrypt hash from email/password input for manual
// credential registration. Access is limited to authenticated admin users.
func (h *Handler) PasswordHash(c echo.Context) error {
	role, _ := c.Get("role").(string)
	if !isAdminRole(role) {
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}

	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	hash, err := HashPasswordForUser(creds.Email, creds.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"email":         strings.TrimSpace(creds.Email),
		"password_hash": hash,
	})
}

// Signin validates credentials against the stored user table and returns a
// session token valid for 24 hours.
func (h *Handler) Signin(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	user := &models.User{}
	err := h.db.NewSelect().Model(user).
		Where("email = ?", creds.Email).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect email or password")
	}

	expiresAt := time.Now().Add(mw.SessionTTLHours * time.Hour)
	claims := &mw.Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token":     tokenString,
		"name":      user.Name,
		"role":      user.Role,
		"expiresAt": expiresAt.Unix(),
	})
}
