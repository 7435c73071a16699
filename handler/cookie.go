package handler

import (
	"net/http"
	"time"

	"github.com/lordvidex/x/auth"

	"github.com/kodekulture/cemantix-server/internal/config"
)

const (
	adminTokenKey = "admin_token"
	adminTokenTTL = 12 * time.Hour
)

func isProd() bool {
	return config.Get("ENV") == "prod"
}

func newAdminCookie(token auth.Token) http.Cookie {
	return http.Cookie{
		Name:     adminTokenKey,
		Value:    string(token),
		Path:     "/admin",
		Expires:  time.Now().Add(adminTokenTTL),
		Secure:   isProd(), // enable development usage
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func deleteCookie(w http.ResponseWriter, c *http.Cookie) {
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}
