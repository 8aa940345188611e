package middleware

import (
	"encoding/base64"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todoapi/internal/app"
	"todoapi/internal/model"
	"todoapi/internal/transport/http/response"
)

// Auth is the gate in front of protected routes. Two credential schemes
// are tried in a fixed order:
//
//  1. "Authorization: Token <jwt>" — verified by the token service.
//  2. "Authorization: Basic <base64(identifier:password)>" — the
//     identifier may be a username or an email. Compatibility rule:
//     before the password path, the username slot is also tried as a
//     token, so legacy clients can send an issued token via basic auth.
//
// On success the resolved user is bound into the request context. On
// failure the response is a uniform 401 advertising both schemes; the
// actual cause is only logged.
func Auth(users *app.AuthService, tokens *app.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := authenticate(c, users, tokens)
		if user == nil {
			c.Writer.Header().Add("WWW-Authenticate", `Token`)
			c.Writer.Header().Add("WWW-Authenticate", `Basic realm="todoapi"`)
			response.AbortError(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		c.Request = c.Request.WithContext(app.WithIdentity(c.Request.Context(), user))
		c.Next()
	}
}

func authenticate(c *gin.Context, users *app.AuthService, tokens *app.TokenService) *model.User {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return nil
	}

	scheme, credential, ok := strings.Cut(header, " ")
	if !ok {
		return nil
	}
	credential = strings.TrimSpace(credential)
	ctx := c.Request.Context()

	switch strings.ToLower(scheme) {
	case "token":
		user, err := tokens.Verify(ctx, credential)
		if err != nil {
			log.Printf("auth: token scheme rejected: %v", err)
			return nil
		}
		return user

	case "basic":
		identifier, password, ok := decodeBasic(credential)
		if !ok {
			return nil
		}
		if user, err := tokens.Verify(ctx, identifier); err == nil {
			return user
		}
		user, err := users.Authenticate(ctx, identifier, password)
		if err != nil {
			log.Printf("auth: basic scheme rejected: %v", err)
			return nil
		}
		return user
	}

	return nil
}

func decodeBasic(credential string) (identifier, password string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(credential)
	if err != nil {
		return "", "", false
	}
	identifier, password, ok = strings.Cut(string(raw), ":")
	if !ok || identifier == "" {
		return "", "", false
	}
	return identifier, password, true
}
