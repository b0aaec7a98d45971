package handle

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
)

// RequestID tags every request so logs and sentry reports line up.
func (di *API) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewV4().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Authorization reads an optional bearer token. Requests without one go on
// as anonymous, a bad token is rejected.
func (di *API) Authorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		signed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(di.Secret), nil
		})
		if err != nil {
			message := "Error parsing token"
			if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
				message = "Token expired, request new one"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": message})
			return
		}
		claims, _ := signed.Claims.(jwt.MapClaims)
		hex, _ := claims["user_id"].(string)
		id, ok := common.ValidID(hex)
		if !signed.Valid || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token"})
			return
		}
		c.Set("token", raw)
		c.Set("userID", id)
		c.Next()
	}
}

func (di *API) NeedAuthorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !userID(c).Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Auth method required"})
			return
		}
		c.Next()
	}
}

// ErrorTracking turns panics into a 500 and ships them to sentry.
func (di *API) ErrorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rval := recover(); rval != nil {
				log.Errorf("panic serving %s: %v", c.Request.URL.Path, rval)
				tags := map[string]string{"request_id": c.GetString("request_id")}
				di.Exceptions.Capture(exceptions.Packet(rval, 3), tags)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
