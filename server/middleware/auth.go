package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/restkit/logger"
)

// ClaimsKey is the Gin context key holding the validated jwt.MapClaims.
const ClaimsKey = "auth.claims"

// AuthConfig configures bearer-token authentication.
type AuthConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Secret   string `yaml:"secret" mapstructure:"secret" validate:"required_if=Enabled true"`
	Issuer   string `yaml:"issuer" mapstructure:"issuer"`
	Audience string `yaml:"audience" mapstructure:"audience"`
	// Realm is advertised in the WWW-Authenticate challenge.
	Realm string `yaml:"realm" mapstructure:"realm"`
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string `yaml:"skip_paths" mapstructure:"skip_paths"`
}

var errNoToken = errors.New("missing bearer token")

// Auth validates HMAC-signed bearer tokens. Failures are answered with a 401
// result envelope and a Bearer WWW-Authenticate challenge. Validated claims
// are stored under ClaimsKey and the subject becomes the context user id.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	realm := cfg.Realm
	if realm == "" {
		realm = "api"
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	parser := jwt.NewParser(opts...)
	key := []byte(cfg.Secret)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			fail(c, realm, nil)
			return
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return key, nil
		}); err != nil {
			fail(c, realm, err)
			return
		}

		c.Set(ClaimsKey, claims)
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			c.Request = c.Request.WithContext(logger.ContextWithUserID(c.Request.Context(), sub))
		}
		c.Next()
	}
}

func fail(c *gin.Context, realm string, err error) {
	ctx := c.Request.Context()
	fields := map[string]interface{}{logger.FieldPath: c.Request.URL.Path}
	if err != nil {
		fields[logger.FieldError] = err.Error()
	} else {
		fields[logger.FieldError] = errNoToken.Error()
	}
	logger.WithContext(ctx).Debug("Authentication failed", fields)
	abort(c, unauthorized(realm, c.Request.URL.Path, logger.RequestIDFromContext(ctx), err))
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Claims returns the claims stored by Auth.
func Claims(c *gin.Context) (jwt.MapClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(jwt.MapClaims)
	return claims, ok
}

// IssueToken signs an HS256 token for subject that expires after ttl.
func IssueToken(cfg AuthConfig, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}
