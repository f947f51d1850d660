package authenticator

import (
	"errors"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// SessionClaims are the claims of an embedded admin session token. Dest is
// the shop url, for example https://foo.myshopify.com.
type SessionClaims struct {
	jwt.RegisteredClaims
	Dest string `json:"dest"`
	Sid  string `json:"sid,omitempty"`
}

// Shop returns the shop domain of the token.
func (c SessionClaims) Shop() string {
	u, err := url.Parse(c.Dest)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(c.Dest, "https://")
	}

	return u.Host
}

type sessionTokenVerifier struct {
	apiKey    string
	apiSecret string
}

func NewSessionTokenVerifier(apiKey, apiSecret string) *sessionTokenVerifier {
	return &sessionTokenVerifier{apiKey: apiKey, apiSecret: apiSecret}
}

func (v *sessionTokenVerifier) Verify(token string) (SessionClaims, error) {
	var claims SessionClaims
	if _, err := jwt.ParseWithClaims(token, &claims, hmacKey([]byte(v.apiSecret))); err != nil {
		return SessionClaims{}, err
	}

	if !claims.VerifyAudience(v.apiKey, true) {
		return SessionClaims{}, errors.New("invalid audience")
	}

	if claims.Shop() == "" {
		return SessionClaims{}, errors.New("missing dest")
	}

	// The issuer is the admin url of the same shop.
	if claims.Issuer != "" && !strings.HasPrefix(claims.Issuer, claims.Dest) {
		return SessionClaims{}, errors.New("issuer and dest mismatch")
	}

	return claims, nil
}
