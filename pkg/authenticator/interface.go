package authenticator

type TokenEngine[T any] interface {
	Generate(sub string, obj T) (string, error)
	Verify(token string) (T, error)
}

// SessionTokenVerifier verifies the session token which the embedded admin
// sends in the Authorization header.
type SessionTokenVerifier interface {
	Verify(token string) (SessionClaims, error)
}
