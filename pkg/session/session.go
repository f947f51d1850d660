package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// Store keeps one named session per client.
type Store struct {
	name  string
	store sessions.Store
}

func NewCookieStore(name string, options *sessions.Options, keypairs ...[]byte) *Store {
	store := sessions.NewCookieStore(keypairs...)
	if options != nil {
		store.Options = options
	}

	return &Store{
		name:  name,
		store: store,
	}
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Get(r *http.Request) (*sessions.Session, error) {
	return s.store.Get(r, s.name)
}

func (s *Store) Save(r *http.Request, w http.ResponseWriter, a *sessions.Session) error {
	return s.store.Save(r, w, a)
}

// GetString returns the string value stored under key, or empty if the
// session has no such value.
func GetString(s *sessions.Session, key string) string {
	v, _ := s.Values[key].(string)
	return v
}
