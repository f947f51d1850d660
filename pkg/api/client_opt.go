package api

import "net/http"

type basicAuthOpt struct {
	username string
	password string
}

func BasicAuth(username, password string) *basicAuthOpt {
	return &basicAuthOpt{username: username, password: password}
}

func (opt *basicAuthOpt) Do(req *http.Request) {
	req.SetBasicAuth(opt.username, opt.password)
}

type headerOpt struct {
	name  string
	value string
}

// WithHeader sets a header whose value shouldn't be kept in the client, for
// example a per-shop access token.
func WithHeader(name, value string) *headerOpt {
	return &headerOpt{name: name, value: value}
}

func (opt *headerOpt) Do(req *http.Request) {
	req.Header.Set(opt.name, opt.value)
}
