package routing

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/folio/pkg/routetable"
)

// Request is the router's view of an inbound request.
type Request struct {
	Query   url.Values
	RawPath string
	Path    string
	Method  string
}

// NewRequest builds a Request from a method and a request target such as
// "/blog/hello/?page=2". An unparseable target yields the root path.
func NewRequest(method, target string) *Request {
	u, err := url.ParseRequestURI(target)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	return newRequest(method, u)
}

// FromHTTP adapts an *http.Request.
func FromHTTP(r *http.Request) *Request {
	return newRequest(r.Method, r.URL)
}

func newRequest(method string, u *url.URL) *Request {
	if method == "" {
		method = http.MethodGet
	}
	q := u.Query()
	return &Request{
		Query:   q,
		RawPath: u.Path,
		Path:    routetable.NormalizePath(u.Path),
		Method:  method,
	}
}
