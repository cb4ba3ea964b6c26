// Package nav names the front-end paths the backend redirects to.
package nav

import "strings"

const (
	Home          = "/home"
	Login         = "/login"
	Signup        = "/signup"
	BecomeWorker  = "/become-worker"
	WorkerProfile = "/worker-profile"
	Services      = "/services"
)

var known = map[string]bool{
	Home:          true,
	Login:         true,
	Signup:        true,
	BecomeWorker:  true,
	WorkerProfile: true,
	Services:      true,
}

// Resolve maps any path to a known one; unknown paths land on Home. A known
// path keeps its query string so directory filters survive the redirect.
func Resolve(path string) string {
	p, query := path, ""
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p, query = p[:i], p[i:]
	}
	p = strings.TrimRight(p, "/")
	if !known[p] {
		return Home
	}
	if query == "?" {
		query = ""
	}
	return p + query
}

// Landing is where a fresh session of role goes.
func Landing(role string) string {
	if role == "worker" {
		return WorkerProfile
	}
	return Home
}
