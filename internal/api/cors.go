package api

import (
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// The agent binds to loopback only, but browsers still enforce CORS for the
// local web UI. Allowed origins are localhost on any port and the hosted UI
// under app.cutboard.io (or its .local development alias).
var originHostPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?\.app\.cutboard\.(io|local)$`)

func isAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	scheme, rest, found := strings.Cut(origin, "://")
	if !found {
		return false
	}
	if scheme != "http" && scheme != "https" {
		return false
	}
	if strings.ContainsAny(rest, "/?#") {
		return false
	}

	host := rest
	if h, port, err := net.SplitHostPort(rest); err == nil {
		if _, err := strconv.Atoi(port); err != nil {
			return false
		}
		host = h
	} else if strings.Contains(rest, ":") {
		return false
	}

	if host == "localhost" || host == "127.0.0.1" {
		return true
	}
	return originHostPattern.MatchString(strings.ToLower(host))
}

const (
	corsAllowMethods  = "GET, HEAD, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders  = "Range, Content-Type, Authorization, X-Cutboard-Request-Id, X-Cutboard-Device-Id"
	corsExposeHeaders = "Content-Range, Accept-Ranges, Content-Length, Content-Type, X-Request-ID"
)

// CORSAllowlist handles preflight requests and reflects allowed origins.
// Denied origins on normal requests are still served, just without CORS
// headers, so non-browser clients are unaffected.
func CORSAllowlist() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed := isAllowedOrigin(origin)

			if r.Method == http.MethodOptions {
				if !allowed {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Expose-Headers", corsExposeHeaders)
				w.Header().Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Expose-Headers", corsExposeHeaders)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isLoopbackRemoteAddr(addr string) bool {
	if addr == "" {
		return false
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = strings.Trim(addr, "[]")
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// LoopbackGuard rejects requests that did not originate on this machine.
// Defense in depth for the media routes: the listener already binds to
// 127.0.0.1, but a misconfigured proxy could still forward outside traffic.
func LoopbackGuard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isLoopbackRemoteAddr(r.RemoteAddr) {
				WriteError(w, http.StatusForbidden, "local access only", "FORBIDDEN")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
