package service

import (
	"crypto/subtle"
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
)

var (
	errInvalidHost   = errors.New("invalid host")
	errInvalidOrigin = errors.New("invalid origin")
)

// validateLocalRequest rejects requests whose Host or Origin names a host
// outside the allowlist, which blocks DNS rebinding against a local gateway.
func (t *HTTPTransport) validateLocalRequest(r *http.Request) error {
	if !t.hostAllowed(r.Host) {
		return errInvalidHost
	}
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	parsed, err := url.Parse(origin)
	if err != nil || !t.hostAllowed(parsed.Host) {
		return errInvalidOrigin
	}
	return nil
}

// hostAllowed accepts loopback names always and other hosts only when listed.
func (t *HTTPTransport) hostAllowed(header string) bool {
	host, ok := normalizeHost(header)
	if !ok {
		return false
	}
	host = strings.ToLower(host)
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	_, ok = t.allowedHosts[host]
	return ok
}

// parseAllowedHosts lowercases the configured hosts into a lookup set.
func parseAllowedHosts(hosts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(hosts))
	for _, host := range hosts {
		if host = strings.ToLower(strings.TrimSpace(host)); host != "" {
			set[host] = struct{}{}
		}
	}
	return set
}

// normalizeHost strips the port and IPv6 brackets from a Host or Origin host.
func normalizeHost(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(header); err == nil {
		return host, host != ""
	}
	if rest, bracketed := strings.CutPrefix(header, "["); bracketed {
		host, closed := strings.CutSuffix(rest, "]")
		if !closed || host == "" {
			return "", false
		}
		return host, true
	}
	// A bare IPv6 literal has several colons and no port.
	if strings.Count(header, ":") == 1 {
		return "", false
	}
	return header, true
}

// authorizeRequest enforces the static bearer token when one is configured.
func (t *HTTPTransport) authorizeRequest(w http.ResponseWriter, r *http.Request) bool {
	if t.apiToken == "" {
		return true
	}
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found {
		t.writeUnauthorized(w, r, "authorization required")
		return false
	}
	token = strings.TrimSpace(token)
	if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(t.apiToken)) != 1 {
		t.writeUnauthorized(w, r, "invalid access token")
		return false
	}
	return true
}

func (t *HTTPTransport) writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	w.Header().Set("WWW-Authenticate", `Bearer realm="`+scheme+"://"+r.Host+`"`)
	http.Error(w, message, http.StatusUnauthorized)
}

// handleHealth answers GET /mcp/health. It checks the host but not the token.
func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := t.validateLocalRequest(r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("write health response: %v", err)
	}
}
