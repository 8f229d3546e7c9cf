package httpapi

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/example/folio/internal/config"
)

type principalKeyType struct{}

var principalKey = principalKeyType{}

const (
	PermContentWrite  = "content:write"
	PermContentDelete = "content:delete"
	PermMediaUpload   = "media:upload"
	PermAdminsManage  = "admins:manage"
)

// AllPermissions is what a logged-in admin holds.
var AllPermissions = []string{PermContentWrite, PermContentDelete, PermMediaUpload, PermAdminsManage}

const (
	SourceAPIKey  = "apikey"
	SourceSession = "session"
)

type Principal struct {
	ID          string
	AdminID     int64
	Permissions map[string]struct{}
	Source      string
}

func newPrincipalFromAPIKey(key *APIKey) *Principal {
	perms := make(map[string]struct{}, len(key.Permissions))
	for _, p := range key.Permissions {
		perms[p] = struct{}{}
	}
	return &Principal{
		ID:          key.ID,
		Permissions: perms,
		Source:      SourceAPIKey,
	}
}

func newPrincipalFromSession(sess Session) *Principal {
	perms := make(map[string]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		perms[p] = struct{}{}
	}
	return &Principal{
		ID:          "admin:" + strconv.FormatInt(sess.AdminID, 10),
		AdminID:     sess.AdminID,
		Permissions: perms,
		Source:      SourceSession,
	}
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok && p != nil
}

func (p *Principal) HasPermission(perm string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Permissions[perm]
	return ok
}

func (p *Principal) PermissionList() []string {
	out := make([]string, 0, len(p.Permissions))
	for perm := range p.Permissions {
		out = append(out, perm)
	}
	sort.Strings(out)
	return out
}

// authMiddleware resolves the caller from X-Api-Key or a bearer session
// token and stores it in the request context.
func (s *Server) authMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch s.cfg.AuthMode {
			case config.AuthNone:
				next.ServeHTTP(w, r)
				return
			case config.AuthSession:
				if key := strings.TrimSpace(r.Header.Get("X-Api-Key")); key != "" {
					apiKey, ok := s.apiKeys.Lookup(key)
					if !ok {
						writeError(w, http.StatusUnauthorized, "unauthorized", "invalid api key", nil)
						return
					}
					next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), newPrincipalFromAPIKey(apiKey))))
					return
				}
				if token := bearerToken(r.Header.Get("Authorization")); token != "" {
					sess, ok := s.sessions.Get(token)
					if !ok {
						writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
						return
					}
					next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), newPrincipalFromSession(sess))))
					return
				}
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing credentials", nil)
				return
			default:
				writeError(w, http.StatusUnauthorized, "unauthorized", "auth mode not supported", nil)
				return
			}
		})
	}
}

func (s *Server) requirePermissions(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.cfg.AuthMode == config.AuthNone {
				next.ServeHTTP(w, r)
				return
			}
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing credentials", nil)
				return
			}
			for _, perm := range perms {
				if !p.HasPermission(perm) {
					writeError(w, http.StatusForbidden, "forbidden", "missing permission", map[string]any{"permission": perm})
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
