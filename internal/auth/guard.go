package auth

import (
	"slices"
	"strings"

	"github.com/minimal-api/internal/model"
)

// Level is the kind of check a route asks for.
type Level int

const (
	LevelPublic Level = iota
	LevelAuthenticated
	LevelRole
)

// Requirement is the access rule declared for a single route.
type Requirement struct {
	level Level
	roles []model.Role
}

// Public lets every request through, with or without a token.
func Public() Requirement {
	return Requirement{level: LevelPublic}
}

// AuthenticatedOnly requires any valid token.
func AuthenticatedOnly() Requirement {
	return Requirement{level: LevelAuthenticated}
}

// RoleIn requires a valid token whose role is one of roles.
func RoleIn(roles ...model.Role) Requirement {
	return Requirement{level: LevelRole, roles: slices.Clone(roles)}
}

func (r Requirement) Level() Level {
	return r.level
}

func (r Requirement) Roles() []model.Role {
	return slices.Clone(r.roles)
}

func (r Requirement) String() string {
	switch r.level {
	case LevelPublic:
		return "public"
	case LevelAuthenticated:
		return "authenticated"
	default:
		names := make([]string, len(r.roles))
		for i, role := range r.roles {
			names[i] = role.String()
		}
		return "role in {" + strings.Join(names, ", ") + "}"
	}
}

// Authorize decides whether claims satisfy req. nil claims means no valid
// token was presented. It returns nil on allow, ErrUnauthenticated or
// ErrForbidden on deny.
func Authorize(req Requirement, c *model.TokenClaims) error {
	if req.level == LevelPublic {
		return nil
	}
	if c == nil {
		return ErrUnauthenticated
	}
	if req.level == LevelRole && !slices.Contains(req.roles, c.Role) {
		return ErrForbidden
	}
	return nil
}

// Verifier turns a raw bearer token into verified claims.
type Verifier interface {
	Verify(token string) (*model.TokenClaims, error)
}

// Guard runs the full per-request decision: public short-circuit, token
// verification, then the role check.
type Guard struct {
	verifier Verifier
}

func NewGuard(v Verifier) *Guard {
	return &Guard{verifier: v}
}

// Check evaluates req for a request carrying the given Authorization header
// value. Claims are returned when a valid token was presented, even on
// public routes.
func (g *Guard) Check(req Requirement, authorization string) (*model.TokenClaims, error) {
	var c *model.TokenClaims
	if token, ok := BearerToken(authorization); ok {
		if verified, err := g.verifier.Verify(token); err == nil {
			c = verified
		}
	}
	if err := Authorize(req, c); err != nil {
		return nil, err
	}
	return c, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
