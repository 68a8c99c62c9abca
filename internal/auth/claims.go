package auth

import "strings"

// NormalizeClaims folds the claim shapes issued by the identity provider into
// one Identity. Roles are read from the first non-empty location in order:
//
//  1. "<namespace>/roles"
//  2. "<namespace>/auth-roles"
//  3. "authorization" -> "roles"
//  4. "permissions"
//
// The email comes from "email", falling back to "<namespace>/email".
func NormalizeClaims(claims map[string]any, namespace string) Identity {
	id := Identity{
		Subject: stringClaim(claims["sub"]),
		Roles:   []string{},
	}

	ns := strings.TrimSuffix(namespace, "/")

	candidates := make([]any, 0, 4)
	if ns != "" {
		candidates = append(candidates, claims[ns+"/roles"], claims[ns+"/auth-roles"])
	}
	if authz, ok := claims["authorization"].(map[string]any); ok {
		candidates = append(candidates, authz["roles"])
	}
	candidates = append(candidates, claims["permissions"])

	for _, c := range candidates {
		if roles := stringList(c); len(roles) > 0 {
			id.Roles = roles
			break
		}
	}

	id.Email = stringClaim(claims["email"])
	if id.Email == "" && ns != "" {
		id.Email = stringClaim(claims[ns+"/email"])
	}

	return id
}

func stringClaim(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func stringList(v any) []string {
	switch vals := v.(type) {
	case []string:
		out := make([]string, 0, len(vals))
		for _, s := range vals {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(vals))
		for _, raw := range vals {
			if s := stringClaim(raw); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(vals); s != "" {
			return []string{s}
		}
	}
	return nil
}
