package auth

import "strings"

// Principal is the authenticated caller resolved from the request. Email may be
// empty for some auth modes.
type Principal struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// DisplayName picks the name snapshotted onto submissions: full name, then
// name, then the local part of the email, then "Guest".
func (p *Principal) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	if p.Name != "" {
		return p.Name
	}
	if p.Email != "" {
		if local, _, found := strings.Cut(p.Email, "@"); found && local != "" {
			return local
		}
		return p.Email
	}
	return "Guest"
}

// NormalizedEmail returns the lowercase-trimmed email used for invitation
// matching.
func (p *Principal) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(p.Email))
}
