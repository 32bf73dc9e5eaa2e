package service

import "rpsduel/internal/engine"

// AdminList authorizes policy mutation against a fixed address allowlist
// from configuration.
type AdminList struct {
	addrs map[string]bool
}

func NewAdminList(addresses []string) *AdminList {
	m := make(map[string]bool, len(addresses))
	for _, a := range addresses {
		m[a] = true
	}
	return &AdminList{addrs: m}
}

func (l *AdminList) RequireAdmin(account string) error {
	if !l.addrs[account] {
		return engine.ErrUnauthorized
	}
	return nil
}

func (l *AdminList) IsAdmin(account string) bool {
	return l.addrs[account]
}
