package domain

// Permissions is a Discord permission bit set as computed for one member in
// one channel (role grants plus channel overwrites).
type Permissions int64

// Permission bits the bot relies on. Values match the Discord API.
const (
	PermissionAdministrator Permissions = 1 << 3
	PermissionViewChannel   Permissions = 1 << 10
	PermissionSendMessages  Permissions = 1 << 11
	PermissionEmbedLinks    Permissions = 1 << 14
)

// Has reports whether every bit in want is set. Administrator implies all.
func (p Permissions) Has(want Permissions) bool {
	if p&PermissionAdministrator != 0 {
		return true
	}
	return p&want == want
}
