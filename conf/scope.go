package conf

// Scope is a configuration nesting level, ordered broad to narrow.
type Scope uint8

const (
	Main Scope = iota
	Server
	Location
)

func (s Scope) String() string {
	switch s {
	case Main:
		return "main"
	case Server:
		return "server"
	case Location:
		return "location"
	default:
		return "unknown"
	}
}

// ScopeMask is a set of scopes a directive may appear in.
type ScopeMask uint8

const (
	MainConf     ScopeMask = 1 << Main
	ServerConf   ScopeMask = 1 << Server
	LocationConf ScopeMask = 1 << Location
	AnyConf                = MainConf | ServerConf | LocationConf
)

// Has reports whether s is in m.
func (m ScopeMask) Has(s Scope) bool {
	return m&(1<<s) != 0
}
