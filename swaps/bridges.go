package swaps

import "strings"

// Bridge is a cross-chain transfer protocol a route travels over.
type Bridge struct {
	Name  string `json:"name"`
	Known bool   `json:"known"`
}

var bridges = []Bridge{
	{Name: "Stargate", Known: true},
	{Name: "Synapse", Known: true},
	{Name: "Wormhole", Known: true},
	{Name: "Relay", Known: true},
	{Name: "Arbitrum", Known: true},
	{Name: "CCTP", Known: true},
	{Name: "Celer", Known: true},
	{Name: "Mayan", Known: true},
	{Name: "Across", Known: true},
	{Name: "Hop", Known: true},
	{Name: "Hyphen", Known: true},
	{Name: "Connext", Known: true},
	{Name: "deBridge", Known: true},
	{Name: "Base Bridge", Known: true},
}

// Bridges returns the catalogue of known bridges.
func Bridges() []Bridge {
	out := make([]Bridge, len(bridges))
	copy(out, bridges)
	return out
}

// FindBridge looks a bridge up by case-insensitive name. Unknown names yield a
// bridge carrying the given name with Known unset.
func FindBridge(name string) Bridge {
	for _, b := range bridges {
		if strings.EqualFold(b.Name, name) {
			return b
		}
	}
	return Bridge{Name: name}
}
