package question

import "strings"

// AliasTable maps recognized player names (lowercased) to student IDs.
// This is configuration data: the shipped table covers the known students,
// and callers may supply their own.
type AliasTable map[string]string

// DefaultAliases is the shipped name-to-student mapping.
var DefaultAliases = AliasTable{
	"anaya": "1",
	"kavya": "2",
	"mamta": "3",
}

// Resolve returns the student ID for a player name, or "" if the name is
// not recognized. Matching is case- and whitespace-insensitive.
func (a AliasTable) Resolve(playerName string) string {
	return a[strings.ToLower(strings.TrimSpace(playerName))]
}
