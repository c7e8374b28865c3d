package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns user input into a substring match for ILIKE ... ESCAPE '\'.
// Wildcards in the input match themselves.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
