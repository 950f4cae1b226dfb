package search

import "strings"

// CodePrefix is a building room-numbering scheme. A query starting with one of the known
// prefixes is treated as a room code rather than free text.
type CodePrefix struct {
	Prefix  string
	Meaning string
}

// DefaultPrefixes is the campus numbering table used when none is configured.
var DefaultPrefixes = []CodePrefix{
	{Prefix: "T-", Meaning: "Torre"},
	{Prefix: "PG-", Meaning: "Posgrado"},
	{Prefix: "MA-", Meaning: "Módulo A"},
	{Prefix: "MB-", Meaning: "Módulo B"},
	{Prefix: "G-", Meaning: "Gimnasio"},
	{Prefix: "L-", Meaning: "Laboratorios"},
}

// PrefixTable classifies queries by known room-code prefixes.
type PrefixTable struct {
	prefixes []CodePrefix
}

// NewPrefixTable creates a table. An empty list falls back to DefaultPrefixes.
func NewPrefixTable(prefixes []CodePrefix) PrefixTable {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	return PrefixTable{prefixes: append([]CodePrefix(nil), prefixes...)}
}

// Classify returns the first prefix the query starts with.
func (t PrefixTable) Classify(query string) (CodePrefix, bool) {
	for _, p := range t.prefixes {
		if p.Prefix != "" && strings.HasPrefix(query, p.Prefix) {
			return p, true
		}
	}
	return CodePrefix{}, false
}

// Prefixes returns a copy of the table entries.
func (t PrefixTable) Prefixes() []CodePrefix {
	return append([]CodePrefix(nil), t.prefixes...)
}
