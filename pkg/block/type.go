package block

import "strings"

// Type is the closed set of content block kinds.
type Type string

// Content block types.
const (
	TypeHeading    Type = "heading"
	TypeText       Type = "text"
	TypeFormula    Type = "formula"
	TypeExample    Type = "example"
	TypeDefinition Type = "definition"
	TypeTheorem    Type = "theorem"
	TypeList       Type = "list"
	TypeTable      Type = "table"
)

// Types lists every valid Type in a stable order.
var Types = []Type{
	TypeHeading,
	TypeText,
	TypeFormula,
	TypeExample,
	TypeDefinition,
	TypeTheorem,
	TypeList,
	TypeTable,
}

// traits is the default priority and breakability of a type.
type traits struct {
	priority  int
	breakable bool
}

// defaults is the placement table. Tables follow lists: they split cleanly
// at row boundaries and sit mid-priority.
var defaults = map[Type]traits{
	TypeHeading:    {priority: 10, breakable: false},
	TypeFormula:    {priority: 9, breakable: false},
	TypeExample:    {priority: 8, breakable: false},
	TypeDefinition: {priority: 7, breakable: false},
	TypeTheorem:    {priority: 7, breakable: false},
	TypeList:       {priority: 6, breakable: true},
	TypeTable:      {priority: 6, breakable: true},
	TypeText:       {priority: 5, breakable: true},
}

// Valid reports whether t is a known content type.
func (t Type) Valid() bool {
	_, ok := defaults[t]
	return ok
}

// DefaultPriority returns the placement priority of t (0 if unknown).
func (t Type) DefaultPriority() int { return defaults[t].priority }

// DefaultBreakable reports whether blocks of type t may be split by default.
func (t Type) DefaultBreakable() bool { return defaults[t].breakable }

// ParseType converts a case-insensitive name into a Type.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

func typeNames() string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
