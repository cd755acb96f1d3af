package parser

import (
	"fmt"
	"strings"
)

// Policy decides what happens to an invalid record.
type Policy int

const (
	// Strict aborts on the first invalid record.
	Strict Policy = iota
	// Permissive drops invalid records and keeps going.
	Permissive
)

func (p Policy) String() string {
	if p == Permissive {
		return "permissive"
	}
	return "strict"
}

func PolicyFromIgnoreErrors(ignore bool) Policy {
	if ignore {
		return Permissive
	}
	return Strict
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "permissive", "ignore", "ignore-errors":
		return Permissive, nil
	}
	return Strict, fmt.Errorf("unknown error policy %q", s)
}
