package utils

import (
	"strconv"
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// ArgList collects positional arguments and hands out $n placeholders
type ArgList struct {
	args []any
}

// Add appends v and returns its placeholder ("$1", "$2", ...)
func (a *ArgList) Add(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}

func (a *ArgList) Values() []any {
	return a.args
}
