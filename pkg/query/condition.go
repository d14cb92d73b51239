package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations render a SQL fragment using positional "?" placeholders
// together with the arguments bound to them, the form accepted by GORM's Where.
type Condition interface {
	SQL() (string, []interface{})
}

type eqCondition struct {
	field string
	value interface{}
}

// Eq creates a condition for equality comparison.
// Example: Eq("status", "AVAILABLE") generates "status = ?"
func Eq(field string, value interface{}) Condition {
	return &eqCondition{field: field, value: value}
}

func (c *eqCondition) SQL() (string, []interface{}) {
	return fmt.Sprintf("%s = ?", c.field), []interface{}{c.value}
}

type eqFoldCondition struct {
	field string
	value string
}

// EqFold creates a case-insensitive equality condition.
// Example: EqFold("make", "BMW") generates "LOWER(make) = ?" bound to "bmw"
func EqFold(field string, value string) Condition {
	return &eqFoldCondition{field: field, value: value}
}

func (c *eqFoldCondition) SQL() (string, []interface{}) {
	return fmt.Sprintf("LOWER(%s) = ?", c.field), []interface{}{strings.ToLower(c.value)}
}

type containsFoldCondition struct {
	fields []string
	value  string
}

// ContainsAnyFold matches rows where any of fields contains value,
// ignoring case. LIKE wildcards inside value are matched literally.
// Example: ContainsAnyFold([]string{"make", "model"}, "x") generates
// "(LOWER(make) LIKE ? OR LOWER(model) LIKE ?)"
func ContainsAnyFold(fields []string, value string) Condition {
	return &containsFoldCondition{fields: fields, value: value}
}

func (c *containsFoldCondition) SQL() (string, []interface{}) {
	pattern := "%" + EscapeLike(strings.ToLower(c.value)) + "%"

	parts := make([]string, 0, len(c.fields))
	args := make([]interface{}, 0, len(c.fields))
	for _, field := range c.fields {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", field))
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

type compareCondition struct {
	field string
	op    string
	value interface{}
}

// Gte creates an inclusive lower bound: "field >= ?".
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

// Lte creates an inclusive upper bound: "field <= ?".
func Lte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<=", value: value}
}

func (c *compareCondition) SQL() (string, []interface{}) {
	return fmt.Sprintf("%s %s ?", c.field, c.op), []interface{}{c.value}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters using the default backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
