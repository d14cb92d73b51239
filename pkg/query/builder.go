package query

import (
	"fmt"
	"strings"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Builder accumulates WHERE conditions and an ORDER BY for a single table.
// Every method returns a new Builder so partially built queries can be shared,
// e.g. between the page query and its COUNT.
type Builder struct {
	conditions []Condition
	orderByCol string
	orderByDir Direction
}

func New() *Builder {
	return &Builder{conditions: []Condition{}}
}

// Where adds a condition. Multiple calls are combined with AND logic.
func (b *Builder) Where(condition Condition) *Builder {
	newBuilder := b.clone()
	newBuilder.conditions = append(newBuilder.conditions, condition)
	return newBuilder
}

// OrderBy specifies the column and direction for sorting.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	newBuilder := b.clone()
	newBuilder.orderByCol = column
	newBuilder.orderByDir = direction
	return newBuilder
}

// WhereSQL renders the combined condition. An empty builder renders "".
func (b *Builder) WhereSQL() (string, []interface{}) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(b.conditions))
	var args []interface{}
	for _, condition := range b.conditions {
		fragment, condArgs := condition.SQL()
		parts = append(parts, fragment)
		args = append(args, condArgs...)
	}
	return strings.Join(parts, " AND "), args
}

// OrderSQL renders the ORDER BY expression without the keyword, or "".
func (b *Builder) OrderSQL() string {
	if b.orderByCol == "" {
		return ""
	}
	return b.orderByCol + " " + b.orderByDir.String()
}

func (b *Builder) clone() *Builder {
	newBuilder := &Builder{
		conditions: make([]Condition, len(b.conditions)),
		orderByCol: b.orderByCol,
		orderByDir: b.orderByDir,
	}
	copy(newBuilder.conditions, b.conditions)
	return newBuilder
}

// String renders the query on one line for debug logs.
func (b *Builder) String() string {
	where, args := b.WhereSQL()
	return fmt.Sprintf("where=%q args=%v order=%q", where, args, b.OrderSQL())
}
