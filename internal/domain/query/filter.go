// Package query holds the declarative listing inputs shared between the use
// cases and the persistence layer: equality filters and offset pagination.
package query

// Field names a filterable user attribute.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldRole     Field = "role"
)

// Operator is the comparison applied by a constraint. Only exact equality is supported.
type Operator string

// OpEq requires the field to equal the value exactly (case-sensitive).
const OpEq Operator = "eq"

// Constraint is a single (field, operator, value) tuple.
type Constraint struct {
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"`
}

// FilterSpec is an ordered list of constraints combined with logical AND.
// The zero value matches every record.
type FilterSpec struct {
	Constraints []Constraint `json:"constraints,omitempty"`
}

// UserFilters carries the optional raw filter inputs of a user listing.
type UserFilters struct {
	Username string `query:"username" json:"username,omitempty"`
	Email    string `query:"email" json:"email,omitempty"`
	Role     string `query:"role" json:"role,omitempty"`
}

// BuildUserFilter emits one equality constraint per non-empty field.
func BuildUserFilter(raw UserFilters) FilterSpec {
	var filter FilterSpec
	filter = filter.with(FieldUsername, raw.Username)
	filter = filter.with(FieldEmail, raw.Email)
	filter = filter.with(FieldRole, raw.Role)

	return filter
}

// Eq returns a copy of the filter with an equality constraint on field replacing
// any existing constraint on that field. An empty value removes nothing and adds nothing.
func (f FilterSpec) Eq(field Field, value string) FilterSpec {
	if value == "" {
		return f
	}

	out := FilterSpec{Constraints: make([]Constraint, 0, len(f.Constraints)+1)}
	for _, c := range f.Constraints {
		if c.Field != field {
			out.Constraints = append(out.Constraints, c)
		}
	}

	return out.with(field, value)
}

// IsEmpty reports whether the filter matches everything.
func (f FilterSpec) IsEmpty() bool {
	return len(f.Constraints) == 0
}

func (f FilterSpec) with(field Field, value string) FilterSpec {
	if value == "" {
		return f
	}
	f.Constraints = append(f.Constraints, Constraint{Field: field, Operator: OpEq, Value: value})

	return f
}
