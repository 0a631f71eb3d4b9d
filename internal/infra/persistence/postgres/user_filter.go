package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolapp/internal/domain/query"
	"schoolapp/internal/errors"
)

// ErrUnsupportedFilter is recorded on the query when a constraint cannot be translated.
var ErrUnsupportedFilter = errors.New("unsupported filter constraint")

var userFilterColumns = map[query.Field]string{
	query.FieldUsername: "username",
	query.FieldEmail:    "email",
	query.FieldRole:     "user_role",
}

// applyUserFilter returns a scope translating filter into WHERE conditions joined by AND.
func applyUserFilter(filter query.FilterSpec) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.IsEmpty() {
			return db
		}
		for _, c := range filter.Constraints {
			column, ok := userFilterColumns[c.Field]
			if !ok {
				_ = db.AddError(errors.Wrapf(ErrUnsupportedFilter, "field %q", c.Field))

				return db
			}
			if c.Operator != query.OpEq {
				_ = db.AddError(errors.Wrapf(ErrUnsupportedFilter, "operator %q", c.Operator))

				return db
			}
			db = db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: c.Value})
		}

		return db
	}
}
