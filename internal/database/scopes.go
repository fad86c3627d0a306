package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/project-tracker/internal/utils"
)

// Paginate applies pagination to a GORM query. A zero limit returns every row.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OrderBy sorts ascending by a quoted column name.
func OrderBy(column string) func(db *gorm.DB) *gorm.DB {
	return orderBy(column, false)
}

// OrderByDesc sorts descending by a quoted column name.
func OrderByDesc(column string) func(db *gorm.DB) *gorm.DB {
	return orderBy(column, true)
}

func orderBy(column string, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	}
}
