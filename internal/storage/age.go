package storage

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// AgeExpr is the storage-side counterpart of models.AgeAt: whole years
// since date_of_birth, computed by the database. The two agree on whole
// years for ordinary birth dates.
func AgeExpr(dialect string) sq.Sqlizer {
	if dialect == "mysql" {
		return sq.Expr("TIMESTAMPDIFF(YEAR, date_of_birth, CURDATE())")
	}
	return sq.Expr("date_part('year', age(date_of_birth))")
}

// AgeBetween builds a WHERE clause selecting users aged minAge..maxAge
// inclusive. Users without a birth date never match.
func AgeBetween(dialect string, minAge, maxAge int) (string, []interface{}, error) {
	if minAge > maxAge {
		return "", nil, fmt.Errorf("invalid age range %d-%d", minAge, maxAge)
	}

	age, _, err := AgeExpr(dialect).ToSql()
	if err != nil {
		return "", nil, err
	}

	return sq.And{
		sq.NotEq{"date_of_birth": nil},
		sq.Expr(age+" >= ?", minAge),
		sq.Expr(age+" <= ?", maxAge),
	}.ToSql()
}
