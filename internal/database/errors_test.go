package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
	pqErr := &pq.Error{Code: "23505", Constraint: "idx_users_username"}
	myErr := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@kpi.ua' for key 'users.idx_users_email'"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil", nil, "", false},
		{"pgx any", pgErr, "", true},
		{"pgx matching", fmt.Errorf("failed to create user: %w", pgErr), "email", true},
		{"pgx other constraint", pgErr, "username", false},
		{"pgx other code", &pgconn.PgError{Code: "23503"}, "", false},
		{"lib/pq matching", pqErr, "username", true},
		{"lib/pq other constraint", pqErr, "email", false},
		{"mysql matching", myErr, "email", true},
		{"mysql other number", &mysql.MySQLError{Number: 1452}, "", false},
		{"gorm translated", gorm.ErrDuplicatedKey, "", true},
		{"plain error", errors.New("boom"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)) {
		t.Error("wrapped ErrRecordNotFound should match")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("other errors should not match")
	}
}
