package services

import (
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds identifier regeneration. The 4-digit space makes
// exhaustion unlikely; when it happens the caller gets a Conflict instead of
// looping forever.
const maxCodeAttempts = 5

// isDuplicateKey reports whether err is a MySQL duplicate-entry violation
// (errno 1062). Falls back to message sniffing for wrapped driver errors.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}

// dbOr returns tx when the caller is already inside a transaction, the
// service's own handle otherwise.
func dbOr(tx, db *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
