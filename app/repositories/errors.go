package repositories

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports whether err is a unique-constraint violation from any
// of the supported drivers.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	// SQLite drivers without error translation.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
