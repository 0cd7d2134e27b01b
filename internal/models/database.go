package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type SWContext string

const (
	DBContextURL SWContext = "sw-backend-url"
)

// pgUniqueViolation is the postgresql error code for unique constraint violations.
const pgUniqueViolation = "23505"

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: &logger{
			Logger: log.Logger,
		},
	}
}

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	// Migration with foreign keys disabled
	//
	// sqlite does not support ALTER COLUMN, so tables are copied to a temporary table,
	// then the table is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	// Close the connection
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors. It also serializes
	// all writers, which makes the budget check and the insert of an
	// expense atomic.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return register(db)
}

// ConnectPostgres opens a postgresql database, migrates it and
// configures the connection pool.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return register(db)
}

// register registers the error rewriting callbacks and sets
// the exported variable.
func register(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "spendwise:after_query", queryCallback},
		{db.Callback().Query().After("*"), "spendwise:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "spendwise:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "spendwise:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "spendwise:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "spendwise:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "spendwise:after_delete_general", generalCallback},
		{db.Callback().Row().After("*"), "spendwise:after_row_general", generalCallback},
		{db.Callback().Raw().After("*"), "spendwise:after_raw_general", generalCallback},
	}

	for _, c := range callbacks {
		err := c.processor.Register(c.name, c.fn)
		if err != nil {
			return err
		}
	}

	// Set the exported variable
	DB = db

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// uniqueConstraints maps unique indices to the errors returned when they
// are violated. The first value is the prefix of the sqlite error message,
// the second the name of the index used by postgresql.
var uniqueConstraints = []struct {
	sqlite string
	index  string
	err    error
}{
	{"UNIQUE constraint failed: budgets.", "budget_owner_category_month", ErrDuplicateBudget},
	{"UNIQUE constraint failed: categories.", "category_owner_name", ErrCategoryNameNotUnique},
	{"UNIQUE constraint failed: users.email", "user_email", ErrEmailInUse},
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var index string
	var pgErr *pgconn.PgError
	if errors.As(db.Error, &pgErr) && pgErr.Code == pgUniqueViolation {
		index = pgErr.ConstraintName
	}

	for _, c := range uniqueConstraints {
		if strings.Contains(db.Error.Error(), c.sqlite) || index == c.index {
			db.Error = c.err
			return
		}
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		// A general error where we cannot provide more useful information to the end user
		// We log the error and provide a general error message so that server admins can debug
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral

		return
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(User{}, Transaction{}, Budget{}, Category{}, MatchRule{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	// Older records store expenses with a negative amount. The amount is
	// unsigned, the direction is stored in the type.
	err = db.Exec("UPDATE transactions SET amount = -amount WHERE amount < 0").Error
	if err != nil {
		return fmt.Errorf("error when normalizing transaction amounts: %w", err)
	}

	err = db.Exec("UPDATE transactions SET mode = ? WHERE mode = ?", ModeBankTransfer, "Bank Transfer").Error
	if err != nil {
		return fmt.Errorf("error when normalizing transaction modes: %w", err)
	}

	return nil
}
