package pg

import "errors"

var (
	// ErrFailedToOpenDBConnection is returned when the pool cannot be
	// established within the configured retry budget.
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")

	// ErrEmptyConnectionString is returned when no connection string is
	// configured.
	ErrEmptyConnectionString = errors.New("empty postgres connection string")

	// ErrHealthcheckFailed is returned by the Healthcheck probe when the
	// database does not answer a ping.
	ErrHealthcheckFailed = errors.New("healthcheck failed, connection is not available")

	// ErrFailedToParseDBConfig is returned for malformed connection strings.
	ErrFailedToParseDBConfig = errors.New("failed to parse db config")

	// ErrFailedToApplyMigrations wraps any goose failure during Migrate.
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")

	// ErrMigrationsDirNotFound is returned when the configured migrations
	// path does not exist. Callers that ship without migrations can treat
	// it as non-fatal.
	ErrMigrationsDirNotFound = errors.New("migrations directory not found")

	// ErrMigrationPathNotProvided is returned when Migrate is called with
	// an empty migrations path.
	ErrMigrationPathNotProvided = errors.New("migration path not provided")
)
