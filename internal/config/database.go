// internal/config/database.go
package config

import (
	"fmt"
)

// DSN renders the postgres connection string for the audit and session
// store.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s application_name=homepage-admin",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}
