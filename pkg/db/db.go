package db

import (
	"fmt"

	"github.com/rewardly/cbs/pkg/config"
)

func GetDBDSN(config *config.DatabaseConfig) string {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.User,
		config.Password,
		config.Host,
		config.Port,
		config.DBName,
		config.SSLMode,
	)
	if config.LockTimeout > 0 {
		// Bounded row-lock waits: a blocked FOR UPDATE fails with 55P03
		// instead of waiting forever, which the repositories surface as a
		// retryable conflict.
		dsn += fmt.Sprintf("&lock_timeout=%d", config.LockTimeout.Milliseconds())
	}
	return dsn
}
