// internal/db/db.go
package db

import (
    "database/sql"
    "fmt"
    "time"

    _ "github.com/lib/pq"
    "github.com/sirupsen/logrus"
)

// Init opens and pings the Postgres database at dsn.
func Init(dsn string) (*sql.DB, error) {
    conn, err := sql.Open("postgres", dsn)
    if err != nil {
        return nil, fmt.Errorf("failed to connect to DB: %w", err)
    }
    conn.SetMaxOpenConns(20)
    conn.SetMaxIdleConns(5)
    conn.SetConnMaxLifetime(30 * time.Minute)

    if err = conn.Ping(); err != nil {
        conn.Close()
        return nil, fmt.Errorf("failed to ping DB: %w", err)
    }

    logrus.Info("✅ Connected to database")
    return conn, nil
}
