package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName   = "shelter-api"
	healthCheckPeriod = 30 * time.Second
)

// DSN renders the connection URL with user and password escaped.
func (c *DatabaseConfig) DSN() string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("application_name", applicationName)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// PoolConfig maps the pool settings onto pgxpool. Sessions run in UTC so
// month boundaries in the analytics queries line up with the Go side.
func (c *DatabaseConfig) PoolConfig() (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(c.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database url for %s: %w", c.Name, err)
	}

	pc.MaxConns = int32(c.MaxOpenConns)
	pc.MinConns = int32(min(c.MaxIdleConns, c.MaxOpenConns))
	pc.MaxConnLifetime = c.ConnMaxLifetime
	pc.MaxConnIdleTime = c.ConnMaxIdleTime
	pc.HealthCheckPeriod = healthCheckPeriod
	pc.ConnConfig.RuntimeParams["timezone"] = "UTC"

	return pc, nil
}
