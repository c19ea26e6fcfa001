package postgres

//nolint:revive
import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"kost/config"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

const pqClassConnectionException = "08"

type txKey struct{}

// Executor is satisfied by *sqlx.DB and *sqlx.Tx.
type Executor interface {
	sqlx.ExtContext
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// retireDelay is how long a replaced pool stays open so transactions begun on
// it can finish.
var retireDelay = time.Minute

// reconnectCooldown collapses reconnects requested by concurrent failures.
var reconnectCooldown = 2 * time.Second

type dialFunc func(ctx context.Context, cfg config.Config) (read, write *sqlx.DB, err error)

// Connection holds the read and write pools. The pools are swapped by
// Reconnect and must only be read under mu.
type Connection struct {
	mu            sync.RWMutex
	read          *sqlx.DB
	write         *sqlx.DB
	lastReconnect time.Time

	config *config.Config
	dial   dialFunc
}

func New(config *config.Config) *Connection {
	return &Connection{
		read:   CreatePostgresReadConn(*config),
		write:  CreatePostgresWriteConn(*config),
		config: config,
		dial:   dialPools,
	}
}

func (c *Connection) pools() (read, write *sqlx.DB) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.read, c.write
}

// WithTx runs fn inside a write transaction carried by the returned context.
// Nested calls join the outer transaction.
func (c *Connection) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	_, write := c.pools()

	tx, err := write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// TxFromContext returns the transaction opened by WithTx, if any.
func TxFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)

	return tx, ok
}

// Writer returns the transaction in ctx or the write pool.
func (c *Connection) Writer(ctx context.Context) Executor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}

	_, write := c.pools()

	return write
}

// Reader returns the transaction in ctx or the read pool.
func (c *Connection) Reader(ctx context.Context) Executor {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}

	read, _ := c.pools()

	return read
}

// Reconnect replaces both pools with fresh connections. The old pools are
// closed after retireDelay so in-flight transactions are not cut off.
func (c *Connection) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config == nil {
		return errors.New("postgres connection has no configuration")
	}

	if !c.lastReconnect.IsZero() && time.Since(c.lastReconnect) < reconnectCooldown {
		return nil
	}

	read, write, err := c.dial(ctx, *c.config)
	if err != nil {
		return err
	}

	oldRead, oldWrite := c.read, c.write
	c.read, c.write = read, write
	c.lastReconnect = time.Now()

	retire(oldRead, oldWrite)

	log.Info().Msg("Database connection re-established")

	return nil
}

func retire(dbs ...*sqlx.DB) {
	for _, db := range dbs {
		if db == nil {
			continue
		}

		db.SetMaxIdleConns(0)

		time.AfterFunc(retireDelay, func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close retired database connection")
			}
		})
	}
}

func dialPools(ctx context.Context, cfg config.Config) (read, write *sqlx.DB, err error) {
	write = CreatePostgresWriteConn(cfg)
	read = CreatePostgresReadConn(cfg)

	if write == nil || read == nil {
		for _, db := range []*sqlx.DB{read, write} {
			if db != nil {
				_ = db.Close()
			}
		}

		return nil, nil, errors.New("failed to re-establish database connection")
	}

	if err = write.PingContext(ctx); err != nil {
		_ = read.Close()
		_ = write.Close()

		return nil, nil, fmt.Errorf("failed to ping database after reconnect: %w", err)
	}

	return read, write, nil
}

// Close releases both pools.
func (c *Connection) Close() {
	read, write := c.pools()

	for _, db := range []*sqlx.DB{read, write} {
		if db != nil {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database connection")
			}
		}
	}
}

// IsTransient reports whether err is a connection level failure worth one retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return strings.HasPrefix(string(pqErr.Code), pqClassConnectionException)
	}

	return false
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}
	return baseName
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"write",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		config.DB.Postgres.Write.Host,
		config.DB.Postgres.Write.Port,
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) *sqlx.DB {
	return CreatePostgresConnection(
		"read",
		config.DB.Postgres.Read.Username,
		config.DB.Postgres.Read.Password,
		config.DB.Postgres.Read.Host,
		config.DB.Postgres.Read.Port,
		getDBName(config, config.DB.Postgres.Read.Name),
		config.DB.Postgres.Read.SSLMode,
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresConnection creates a database connection.
func CreatePostgresConnection(name, username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", host).
				Str("port", port).
				Str("dbName", dbName).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
