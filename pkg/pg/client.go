package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carlohamalainen/log/pkg/log"
	"github.com/galdor/go-ejson"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultPoolSize                     = 5
	DefaultConnectionAcquisitionTimeout = 5000 // milliseconds
)

var (
	ErrNoConnectionAvailable = errors.New("no connection available")
)

type ClientCfg struct {
	Log  log.Logger `json:"-"`
	Name string     `json:"-"`

	URI             string `json:"uri"`
	ApplicationName string `json:"application_name,omitempty"`

	PoolSize int `json:"pool_size,omitempty"`

	ConnectionAcquisitionTimeout int `json:"connection_acquisition_timeout,omitempty"` // milliseconds
}

type Client struct {
	Cfg ClientCfg
	Log log.Logger

	Pool *pgxpool.Pool

	connectionAcquisitionTimeout time.Duration
}

func (cfg *ClientCfg) ValidateJSON(v *ejson.Validator) {
	v.CheckStringURI("uri", cfg.URI)

	if cfg.PoolSize != 0 {
		v.CheckIntMinMax("pool_size", cfg.PoolSize, 1, 1000)
	}

	if cfg.ConnectionAcquisitionTimeout != 0 {
		v.CheckIntMin("connection_acquisition_timeout",
			cfg.ConnectionAcquisitionTimeout, 1)
	}
}

func NewClient(cfg ClientCfg) (*Client, error) {
	if cfg.Log == nil {
		cfg.Log = log.DefaultLogger("pg")
	}

	if cfg.PoolSize == 0 {
		cfg.PoolSize = DefaultPoolSize
	}

	if cfg.ConnectionAcquisitionTimeout == 0 {
		cfg.ConnectionAcquisitionTimeout = DefaultConnectionAcquisitionTimeout
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid URI: %w", err)
	}

	if cfg.ApplicationName != "" {
		runtimeParams := poolCfg.ConnConfig.RuntimeParams
		runtimeParams["application_name"] = cfg.ApplicationName
	}

	poolCfg.MaxConns = int32(cfg.PoolSize)

	poolCfg.MaxConnIdleTime = 10 * time.Minute
	poolCfg.MaxConnLifetimeJitter = time.Second

	log.InfoData(cfg.Log,
		log.Data{
			"database": poolCfg.ConnConfig.Database,
			"host":     poolCfg.ConnConfig.Host,
			"user":     poolCfg.ConnConfig.User,
		},
		"connecting to database")

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}

	c := Client{
		Cfg: cfg,
		Log: cfg.Log,

		Pool: pool,
	}

	c.connectionAcquisitionTimeout =
		time.Duration(cfg.ConnectionAcquisitionTimeout) * time.Millisecond

	return &c, nil
}

func (c *Client) Close() {
	c.Pool.Close()
}

func (c *Client) WithConn(fn func(Conn) error) error {
	return c.withConn(fn)
}

func (c *Client) WithTx(fn func(Conn) error) error {
	return c.withConn(func(conn Conn) error {
		ctx := context.Background()

		if _, err := conn.Exec(ctx, "BEGIN"); err != nil {
			return fmt.Errorf("cannot begin transaction: %w", err)
		}

		if err := fn(conn); err != nil {
			if _, rbErr := conn.Exec(ctx, "ROLLBACK"); rbErr != nil {
				// There is nothing we can do here, and we do want to return the
				// function error, so we simply log the rollback error.
				//
				// Note that when the connection is released by withConn after a
				// rollback failure, the connection will not be in an idle
				// state, and Pgx will close it, as it should be.
				log.Attention(c.Log, "cannot rollback transaction: %v", rbErr)
			}

			return err
		}

		if _, err := conn.Exec(ctx, "COMMIT"); err != nil {
			return fmt.Errorf("cannot commit transaction: %w", err)
		}

		return nil
	})
}

func (c *Client) withConn(fn func(Conn) error) error {
	ctx, cancel := context.WithTimeout(context.Background(),
		c.connectionAcquisitionTimeout)
	defer cancel()

	conn, err := c.Pool.Acquire(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrNoConnectionAvailable
		}

		return err
	}
	defer conn.Release()

	return fn(conn)
}
