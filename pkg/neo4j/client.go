package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const defaultConnectTimeout = 5 * time.Second

// Client wraps the Neo4j driver for reuse across stores
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// Config holds Neo4j connection configuration
type Config struct {
	URI      string
	Username string
	Password string
	// Database is optional; empty uses the server default
	Database       string
	ConnectTimeout time.Duration
}

// NewClient creates a driver and verifies connectivity before returning
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4j: uri is required")
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("neo4j: create driver: %w", err)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	verifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j: verify connectivity: %w", err)
	}

	return &Client{driver: driver, database: cfg.Database}, nil
}

// Close closes the driver
func (c *Client) Close(ctx context.Context) error {
	if c.driver != nil {
		return c.driver.Close(ctx)
	}
	return nil
}

// Write runs fn in a managed write transaction
func (c *Client) Write(ctx context.Context, fn neo4j.ManagedTransactionWork) (any, error) {
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer func() {
		_ = session.Close(ctx)
	}()
	return session.ExecuteWrite(ctx, fn)
}

// Read runs fn in a managed read transaction
func (c *Client) Read(ctx context.Context, fn neo4j.ManagedTransactionWork) (any, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer func() {
		_ = session.Close(ctx)
	}()
	return session.ExecuteRead(ctx, fn)
}

func (c *Client) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.database,
	})
}
