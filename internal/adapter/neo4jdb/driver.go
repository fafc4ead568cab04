package neo4jdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Driver owns the process-wide Neo4j driver. Sessions are opened per dry-run
// by the Executor; the driver itself holds no session state.
type Driver struct {
	driver neo4j.DriverWithContext
}

// NewDriver creates a driver for uri with basic auth. No network round-trip
// happens here; call VerifyConnectivity to probe the server.
func NewDriver(uri, username, password, userAgent string) (*Driver, error) {
	driver, err := neo4j.NewDriverWithContext(uri,
		neo4j.BasicAuth(username, password, ""),
		func(c *neo4j.Config) {
			if userAgent != "" {
				c.UserAgent = userAgent
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}
	return &Driver{driver: driver}, nil
}

func (d *Driver) VerifyConnectivity(ctx context.Context) error {
	if err := d.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("verifying connectivity: %w", err)
	}
	return nil
}

func (d *Driver) NewSession(ctx context.Context, config neo4j.SessionConfig) neo4j.SessionWithContext {
	return d.driver.NewSession(ctx, config)
}

func (d *Driver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}
