package firestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const envEmulatorHost = "FIRESTORE_EMULATOR_HOST"

// Client wraps the Firestore connection used by the catalog and settings repositories.
type Client struct {
	raw *firestore.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New dials Firestore and verifies connectivity. The emulator host, when
// configured, replaces credentials with an insecure local channel.
func New(ctx context.Context, gcp config.GCPConfig, cfg config.FirestoreConfig) (*Client, error) {
	projectID := strings.TrimSpace(gcp.ProjectID)
	if projectID == "" {
		return nil, errors.New("firestore: project id is required")
	}

	dialCtx := ctx
	var cancel context.CancelFunc
	if cfg.DialTimeout > 0 {
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}

	var opts []option.ClientOption
	if gcp.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(gcp.CredentialsFile))
	}
	if host := emulatorHost(cfg); host != "" {
		if os.Getenv(envEmulatorHost) == "" {
			_ = os.Setenv(envEmulatorHost, host)
		}
		opts = append(opts,
			option.WithoutAuthentication(),
			option.WithEndpoint(host),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	raw, err := firestore.NewClient(dialCtx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: create client: %w", err)
	}
	return &Client{raw: raw}, nil
}

// Collection returns a collection reference by name.
func (c *Client) Collection(name string) *firestore.CollectionRef {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Collection(name)
}

// Ping issues a cheap read to verify the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return errors.New("firestore client not initialized")
	}
	iter := c.raw.Collections(ctx)
	if _, err := iter.Next(); err != nil && !isIteratorDone(err) {
		return fmt.Errorf("ping firestore: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

func emulatorHost(cfg config.FirestoreConfig) string {
	if trimmed := strings.TrimSpace(cfg.EmulatorHost); trimmed != "" {
		return trimmed
	}
	return strings.TrimSpace(os.Getenv(envEmulatorHost))
}
