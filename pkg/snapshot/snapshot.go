// Package snapshot stores exported content model documents per environment,
// so a session can start without reaching the management API.
//
// Two backends implement [Store]:
//   - [FileStore]: one export file per environment in a directory (CLI)
//   - [MongoStore]: one record per environment in a MongoDB collection
//
// Environment ids are validated with [errors.ValidateEnvironmentID] before
// they reach a path or a query. Loading a missing environment fails with
// SNAPSHOT_NOT_FOUND.
//
// [errors.ValidateEnvironmentID]: github.com/matzehuels/modelgraph/pkg/errors.ValidateEnvironmentID
package snapshot

import (
	"context"
	"time"

	"github.com/matzehuels/modelgraph/pkg/errors"
	"github.com/matzehuels/modelgraph/pkg/model"
)

// Backend names accepted by configuration.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Info describes a stored snapshot without its document.
type Info struct {
	EnvironmentID string    `json:"environmentId"`
	SavedAt       time.Time `json:"savedAt"`
	Size          int64     `json:"size"`
}

// Store persists documents keyed by environment id.
type Store interface {
	// Save stores doc as the snapshot of env, replacing any previous one.
	Save(ctx context.Context, env string, doc model.Document) error

	// Load returns the snapshot of env.
	Load(ctx context.Context, env string) (model.Document, error)

	// List returns every snapshot, ordered by environment id.
	List(ctx context.Context) ([]Info, error)

	// Delete removes the snapshot of env. Deleting a missing one is not an
	// error.
	Delete(ctx context.Context, env string) error

	// Close releases the backend's resources.
	Close() error
}

func notFound(env string) error {
	return errors.New(errors.ErrCodeSnapshotNotFound, "no snapshot for environment %q", env)
}
