package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/avopro-hr/hr-backend-go/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates missing tables and indexes. Every statement is
// idempotent so it runs on each start.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
