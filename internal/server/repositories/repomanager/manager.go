package repomanager

import (
	"context"
	"database/sql"

	"github.com/sparks/noteapp/internal/dbx"
	"github.com/sparks/noteapp/internal/server/repositories/notes"
	"github.com/sparks/noteapp/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
