package repomanager

import (
	"context"
	"database/sql"

	"github.com/TayeEmmanu/Habitly/internal/dbx"
	"github.com/TayeEmmanu/Habitly/internal/server/repositories/completions"
	"github.com/TayeEmmanu/Habitly/internal/server/repositories/habits"
	"github.com/TayeEmmanu/Habitly/internal/server/repositories/refreshtokens"
	"github.com/TayeEmmanu/Habitly/internal/server/repositories/resettokens"
	"github.com/TayeEmmanu/Habitly/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
	Habits(db dbx.DBTX) habits.Repository
	Completions(db dbx.DBTX) completions.Repository
}
