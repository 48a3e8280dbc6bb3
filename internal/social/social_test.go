package social_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"socialnet/internal/auth"
	"socialnet/internal/db"
	"socialnet/internal/models"
	"socialnet/internal/social"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	svc  *social.Service
	db   *sql.DB
	logs *observer.ObservedLogs
}

var defaultPolicy = social.Policy{RejectSelfFollow: true, RequireReactionTarget: true}

func newFixture(t *testing.T, policy social.Policy) *fixture {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "social.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	svc := social.New(database, zap.New(core), auth.NewHasher(bcrypt.MinCost), auth.NewTokens("test-secret", time.Hour), policy)
	return &fixture{svc: svc, db: database, logs: logs}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := f.svc.Accounts.Register(context.Background(), name, name+"@example.com", "pw-"+name)
	require.NoError(t, err)
	return u
}

func (f *fixture) post(t *testing.T, owner *models.User) *models.Post {
	t.Helper()
	p, err := f.svc.Posts.CreatePost(context.Background(), owner, "T", "D")
	require.NoError(t, err)
	return p
}

// failOn installs a trigger that aborts any statement of op on table.
func (f *fixture) failOn(t *testing.T, op, table string) {
	t.Helper()
	_, err := f.db.Exec(`CREATE TRIGGER fail_` + op + `_` + table + ` BEFORE ` + op + ` ON ` + table +
		` BEGIN SELECT RAISE(ABORT, 'injected failure'); END;`)
	require.NoError(t, err)
}

func requireKind(t *testing.T, want social.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, social.KindOf(err), "error: %v", err)
}
