package postgres_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	postgres_adapter "delivery-service/internal/adapters/out/postgres"
	"delivery-service/internal/adapters/out/postgres/deliveryrepo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openLogged(t *testing.T) (*gorm.DB, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewJSONHandler(buf, nil))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := postgres_adapter.OpenDialector(sqlite.Open(dsn), log)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres_adapter.Migrate(db))
	buf.Reset()
	return db, buf
}

func TestOpenDialector_MissingRowIsNotLogged(t *testing.T) {
	db, buf := openLogged(t)

	_, err := deliveryrepo.NewGormDeliveryRepository(db).Get(context.Background(), 404)

	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestOpenDialector_FailuresGoToSlog(t *testing.T) {
	db, buf := openLogged(t)

	err := db.Exec("SELECT * FROM no_such_table").Error

	require.Error(t, err)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"source":"gorm"`)
	assert.Contains(t, buf.String(), "no_such_table")
	assert.NotContains(t, buf.String(), "\x1b[")
}
