package db

import (
	"context"
	"errors"
	"testing"

	"github.com/lumina-accesorios/lumina-backend/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type txRow struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"size:64"`
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	cfg := config.DBConfig{DSN: "file::memory:?cache=shared", Driver: "sqlite"}
	client, err := New(context.Background(), cfg, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&txRow{}))
	return client
}

func TestNew_RequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), config.DBConfig{}, true, nil)
	require.Error(t, err)
}

func TestClient_Ping(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&txRow{ID: 1, Name: "committed"}).Error
	})
	require.NoError(t, err)

	var row txRow
	require.NoError(t, client.DB().WithContext(ctx).First(&row, 1).Error)
	require.Equal(t, "committed", row.Name)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&txRow{ID: 2, Name: "rolled back"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, client.DB().WithContext(ctx).Model(&txRow{}).Where("id = ?", 2).Count(&count).Error)
	require.Zero(t, count)
}
