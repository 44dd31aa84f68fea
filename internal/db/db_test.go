package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestGlobalSettingsRoundTrip(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	_, ok, err := d.GetGlobalSetting(ctx, "sound_file_id")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, d.SetGlobalSetting(ctx, "sound_file_id", "abc"))
	v, ok, err := d.GetGlobalSetting(ctx, "sound_file_id")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)

	// Upsert overwrites.
	require.NoError(t, d.SetGlobalSetting(ctx, "sound_file_id", "def"))
	v, _, err = d.GetGlobalSetting(ctx, "sound_file_id")
	require.NoError(t, err)
	require.Equal(t, "def", v)
}

func TestCountryHealthUpsertAndList(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	require.NoError(t, d.UpdateCountryHealth(ctx, "russia", "cyc1", now, ""))
	require.NoError(t, d.UpdateCountryHealth(ctx, "germany", "cyc1", now, "HTTP 403 Forbidden"))
	require.NoError(t, d.UpdateCountryHealth(ctx, "russia", "cyc2", now.Add(time.Minute), ""))

	health, err := d.ListCountryHealth(ctx)
	require.NoError(t, err)
	require.Len(t, health, 2)

	// Ordered by country id.
	require.Equal(t, "germany", health[0].CountryID)
	require.Equal(t, "HTTP 403 Forbidden", health[0].LastError)

	require.Equal(t, "russia", health[1].CountryID)
	require.Equal(t, "cyc2", health[1].Cycle)
	require.True(t, health[1].FetchedAt.Equal(now.Add(time.Minute)))
	require.Empty(t, health[1].LastError)
}

func TestUpdateLastPost(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	at := time.Unix(1756684800, 0)
	require.NoError(t, d.UpdateLastPost(ctx, 123, at))

	id, ok, err := d.GetGlobalSetting(ctx, "last_post_message_id")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "123", id)

	ts, ok, err := d.GetGlobalSetting(ctx, "last_post_time")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1756684800", ts)
}
