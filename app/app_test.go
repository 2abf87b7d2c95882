package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"planillas/app/dashboard"
	"planillas/app/record"
	"planillas/app/settings"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const twoRows = `[
  ["C1", "Muni Lota", 2020, "Enero", 500000, 400000, "Planta", "db", "1-9", "ana", "Profesional", "30 a 50", "F", "2020-01-01", null, null, "P1", "Municipal", "Si", 2021, "Marzo", 600000, 480000, "Planta", "Profesional", 1614556800000, 12, "JEFE", "JEFE"],
  ["C2", "Muni Tome", 2021, "Mayo", 300000, 250000, "Contrata", "db", "2-7", "juan", 0, "18 a 30", "M", "2021-05-01", null, null, "P1", "Municipal", "Si", null, null, 320000, 260000, "Contrata", null, null, 3, "AUX", "AUX"]
]`

func newTestApp(t *testing.T, dataset settings.DatasetSettings) *App {
	t.Helper()
	s := settings.Defaults()
	s.Dataset = dataset
	s.DebounceMS = 0
	a := NewApp(s, zerolog.Nop())
	t.Cleanup(func() { _ = a.Shutdown() })
	return a
}

func writeDataset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpenFromFile(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "data.json", twoRows)
	a := newTestApp(t, settings.DatasetSettings{Path: path})

	s, err := a.Open(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, a.Active())
	assert.Len(t, s.Dashboard.FilteredRows(), 2)
	assert.Equal(t, "muni", s.Dashboard.Variant().Name)

	require.NoError(t, s.Dashboard.SelectFacet("organismo", record.String("Muni Lota")))
	assert.Len(t, s.Dashboard.FilteredRows(), 1)
}

func TestOpenFromGlob(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "2020/a.json", twoRows)
	writeDataset(t, dir, "2021/b.json", twoRows)
	a := newTestApp(t, settings.DatasetSettings{Root: dir, Glob: "**/*.json"})

	s, err := a.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, s.Dashboard.Dataset().Len())
}

func TestOpenWithoutDataset(t *testing.T) {
	a := newTestApp(t, settings.DatasetSettings{})
	_, err := a.Open(context.Background())
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestOpenFailsOnBadPayload(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "data.json", `{"rows": 1}`)
	a := newTestApp(t, settings.DatasetSettings{Path: path})
	_, err := a.Open(context.Background())
	var loadErr *record.DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Empty(t, a.Sessions(), "no session is opened from a failed load")
}

func TestSessionRegistry(t *testing.T) {
	path := writeDataset(t, t.TempDir(), "data.json", twoRows)
	a := newTestApp(t, settings.DatasetSettings{Path: path})
	ctx := context.Background()

	ds, err := a.LoadDataset(ctx, a.Settings().Dataset)
	require.NoError(t, err)

	first, err := a.OpenDataset(ctx, ds, "")
	require.NoError(t, err)
	second, err := a.OpenDataset(ctx, ds, "estadistica")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())

	infos := a.Sessions()
	require.Len(t, infos, 2)
	assert.Equal(t, first.ID(), infos[0].ID)
	assert.Equal(t, "estadistica", infos[1].Variant)
	assert.True(t, infos[1].Active)
	assert.Equal(t, ds.Fingerprint(), infos[0].Fingerprint)

	require.NoError(t, a.SetActive(first.ID()))
	assert.Same(t, first, a.Active())
	assert.Error(t, a.SetActive("nope"))

	require.NoError(t, a.CloseSession(first.ID()))
	assert.Same(t, second, a.Active(), "the remaining session becomes active")
	assert.Error(t, a.CloseSession(first.ID()))

	_, err = a.OpenDataset(ctx, ds, "nope")
	assert.ErrorContains(t, err, "unknown variant")

	require.NoError(t, a.Shutdown())
	assert.Nil(t, a.Active())
	assert.ErrorIs(t, second.Dashboard.ClearFilters(), dashboard.ErrClosed)
}
