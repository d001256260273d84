package todo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidroman0O/gohooks"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func testConfig() Config {
	return Config{
		Seed:    "todo",
		Initial: []string{"buy milk", "write tests", "call mom"},
		Filter:  FilterAll,
	}
}

func TestInitialView(t *testing.T) {
	app := New(testConfig())

	view, err := app.Render(context.Background())
	require.NoError(t, err)

	newGoldie(t).Assert(t, "initial", []byte(view))
}

func TestScriptedSession(t *testing.T) {
	g := newGoldie(t)
	app := New(testConfig())
	ctx := context.Background()

	_, err := app.Render(ctx)
	require.NoError(t, err)

	for _, line := range []string{"toggle 2", "up 3", "type walk dog", "add"} {
		_, err := app.Exec(ctx, line)
		require.NoError(t, err, line)
	}
	g.Assert(t, "edited", []byte(app.View()))

	view, err := app.Exec(ctx, "filter active")
	require.NoError(t, err)
	g.Assert(t, "active", []byte(view))

	_, err = app.Exec(ctx, "clear")
	require.NoError(t, err)
	view, err = app.Exec(ctx, "filter done")
	require.NoError(t, err)
	g.Assert(t, "done_empty", []byte(view))
}

func TestStateSurvivesOnlyWhileRendered(t *testing.T) {
	app := New(testConfig())
	ctx := context.Background()

	_, err := app.Render(ctx)
	require.NoError(t, err)
	before := app.Runtime().Store().Len()

	_, err = app.Exec(ctx, "toggle 1")
	require.NoError(t, err)
	assert.Greater(t, app.Runtime().Store().Len(), before, "done items keep memoised lines")

	_, err = app.Exec(ctx, "remove 1")
	require.NoError(t, err)
	assert.Equal(t, before, app.Runtime().Store().Len(), "state of the removed item is purged")
}

func TestEventsCapturedBeforeChangesStillWork(t *testing.T) {
	app := New(testConfig())
	ctx := context.Background()

	_, err := app.Render(ctx)
	require.NoError(t, err)
	ev, err := app.Events()
	require.NoError(t, err)

	// Events hold handles, so events from an older render act on the
	// current list.
	require.NoError(t, ev.Add("first"))
	require.NoError(t, ev.Add("second"))
	view, err := app.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, view, "  4) [ ] first\n")
	assert.Contains(t, view, "  5) [ ] second\n")
}

func TestExecErrors(t *testing.T) {
	app := New(testConfig())
	ctx := context.Background()

	_, err := app.Exec(ctx, "add x")
	assert.ErrorIs(t, err, ErrNotRendered)

	_, err = app.Render(ctx)
	require.NoError(t, err)

	_, err = app.Exec(ctx, "fly")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = app.Exec(ctx, "toggle x")
	assert.Error(t, err)

	view, err := app.Exec(ctx, "toggle 9")
	assert.ErrorIs(t, err, gohooks.ErrIndexOutOfRange)
	assert.Contains(t, view, "3 items", "the list is rendered after a failed event")

	_, err = app.Exec(ctx, "add")
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = app.Exec(ctx, "filter someday")
	assert.ErrorIs(t, err, ErrUnknownFilter)

	view, err = app.Exec(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, app.View(), view)
}

func TestMoveDownAndUp(t *testing.T) {
	app := New(testConfig())
	ctx := context.Background()
	_, err := app.Render(ctx)
	require.NoError(t, err)

	view, err := app.Exec(ctx, "down 1")
	require.NoError(t, err)
	assert.Contains(t, view, "  1) [ ] write tests\n  2) [ ] buy milk\n")

	view, err = app.Exec(ctx, "down 3")
	require.NoError(t, err)
	assert.Contains(t, view, "  3) [ ] call mom\n", "last item cannot move down")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: mine\ninitial:\n  - one\n  - two\nfilter: active\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Seed: "mine", Initial: []string{"one", "two"}, Filter: FilterActive}, cfg)

	require.NoError(t, os.WriteFile(path, []byte("initial: [a]\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "todo", cfg.Seed)
	assert.Equal(t, FilterAll, cfg.Filter)

	require.NoError(t, os.WriteFile(path, []byte("filter: later\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, ErrUnknownFilter)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
