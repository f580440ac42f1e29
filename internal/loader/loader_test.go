package loader_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/esqllint/internal/loader"
	"github.com/leapstack-labs/esqllint/internal/testutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "flows", "Main.esql"), "CREATE COMPUTE MODULE Main END MODULE;")
	writeFile(t, filepath.Join(root, "flows", "util", "Strings.esql"), "DECLARE a INTEGER;")
	writeFile(t, filepath.Join(root, "flows", "README.md"), "# docs")
	writeFile(t, filepath.Join(root, "generated", "Gen.esql"), "DECLARE b INTEGER;")
	writeFile(t, filepath.Join(root, ".git", "Hidden.esql"), "DECLARE c INTEGER;")
	return root
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	root := setupTree(t)

	tests := []struct {
		name string
		opts loader.Options
		want []string
	}{
		{
			name: "default include",
			want: []string{"flows/Main.esql", "flows/util/Strings.esql", "generated/Gen.esql"},
		},
		{
			name: "exclude directory",
			opts: loader.Options{Exclude: []string{"generated/**"}},
			want: []string{"flows/Main.esql", "flows/util/Strings.esql"},
		},
		{
			name: "exclude directory by name",
			opts: loader.Options{Exclude: []string{"generated"}},
			want: []string{"flows/Main.esql", "flows/util/Strings.esql"},
		},
		{
			name: "custom include",
			opts: loader.Options{Include: []string{"flows/*.esql"}},
			want: []string{"flows/Main.esql"},
		},
		{
			name: "brace alternatives",
			opts: loader.Options{Include: []string{"**/*.{esql,md}"}, Exclude: []string{"**/util/**"}},
			want: []string{"flows/Main.esql", "flows/README.md", "generated/Gen.esql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = testutil.NewTestLogger(t)
			l, err := loader.New(tt.opts)
			require.NoError(t, err)

			files, err := l.Discover(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, root, files))
		})
	}
}

func TestDiscover_ExplicitFiles(t *testing.T) {
	root := setupTree(t)
	l, err := loader.New(loader.Options{Exclude: []string{"**/Gen.esql"}})
	require.NoError(t, err)

	readme := filepath.Join(root, "flows", "README.md")
	main := filepath.Join(root, "flows", "Main.esql")
	files, err := l.Discover(readme, main, main, filepath.Join(root, "generated", "Gen.esql"))
	require.NoError(t, err)

	assert.Equal(t, []string{main, readme}, files, "explicit files bypass include, dedupe, honour exclude")
}

func TestDiscover_Errors(t *testing.T) {
	_, err := loader.New(loader.Options{Include: []string{"[unclosed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")

	l, err := loader.New(loader.Options{})
	require.NoError(t, err)
	_, err = l.Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad(t *testing.T) {
	root := setupTree(t)
	l, err := loader.New(loader.Options{Exclude: []string{"generated/**"}})
	require.NoError(t, err)

	files, err := l.Load(filepath.Join(root, "flows"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "flows", "Main.esql"), files[0].Path)
	assert.Equal(t, "CREATE COMPUTE MODULE Main END MODULE;", files[0].Source)
	assert.Equal(t, "DECLARE a INTEGER;", files[1].Source)
}

func TestRead_ReportsMissingFiles(t *testing.T) {
	root := setupTree(t)
	l, err := loader.New(loader.Options{})
	require.NoError(t, err)

	main := filepath.Join(root, "flows", "Main.esql")
	files, err := l.Read([]string{main, filepath.Join(root, "gone.esql")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.esql")
	require.Len(t, files, 1, "readable files are still returned")
	assert.Equal(t, main, files[0].Path)
}

func TestMatches(t *testing.T) {
	l, err := loader.New(loader.Options{Exclude: []string{"test/**"}})
	require.NoError(t, err)

	assert.True(t, l.Matches("a.esql"))
	assert.True(t, l.Matches(filepath.Join("x", "y", "a.esql")))
	assert.False(t, l.Matches("a.sql"))
	assert.False(t, l.Matches("test/a.esql"))
}

func TestWatcher(t *testing.T) {
	root := setupTree(t)
	l, err := loader.New(loader.Options{Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	w, err := l.NewWatcher(20*time.Millisecond, root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(paths []string) { changes <- paths })
	}()

	// Non-source files are ignored.
	writeFile(t, filepath.Join(root, "flows", "notes.txt"), "ignored")
	target := filepath.Join(root, "flows", "Main.esql")
	writeFile(t, target, "CREATE COMPUTE MODULE Main END MODULE; -- edited")

	select {
	case got := <-changes:
		abs, err := filepath.Abs(target)
		require.NoError(t, err)
		assert.Equal(t, []string{abs}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestDiscover_LogsCount(t *testing.T) {
	root := setupTree(t)
	logger, logs := testutil.NewCapturingLogger()
	l, err := loader.New(loader.Options{Logger: logger})
	require.NoError(t, err)

	files, err := l.Discover(root)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `msg="discovered source files"`)
	assert.Contains(t, logs.String(), fmt.Sprintf("count=%d", len(files)))
}

func TestWatcher_RunWaitsForCallback(t *testing.T) {
	root := setupTree(t)
	l, err := loader.New(loader.Options{Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	w, err := l.NewWatcher(10*time.Millisecond, root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var finished atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func([]string) {
			select {
			case started <- struct{}{}:
			default:
			}
			<-release
			finished.Store(true)
		})
	}()

	writeFile(t, filepath.Join(root, "flows", "Main.esql"), "CREATE COMPUTE MODULE Main END MODULE;")
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case <-done:
		t.Fatal("Run returned while the callback was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, finished.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_NoCallbackAfterStop(t *testing.T) {
	root := setupTree(t)
	l, err := loader.New(loader.Options{Logger: testutil.NewTestLogger(t)})
	require.NoError(t, err)

	debounce := 200 * time.Millisecond
	w, err := l.NewWatcher(debounce, root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func([]string) { calls.Add(1) })
	}()

	writeFile(t, filepath.Join(root, "flows", "Main.esql"), "CREATE COMPUTE MODULE Main END MODULE;")
	time.Sleep(debounce / 4)
	cancel()
	require.NoError(t, <-done)

	time.Sleep(2 * debounce)
	assert.Zero(t, calls.Load(), "pending changes are dropped when Run stops")
}
