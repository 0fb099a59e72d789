package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"userseed/internal/models"
)

type registrarFunc func(ctx context.Context, username, password string) (string, bool, error)

func (f registrarFunc) Register(ctx context.Context, username, password string) (string, bool, error) {
	return f(ctx, username, password)
}

func indexOf(t *testing.T, username string) int {
	t.Helper()
	var i int
	_, err := fmt.Sscanf(username, "user_%d", &i)
	require.NoError(t, err)
	return i
}

func newRunner(t *testing.T, reg Registrar, count int, mode FailureMode) *Runner {
	t.Helper()
	r, err := New(reg, Options{
		Count:          count,
		UsernamePrefix: "user_",
		Password:       "password",
		OnError:        mode,
	}, nil)
	require.NoError(t, err)
	return r
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if len(data) == 0 {
		return nil
	}
	require.True(t, strings.HasSuffix(string(data), "\n"))
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestCandidates(t *testing.T) {
	cands := Candidates(1000, "user_", "password")
	require.Len(t, cands, 1000)

	seen := make(map[string]bool, len(cands))
	for i, c := range cands {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, fmt.Sprintf("user_%d", i), c.Username)
		assert.Equal(t, "password", c.Password)
		assert.False(t, seen[c.Username], "duplicate %s", c.Username)
		seen[c.Username] = true
	}

	assert.Empty(t, Candidates(0, "user_", "password"))
}

func TestRun_AllSucceed(t *testing.T) {
	var passwords []string
	reg := registrarFunc(func(_ context.Context, _, password string) (string, bool, error) {
		passwords = append(passwords, password)
		return "tok0", true, nil
	})

	results, err := newRunner(t, reg, 1000, Abort).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1000, results.Len())
	assert.Equal(t, 1000, results.Attempted)
	for i, r := range results.Registrations {
		assert.Equal(t, models.Registration{Username: fmt.Sprintf("user_%d", i), Token: "tok0"}, r)
	}
	for _, p := range passwords {
		assert.Equal(t, "password", p)
	}
}

func TestRunAndWrite_AllSucceed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	reg := registrarFunc(func(context.Context, string, string) (string, bool, error) {
		return "tok0", true, nil
	})

	_, err := newRunner(t, reg, 1000, Abort).RunAndWrite(context.Background(), path, "")
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 1000)
	assert.Equal(t, "user_0 tok0", lines[0])
	assert.Equal(t, "user_999 tok0", lines[999])
}

func TestRunAndWrite_AllRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	reg := registrarFunc(func(context.Context, string, string) (string, bool, error) {
		return "", false, nil
	})

	results, err := newRunner(t, reg, 1000, Abort).RunAndWrite(context.Background(), path, "")
	require.NoError(t, err)
	assert.Zero(t, results.Len())
	assert.Equal(t, 1000, results.Rejected)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestRunAndWrite_EvenIndicesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	reg := registrarFunc(func(_ context.Context, username, _ string) (string, bool, error) {
		if indexOf(t, username)%2 == 0 {
			return "tok-" + username, true, nil
		}
		return "", false, nil
	})

	_, err := newRunner(t, reg, 1000, Abort).RunAndWrite(context.Background(), path, "")
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 500)
	for k, line := range lines {
		username := fmt.Sprintf("user_%d", 2*k)
		assert.Equal(t, username+" tok-"+username, line)
	}
}

func TestRunAndWrite_FaultAbortsWithoutWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	calls := 0
	reg := registrarFunc(func(_ context.Context, username, _ string) (string, bool, error) {
		calls++
		if indexOf(t, username) == 500 {
			return "", false, errors.New("connection refused")
		}
		return "tok", true, nil
	})

	results, err := newRunner(t, reg, 1000, Abort).RunAndWrite(context.Background(), path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_500")
	assert.Nil(t, results)
	assert.Equal(t, 501, calls)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunAndWrite_FaultAbortLeavesPreviousFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	require.NoError(t, os.WriteFile(path, []byte("user_0 old\n"), 0o644))

	reg := registrarFunc(func(context.Context, string, string) (string, bool, error) {
		return "", false, errors.New("boom")
	})

	_, err := newRunner(t, reg, 3, Abort).RunAndWrite(context.Background(), path, "")
	require.Error(t, err)
	assert.Equal(t, []string{"user_0 old"}, readLines(t, path))
}

func TestRunAndWrite_SkipModeKeepsSuccesses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.txt")
	failuresPath := filepath.Join(dir, "failures.txt")
	reg := registrarFunc(func(_ context.Context, username, _ string) (string, bool, error) {
		if indexOf(t, username) == 500 {
			return "", false, errors.New("connection refused")
		}
		return "tok", true, nil
	})

	results, err := newRunner(t, reg, 1000, Skip).RunAndWrite(context.Background(), path, failuresPath)
	require.NoError(t, err)
	assert.Equal(t, 999, results.Len())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "user_500", results.Failures[0].Username)

	lines := readLines(t, path)
	require.Len(t, lines, 999)
	assert.NotContains(t, lines, "user_500 tok")
	assert.Equal(t, []string{"user_500 connection refused"}, readLines(t, failuresPath))
}

func TestRunAndWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	first := registrarFunc(func(context.Context, string, string) (string, bool, error) {
		return "first", true, nil
	})
	second := registrarFunc(func(_ context.Context, username, _ string) (string, bool, error) {
		if username == "user_1" {
			return "second", true, nil
		}
		return "", false, nil
	})

	_, err := newRunner(t, first, 10, Abort).RunAndWrite(context.Background(), path, "")
	require.NoError(t, err)
	_, err = newRunner(t, second, 10, Abort).RunAndWrite(context.Background(), path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"user_1 second"}, readLines(t, path))
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	reg := registrarFunc(func(context.Context, string, string) (string, bool, error) {
		calls++
		if calls == 3 {
			cancel()
		}
		return "tok", true, nil
	})

	_, err := newRunner(t, reg, 10, Skip).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, calls)
}

func TestNew_Validation(t *testing.T) {
	reg := registrarFunc(func(context.Context, string, string) (string, bool, error) { return "", false, nil })

	_, err := New(nil, Options{}, nil)
	assert.Error(t, err)

	_, err = New(reg, Options{Count: -1}, nil)
	assert.Error(t, err)

	_, err = New(reg, Options{OnError: "retry"}, nil)
	assert.ErrorIs(t, err, ErrInvalidFailureMode)

	r, err := New(reg, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, Abort, r.opts.OnError)
}

func TestRun_LogsProgressAtInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reg := registrarFunc(func(_ context.Context, username, _ string) (string, bool, error) {
		if indexOf(t, username)%2 == 0 {
			return "tok", true, nil
		}
		return "", false, nil
	})

	r, err := New(reg, Options{
		Count:          10,
		UsernamePrefix: "user_",
		Password:       "password",
		LogEvery:       4,
	}, zap.New(core))
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	progress := logs.FilterMessage("progress").All()
	require.Len(t, progress, 2)
	assert.EqualValues(t, 4, progress[0].ContextMap()["attempted"])
	assert.EqualValues(t, 2, progress[0].ContextMap()["registered"])
	assert.EqualValues(t, 2, progress[0].ContextMap()["rejected"])
	assert.EqualValues(t, 8, progress[1].ContextMap()["attempted"])

	done := logs.FilterMessage("run complete").All()
	require.Len(t, done, 1)
	assert.EqualValues(t, 10, done[0].ContextMap()["attempted"])
	assert.EqualValues(t, 5, done[0].ContextMap()["registered"])
}
