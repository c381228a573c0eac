package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/app"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/clock"
)

func seedStore(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, t.TempDir())
	t.Setenv("STORE_TYPE", config.StoreLocal)
	t.Setenv("STORAGE_BASE_PATH", dir)

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := app.New(context.Background(), cfg, clock.System())
	require.NoError(t, err)
	defer a.Close()

	out := "17:00"
	_, err = a.TimeEntry.UpsertRetroactive(context.Background(), timeentry.RetroactiveRequest{
		EmployeeID: "4", Date: "2025-03-03", ClockIn: "08:00", ClockOut: &out,
	})
	require.NoError(t, err)
	return dir
}

func TestReportCommand_Stdout(t *testing.T) {
	seedStore(t)

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--start", "2025-03-01", "--employee", "4"})

	require.NoError(t, cmd.Execute())

	text := stdout.String()
	assert.True(t, strings.HasPrefix(text, "TIMESHEET REPORT - ANA OLIVEIRA\n"))
	assert.Contains(t, text, "  Worked: 9h 00m\n")
}

func TestReportCommand_WritesFile(t *testing.T) {
	seedStore(t)
	outDir := t.TempDir()

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--type", "period", "--start", "2025-03-01", "--end", "2025-03-07", "--format", "xlsx", "--out", outDir})

	require.NoError(t, cmd.Execute())

	name := "timesheet-all-employees-2025-03-01-to-2025-03-07.xlsx"
	assert.Equal(t, name+"\n", stdout.String())
	info, err := os.Stat(filepath.Join(outDir, name))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestReportCommand_RequiresStart(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "txt"})

	assert.Error(t, cmd.Execute())
}
