package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/sysreport/internal/database"
	"github.com/nao1215/sysreport/internal/model"
)

// historyConfig writes a config file pointing history at dir.
func historyConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeConfig(t, "history:\n  dir: "+dir+"\n")
}

// seedHistory stores n snapshots for host and returns their IDs.
func seedHistory(t *testing.T, dir, host string, n int) []int64 {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	ids := make([]int64, 0, n)
	for i := range n {
		s := model.NewSnapshot(host)
		s.CollectedAt = base.Add(time.Duration(i) * time.Hour)
		s.Kernel = model.KernelInfo{Release: "23.1.0", HasRelease: true}
		s.Disk = model.DiskInfo{
			Path: "/", Filesystem: "/dev/disk3s1s1", Size: "460Gi", Used: "15Gi",
			Available: "180Gi", Capacity: "8%", Present: true,
		}
		if err := db.SaveSnapshot(context.Background(), s); err != nil {
			t.Fatalf("SaveSnapshot() error = %v", err)
		}
		ids = append(ids, s.ID)
	}
	return ids
}

func runHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewHistoryCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()
	for _, name := range []string{"limit", "show", "latest", "markdown", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if got := cmd.Flags().Lookup("limit").DefValue; got != "20" {
		t.Errorf("expected limit default 20, got %s", got)
	}
}

func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("no database", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "history")
		out, err := runHistory(t, "-c", historyConfig(t, dir))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No snapshots saved yet") {
			t.Errorf("unexpected output %q", out)
		}
		if _, err := os.Stat(filepath.Join(dir, database.FileName)); !os.IsNotExist(err) {
			t.Error("history must not create the database")
		}
	})

	t.Run("lists newest first with limit", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ids := seedHistory(t, dir, "mac.local", 3)

		out, err := runHistory(t, "-c", historyConfig(t, dir), "-n", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Snapshot history (2)") {
			t.Errorf("expected 2 rows, got:\n%s", out)
		}

		lines := strings.Split(strings.TrimSpace(out), "\n")
		last := lines[len(lines)-1]
		if !strings.HasPrefix(strings.TrimSpace(last), "2 ") {
			t.Errorf("expected oldest listed row to be id 2, got %q", last)
		}
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), formatID(ids[0])+" ") {
				t.Errorf("id %d should be cut by limit:\n%s", ids[0], out)
			}
		}
		if !strings.Contains(out, "mac.local") || !strings.Contains(out, "8%") {
			t.Errorf("missing row values:\n%s", out)
		}
	})

	t.Run("show renders a stored snapshot", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ids := seedHistory(t, dir, "mac.local", 1)

		out, err := runHistory(t, "-c", historyConfig(t, dir), "--show", formatID(ids[0]))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Kernel Release: 23.1.0", "Capacity:   8%"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in:\n%s", want, out)
			}
		}
		if strings.Contains(out, "Full Info:") {
			t.Error("absent line must stay omitted")
		}
	})

	t.Run("show markdown", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ids := seedHistory(t, dir, "mac.local", 1)

		out, err := runHistory(t, "-c", historyConfig(t, dir), "--show", formatID(ids[0]), "-m")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "# System Report") {
			t.Errorf("expected markdown output:\n%s", out)
		}
	})

	t.Run("show unknown id", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir, "mac.local", 1)

		_, err := runHistory(t, "-c", historyConfig(t, dir), "--show", "99")
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("latest for this host", func(t *testing.T) {
		t.Parallel()

		host, err := os.Hostname()
		if err != nil {
			t.Skipf("no host name: %v", err)
		}

		dir := t.TempDir()
		seedHistory(t, dir, host, 2)

		out, err := runHistory(t, "-c", historyConfig(t, dir), "--latest")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Kernel Release: 23.1.0") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("negative limit", func(t *testing.T) {
		t.Parallel()

		_, err := runHistory(t, "-c", historyConfig(t, t.TempDir()), "-n", "-1")
		if err == nil {
			t.Error("expected error for negative limit")
		}
	})
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
