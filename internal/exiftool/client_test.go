package exiftool_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"panosort/internal/exiftool"
	"panosort/internal/logging"
)

type stubExecutor struct {
	output   []byte
	err      error
	binaries []string
	args     [][]string
	deadline bool
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	s.binaries = append(s.binaries, binary)
	s.args = append(s.args, append([]string(nil), args...))
	_, s.deadline = ctx.Deadline()
	return s.output, s.err
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := exiftool.New("  ", nil); err == nil {
		t.Fatal("expected error for empty binary")
	}
}

func TestExtractAppendsPathAfterFixedArgs(t *testing.T) {
	exec := &stubExecutor{output: []byte("File Name : a.jpg\n")}
	client, err := exiftool.New("/opt/homebrew/bin/exiftool", []string{"-s", "-G"}, exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	text, err := client.Extract(context.Background(), "/in/a.jpg")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "File Name : a.jpg\n" {
		t.Fatalf("unexpected text: %q", text)
	}
	if exec.binaries[0] != "/opt/homebrew/bin/exiftool" {
		t.Fatalf("unexpected binary: %q", exec.binaries[0])
	}
	want := []string{"-s", "-G", "/in/a.jpg"}
	if strings.Join(exec.args[0], "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected args: got %v want %v", exec.args[0], want)
	}
	if exec.deadline {
		t.Fatal("expected no deadline without a timeout")
	}
}

func TestExtractDecodesLatin1(t *testing.T) {
	exec := &stubExecutor{output: []byte{'A', 'r', 't', 'i', 's', 't', ' ', ':', ' ', 'R', 'e', 'n', 0xE9}}
	client, err := exiftool.New("exiftool", nil, exiftool.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	text, err := client.Extract(context.Background(), "x.jpg")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "Artist : René" {
		t.Fatalf("unexpected decoded text: %q", text)
	}
}

func TestExtractWrapsExecutorError(t *testing.T) {
	client, err := exiftool.New("exiftool", nil, exiftool.WithExecutor(&stubExecutor{err: errors.New("boom")}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	text, err := client.Extract(context.Background(), "x.jpg")
	if err == nil {
		t.Fatal("expected error from executor")
	}
	if !errors.Is(err, exiftool.ErrExtractorFailed) {
		t.Fatalf("expected ErrExtractorFailed, got %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text on failure, got %q", text)
	}
}

func TestExtractAppliesTimeout(t *testing.T) {
	exec := &stubExecutor{}
	client, err := exiftool.New("exiftool", nil, exiftool.WithExecutor(exec), exiftool.WithTimeout(time.Minute))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Extract(context.Background(), "x.jpg"); err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !exec.deadline {
		t.Fatal("expected invocation context to carry a deadline")
	}
}

func TestExtractRunsRealProcess(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-exiftool")
	body := "#!/bin/sh\necho \"Source File : $1\"\necho \"Custom Rendered                 : Panorama\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	client, err := exiftool.New(script, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	text, err := client.Extract(context.Background(), "/photos/IMG_1.jpg")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !strings.Contains(text, "Source File : /photos/IMG_1.jpg") {
		t.Fatalf("expected path echoed back, got %q", text)
	}
	if !strings.Contains(text, "Custom Rendered                 : Panorama") {
		t.Fatalf("expected marker in output, got %q", text)
	}
}

func TestExtractKeepsOutputOnNonZeroExit(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "partial-exiftool")
	body := "#!/bin/sh\necho \"Custom Rendered                 : Panorama\"\necho 'Warning: minor error' >&2\nexit 1\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New returned error: %v", err)
	}
	client, err := exiftool.New(script, nil, exiftool.WithLogger(logger))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	text, err := client.Extract(context.Background(), "IMG_1.jpg")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error, got %v", err)
	}
	if !strings.Contains(text, "Custom Rendered                 : Panorama") {
		t.Fatalf("expected stdout to be kept, got %q", text)
	}
	if !strings.Contains(logs.String(), "exit_code=1") || !strings.Contains(logs.String(), "minor error") {
		t.Fatalf("expected debug log with exit code and stderr, got %q", logs.String())
	}
}

func TestExtractFailsWhenTimeoutKillsTool(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "slow-exiftool")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 5\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	client, err := exiftool.New(script, nil, exiftool.WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Extract(context.Background(), "a.jpg"); !errors.Is(err, exiftool.ErrExtractorFailed) {
		t.Fatalf("expected ErrExtractorFailed after timeout, got %v", err)
	}
}

func TestExtractReportsMissingBinary(t *testing.T) {
	client, err := exiftool.New(filepath.Join(t.TempDir(), "no-such-tool"), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Extract(context.Background(), "a.jpg"); !errors.Is(err, exiftool.ErrExtractorFailed) {
		t.Fatalf("expected ErrExtractorFailed for missing binary, got %v", err)
	}
}
