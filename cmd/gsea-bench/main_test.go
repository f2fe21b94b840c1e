package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/discochess/gsea/internal/codec"
)

func TestRunCommand_CompressedMarkdown(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.md.gz")
	published := t.TempDir()
	rootCmd.SetArgs([]string{
		"run",
		"--genes", "200", "--samples", "4", "--set-size", "10",
		"--up", "1", "--down", "1", "--null", "4",
		"--replicates", "1", "-n", "20",
		"--format", "markdown", "--output", out,
		"--publish", published, "--publish-compression", "zst",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	r, err := codec.Open(out)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# GSEA Calibration Benchmark") {
		t.Errorf("report missing header:\n%s", data)
	}
}

func TestRunCommand_Published(t *testing.T) {
	published := t.TempDir()
	rootCmd.SetArgs([]string{
		"run",
		"--genes", "200", "--samples", "4", "--set-size", "10",
		"--up", "1", "--down", "1", "--null", "4",
		"--replicates", "1", "-n", "20",
		"--format", "text", "--output", filepath.Join(t.TempDir(), "report.txt"),
		"--publish", "file://" + published, "--publish-compression", "gz",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(published, "reports", "bench-*.txt.gz"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("published reports = %v, want one .txt.gz", matches)
	}
	r, err := codec.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "GSEA Calibration Benchmark") {
		t.Errorf("published report missing header:\n%s", data)
	}
}

func TestConfigCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"config"})
	defer rootCmd.SetOut(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"run:", "method: signal_to_noise", "engine:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("config output missing %q:\n%s", want, buf.String())
		}
	}
}
