package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "measurements.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "")
	path := writeInput(t, "A;1.0\nB;2.0\nA;3.0\nmalformed-line\n")
	want := "{A=1.0/2.0/3.0, B=2.0/2.0/2.0, }"

	tests := []struct {
		name string
		args []string
	}{
		{name: "file", args: []string{"-sorted", path}},
		{name: "mmap", args: []string{"-sorted", "-mmap", path}},
		{name: "extra args ignored", args: []string{"-sorted", path, "other.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != 0 {
				t.Fatalf("run() = %d; want 0 (stderr: %s)", code, stderr.String())
			}
			if got := stdout.String(); got != want {
				t.Errorf("stdout = %q; want %q", got, want)
			}
		})
	}
}

func TestRun_EmptyFile(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "")
	path := writeInput(t, "")

	for _, args := range [][]string{{path}, {"-mmap", path}} {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != 0 {
			t.Fatalf("run(%q) = %d; want 0 (stderr: %s)", args, code, stderr.String())
		}
		if got := stdout.String(); got != "{}" {
			t.Errorf("run(%q) stdout = %q; want {}", args, got)
		}
	}
}

func TestRun_MissingArgument(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "")

	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code == 0 {
		t.Fatal("run() = 0; want non-zero")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q; want empty", stdout.String())
	}
	if !strings.Contains(stderr.String(), "missing") {
		t.Errorf("stderr = %q; want missing path message", stderr.String())
	}
}

func TestRun_OpenFailure(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")

	for _, args := range [][]string{{path}, {"-mmap", path}} {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code == 0 {
			t.Fatalf("run(%q) = 0; want non-zero", args)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout = %q; want empty", stdout.String())
		}
		if !strings.Contains(stderr.String(), "does-not-exist.txt") {
			t.Errorf("stderr = %q; want path in message", stderr.String())
		}
	}
}

func TestRun_CPUProfile(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "")
	path := writeInput(t, "Hamburg;12.0\n")
	profile := filepath.Join(t.TempDir(), "cpu.prof")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-cpuprofile", profile, path}, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d; want 0 (stderr: %s)", code, stderr.String())
	}
	if _, err := os.Stat(profile); err != nil {
		t.Errorf("profile not written: %v", err)
	}
}
