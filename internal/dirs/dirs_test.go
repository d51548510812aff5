package dirs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG paths only apply on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if got != filepath.Join("/tmp/xdg-config", "ytapi") {
		t.Errorf("ConfigDir() = %q", got)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG paths only apply on linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() error: %v", err)
	}
	if st, err := os.Stat(filepath.Join(base, "ytapi")); err != nil || !st.IsDir() {
		t.Errorf("config dir not created under %q", base)
	}
}

func TestDefaultTempDir(t *testing.T) {
	got := DefaultTempDir()
	if !strings.HasPrefix(got, os.TempDir()) || filepath.Base(got) != "yt-downloads" {
		t.Errorf("DefaultTempDir() = %q", got)
	}
}

func TestEnsure(t *testing.T) {
	if err := Ensure(""); err == nil {
		t.Error("Ensure(\"\") expected error")
	}
	p := filepath.Join(t.TempDir(), "a", "b")
	if err := Ensure(p); err != nil {
		t.Fatalf("Ensure() error: %v", err)
	}
	if st, err := os.Stat(p); err != nil || !st.IsDir() {
		t.Errorf("Ensure() did not create %q", p)
	}
}
