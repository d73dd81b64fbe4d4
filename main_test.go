package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderCommandWritesPNG(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "face.png")
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{
		"--config", filepath.Join(dir, "absent.toml"),
		"render", "--out", out, "--at", "2026-09-03T14:05",
		"--battery", "15", "--steps", "8432", "--phone=false",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render command: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 240 || img.Bounds().Dy() != 240 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if !strings.Contains(stdout.String(), "wrote "+out) {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestRenderCommandRejectsBadTime(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "absent.toml"), "render", "--out", filepath.Join(dir, "x.png"), "--at", "teatime"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for invalid --at")
	}
}
