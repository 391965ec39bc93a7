package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCmdDetectFindsPNGFixture(t *testing.T) {
	data := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 100)...)
	path := filepath.Join(t.TempDir(), "sample.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := cmdDetect([]string{"--in", path}); err != nil {
		t.Fatalf("cmdDetect: %v", err)
	}
}

func TestCmdScanRendersPNGFixture(t *testing.T) {
	data := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 100)...)
	path := filepath.Join(t.TempDir(), "sample.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := cmdScan([]string{"--in", path}); err != nil {
		t.Fatalf("cmdScan: %v", err)
	}
}

func TestCmdScanMissingPathErrors(t *testing.T) {
	if err := cmdScan(nil); err == nil {
		t.Fatal("expected an error for a missing --in flag")
	}
}
