package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigLayering(t *testing.T) {
	file := filepath.Join(t.TempDir(), "flake.yaml")
	data := []byte("generator:\n  datacenterId: 4\n  machineId: 40\nserver:\n  httpAddr: \":7000\"\n")
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FLAKE_MACHINE_ID", "41")

	cmd := newServerStartCommand()
	if err := cmd.ParseFlags([]string{"--config", file, "--http", ":7001", "--store", "sqlite"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Generator.DatacenterID != 4 {
		t.Fatalf("file value lost: %+v", cfg.Generator)
	}
	if cfg.Generator.MachineID != 41 {
		t.Fatalf("env should override file: %+v", cfg.Generator)
	}
	if cfg.Server.HTTPAddr != ":7001" || cfg.Store.Driver != "sqlite" {
		t.Fatalf("flags should override env and file: %+v %+v", cfg.Server, cfg.Store)
	}
}

func TestLoadConfigRejectsOutOfRangeMachine(t *testing.T) {
	cmd := newServerStartCommand()
	if err := cmd.ParseFlags([]string{"--machine-id", "99999"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := loadConfig(cmd); err == nil {
		t.Fatalf("expected validation error")
	}
}
