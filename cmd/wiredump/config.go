package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
)

// wiredump.toml key mapping to runtime settings.
type fileConfig struct {
	LogLevel    string `toml:"log_level"`
	DumpMode    string `toml:"dump_mode"`
	Metrics     bool   `toml:"metrics"`
	LayoutsPath string `toml:"layouts_path"`
	Layout      string `toml:"layout"`
	Opcode      uint32 `toml:"opcode"`
}

type settings struct {
	LogLevel    string
	Dump        bool
	DumpKind    bytebuf.DumpKind
	Metrics     bool
	LayoutsPath string
	Layout      string
	Opcode      uint32
}

func defaultSettings() settings {
	return settings{
		LogLevel:    "info",
		Dump:        true,
		DumpKind:    bytebuf.DumpHex,
		LayoutsPath: "layouts.toml",
	}
}

// loadSettings overlays keys present in path onto defaults. A relative
// layouts_path resolves against the config file directory.
func loadSettings(path string) (settings, error) {
	cfg := defaultSettings()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return settings{}, fmt.Errorf("load wiredump config: %w", err)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("dump_mode") {
		if err := cfg.setDumpMode(raw.DumpMode); err != nil {
			return settings{}, fmt.Errorf("load wiredump config: %w", err)
		}
	}
	if meta.IsDefined("metrics") {
		cfg.Metrics = raw.Metrics
	}
	if meta.IsDefined("layouts_path") {
		resolved := strings.TrimSpace(raw.LayoutsPath)
		if resolved == "" {
			return settings{}, fmt.Errorf("load wiredump config: layouts_path is empty")
		}
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(filepath.Dir(path), resolved)
		}
		cfg.LayoutsPath = resolved
	}
	if meta.IsDefined("layout") {
		cfg.Layout = strings.TrimSpace(raw.Layout)
	}
	if meta.IsDefined("opcode") {
		cfg.Opcode = raw.Opcode
	}
	return cfg, nil
}

func (s *settings) setDumpMode(raw string) error {
	mode := strings.TrimSpace(raw)
	if strings.EqualFold(mode, "none") {
		s.Dump = false
		return nil
	}
	kind, err := bytebuf.ParseDumpKind(mode)
	if err != nil {
		return err
	}
	s.Dump = true
	s.DumpKind = kind
	return nil
}
