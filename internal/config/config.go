package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/wirebuf/internal/protocol/bytebuf"
	"github.com/pelletier/go-toml/v2"
)

// WiredumpConfig is the on-disk shape of a wiredump config file. DumpMode
// "none" disables the dump.
type WiredumpConfig struct {
	LogLevel    string `toml:"log_level"`
	DumpMode    string `toml:"dump_mode"`
	Metrics     bool   `toml:"metrics"`
	LayoutsPath string `toml:"layouts_path"`
	Layout      string `toml:"layout"`
	Opcode      uint32 `toml:"opcode"`
}

// LayoutsConfig is the on-disk shape of a layouts file.
type LayoutsConfig struct {
	Layouts []LayoutConfig `toml:"layouts"`
}

type LayoutConfig struct {
	Name   string        `toml:"name"`
	Opcode uint32        `toml:"opcode"`
	Fields []FieldConfig `toml:"fields"`
}

// FieldConfig declares one field. Order is empty for identity order or
// lists all eight guid byte indexes.
type FieldConfig struct {
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	Count int    `toml:"count"`
	Order []int  `toml:"order"`
	Mask  string `toml:"mask"`
}

func LoadWiredumpConfig(path string) (WiredumpConfig, error) {
	var cfg WiredumpConfig
	if err := loadToml(path, &cfg); err != nil {
		return WiredumpConfig{}, err
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.DumpMode == "" {
		cfg.DumpMode = "hex"
	}
	if cfg.LayoutsPath == "" {
		cfg.LayoutsPath = "layouts.toml"
	}
	if err := ValidateWiredumpConfig(cfg); err != nil {
		return WiredumpConfig{}, err
	}
	return cfg, nil
}

func LoadLayoutsConfig(path string) (LayoutsConfig, error) {
	var cfg LayoutsConfig
	if err := loadToml(path, &cfg); err != nil {
		return LayoutsConfig{}, err
	}
	if err := ValidateLayoutsConfig(cfg); err != nil {
		return LayoutsConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateWiredumpConfig(cfg WiredumpConfig) error {
	if mode := strings.TrimSpace(cfg.DumpMode); !strings.EqualFold(mode, "none") {
		if _, err := bytebuf.ParseDumpKind(mode); err != nil {
			return fmt.Errorf("wiredump config: %w", err)
		}
	}
	if strings.TrimSpace(cfg.LayoutsPath) == "" {
		return fmt.Errorf("wiredump config missing layouts_path")
	}
	return nil
}

// ValidateLayoutsConfig checks the file-level shape. Field semantics are
// checked by layout.Validate once converted.
func ValidateLayoutsConfig(cfg LayoutsConfig) error {
	for i, entry := range cfg.Layouts {
		if err := ValidateLayoutEntry(entry); err != nil {
			return fmt.Errorf("layouts[%d] invalid: %w", i, err)
		}
	}
	return nil
}

func ValidateLayoutEntry(cfg LayoutConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(cfg.Fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	for i, f := range cfg.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("fields[%d] name is required", i)
		}
		if strings.TrimSpace(f.Type) == "" {
			return fmt.Errorf("fields[%d] type is required", i)
		}
		if len(f.Order) != 0 && len(f.Order) != 8 {
			return fmt.Errorf("fields[%d] order must list 8 indexes, got %d", i, len(f.Order))
		}
	}
	return nil
}
