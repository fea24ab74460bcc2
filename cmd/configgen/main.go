package main

import (
	"flag"
	"log"

	"github.com/danmuck/wirebuf/internal/config"
)

func main() {
	kind := flag.String("kind", "wiredump", "config kind: wiredump|layouts")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to per-kind cmd path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			path = defaultPath(*kind)
		}
		if err := validateFile(*kind, path); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated %s config at %s", *kind, path)
		return
	}

	target := *output
	if target == "" {
		target = defaultPath(*kind)
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}

func defaultPath(kind string) string {
	switch kind {
	case "wiredump":
		return "cmd/wiredump/config.toml"
	case "layouts":
		return "cmd/wiredump/layouts.toml"
	default:
		log.Fatalf("unknown kind: %s", kind)
		return ""
	}
}

func validateFile(kind, path string) error {
	switch kind {
	case "wiredump":
		_, err := config.LoadWiredumpConfig(path)
		return err
	case "layouts":
		cfg, err := config.LoadLayoutsConfig(path)
		if err != nil {
			return err
		}
		_, err = config.Registry(cfg)
		return err
	default:
		log.Fatalf("unknown kind: %s", kind)
		return nil
	}
}
