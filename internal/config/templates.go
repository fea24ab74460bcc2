package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "wiredump":
		return wiredumpTemplate, nil
	case "layouts":
		return layoutsTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const wiredumpTemplate = `log_level = "info"
dump_mode = "hex"
metrics = false
layouts_path = "layouts.toml"
`

const layoutsTemplate = `[[layouts]]
name = "chat"
opcode = 150

[[layouts.fields]]
name = "kind"
type = "u8"

[[layouts.fields]]
name = "sender_mask"
type = "guidmask"
order = [0, 1, 2, 3, 4, 5, 6, 7]

[[layouts.fields]]
name = "sender"
type = "guidbytes"
order = [0, 1, 2, 3, 4, 5, 6, 7]
mask = "sender_mask"

[[layouts.fields]]
name = "text"
type = "cstring"

[[layouts.fields]]
name = "sent"
type = "packedtime"
`
