package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/wirebuf/internal/config"
	"github.com/danmuck/wirebuf/internal/logging"
	"github.com/danmuck/wirebuf/internal/observability"
	"github.com/danmuck/wirebuf/internal/protocol/frame"
	"github.com/danmuck/wirebuf/internal/protocol/layout"
	"github.com/danmuck/wirebuf/internal/protocol/packet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "wiredump: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("wiredump", flag.ContinueOnError)
	configPath := fs.String("config", "", "wiredump config path (optional)")
	layoutsPath := fs.String("layouts", "", "layouts file path (overrides config)")
	layoutName := fs.String("layout", "", "decode with this layout instead of the opcode lookup")
	opcode := fs.String("opcode", "", "packet opcode, decimal or 0x hex")
	input := fs.String("input", "", "captured packet body path, - for stdin")
	hexInput := fs.Bool("hex", false, "input is hex text rather than raw bytes")
	frames := fs.Bool("frames", false, "input is a capture stream of framed packets")
	dumpMode := fs.String("dump", "", "dump mode: hex|text|summary|none")
	metrics := fs.Bool("metrics", false, "print buffer and decode metrics after decoding")
	logLevel := fs.String("log-level", "", "log level override")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := defaultSettings()
	if *configPath != "" {
		loaded, err := loadSettings(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "layouts":
			cfg.LayoutsPath = *layoutsPath
		case "layout":
			cfg.Layout = strings.TrimSpace(*layoutName)
		case "opcode":
			v, err := strconv.ParseUint(strings.TrimSpace(*opcode), 0, 32)
			if err != nil {
				flagErr = fmt.Errorf("parse -opcode: %w", err)
				return
			}
			cfg.Opcode = uint32(v)
		case "dump":
			if err := cfg.setDumpMode(*dumpMode); err != nil {
				flagErr = fmt.Errorf("parse -dump: %w", err)
			}
		case "metrics":
			cfg.Metrics = *metrics
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if *input == "" {
		return errors.New("-input is required")
	}

	logging.Configure(logging.ProfileRuntime, cfg.LogLevel)
	observability.RegisterMetrics()

	raw, err := readInput(*input, *hexInput)
	if err != nil {
		return err
	}
	log.Debug().Msgf("wiredump input=%s bytes=%d opcode=%d", *input, len(raw), cfg.Opcode)

	layoutsCfg, err := config.LoadLayoutsConfig(cfg.LayoutsPath)
	if err != nil {
		return err
	}
	reg, err := config.Registry(layoutsCfg)
	if err != nil {
		return err
	}

	packets, err := loadPackets(raw, cfg.Opcode, *frames)
	if err != nil {
		return err
	}
	for _, p := range packets {
		if err := dumpPacket(stdout, reg, p, cfg); err != nil {
			return err
		}
	}
	if cfg.Metrics {
		return writeMetrics(stdout, prometheus.DefaultGatherer)
	}
	return nil
}

func loadPackets(raw []byte, opcode uint32, framed bool) ([]*packet.Packet, error) {
	if !framed {
		p := packet.New(opcode)
		p.SetGrowthObserver(observability.GrowthObserver("wiredump"))
		if len(raw) > 0 {
			if err := p.Append(raw); err != nil {
				return nil, err
			}
		}
		return []*packet.Packet{p}, nil
	}
	r := bytes.NewReader(raw)
	var out []*packet.Packet
	for {
		p, err := frame.ReadPacket(r, frame.DefaultLimits())
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read frame %d: %w", len(out), err)
		}
		out = append(out, p)
	}
}

func dumpPacket(w io.Writer, reg *layout.Registry, p *packet.Packet, cfg settings) error {
	l, rec, err := decode(reg, p, cfg.Layout)
	if err != nil {
		return err
	}
	fmt.Fprint(w, layout.Format(l, rec))
	if rest := p.Size() - p.ReadPos(); rest > 0 {
		fmt.Fprintf(w, "trailing bytes: %d\n", rest)
	}
	if cfg.Dump {
		out, _ := p.Dump(cfg.DumpKind, nil)
		fmt.Fprintln(w, out)
		p.LogDump(log.Logger, cfg.DumpKind)
	}
	return nil
}

func decode(reg *layout.Registry, p *packet.Packet, name string) (layout.Layout, layout.Record, error) {
	if name == "" {
		return reg.DecodePacket(p)
	}
	l, ok := reg.Lookup(name)
	if !ok {
		return layout.Layout{}, nil, fmt.Errorf("%w: %s", layout.ErrUnknownLayout, name)
	}
	rec, err := layout.Decode(p.Buffer, l)
	return l, rec, err
}

func readInput(path string, hexText bool) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if !hexText {
		return data, nil
	}
	decoded, err := hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return decoded, nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "wirebuf_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
