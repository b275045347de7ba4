// Command ende converts between Unicode code points and their UTF-8,
// UTF-16 and UCS-2 encodings.
package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ende/core/codec"
	"github.com/FocuswithJustin/ende/core/errors"
	"github.com/FocuswithJustin/ende/core/selfcheck"
	"github.com/FocuswithJustin/ende/internal/config"
	"github.com/FocuswithJustin/ende/internal/fileio"
	"github.com/FocuswithJustin/ende/internal/logging"
	"github.com/FocuswithJustin/ende/internal/notation"
)

const version = "0.1.0"

// Globals are flags accepted by every command.
type Globals struct {
	Config    string `name:"config" short:"c" help:"Path to ende.toml" default:"${config_path}"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`
}

type cliSpec struct {
	Globals

	Encode    EncodeCmd    `cmd:"" help:"Encode code points"`
	Decode    DecodeCmd    `cmd:"" help:"Decode code units or an encoded file"`
	Transcode TranscodeCmd `cmd:"" help:"Re-encode a file from one encoding to another"`
	Selfcheck SelfcheckCmd `cmd:"" help:"Run the built-in conformance vectors"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// CLI defines the command-line interface for ende.
var CLI cliSpec

// session carries what every command needs after flags are parsed.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	stdout io.Writer
}

func newSession(g Globals, stdout io.Writer) (*session, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	levelName := cfg.Log.Level
	if g.LogLevel != "" {
		levelName = g.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, errors.NewValidation("log-level", levelName, "must be debug, info, warn or error")
	}
	formatName := cfg.Log.Format
	if g.LogFormat != "" {
		formatName = g.LogFormat
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return nil, errors.NewValidation("log-format", formatName, "must be text or json")
	}
	logging.InitLogger(level, format)

	ctx, _ := logging.WithRunID(context.Background())
	logging.DebugContext(ctx, "session started", "config", g.Config)

	return &session{ctx: ctx, cfg: cfg, stdout: stdout}, nil
}

// write sends data to path, with "-" meaning the session's stdout.
func (s *session) write(path string, data []byte, compress bool) error {
	return fileio.WriteStream(s.stdout, path, data, compress)
}

// warnOverride notes a BOM that contradicts an explicit --byte-order.
func (s *session) warnOverride(path, flag string, announced, configured binary.ByteOrder) {
	if flag == "" || announced == configured {
		return
	}
	logging.WarnContext(s.ctx, "byte order mark overrides --byte-order",
		"input", path, "byte_order", flag, "bom", announced.String())
}

// codecOptions are config values with command flags applied on top.
type codecOptions struct {
	enc    codec.Encoding
	order  binary.ByteOrder
	bom    bool
	format string
	binary bool
}

func (s *session) options(encoding, byteOrder, format string, bom, bin bool) (codecOptions, error) {
	o := codecOptions{
		enc:    s.cfg.Encoding(),
		order:  s.cfg.ByteOrder(),
		bom:    s.cfg.Codec.BOM || bom,
		format: s.cfg.Output.Format,
		binary: s.cfg.Output.Binary || bin,
	}
	if encoding != "" {
		enc, err := codec.ParseEncoding(encoding)
		if err != nil {
			return o, err
		}
		o.enc = enc
	}
	if byteOrder != "" {
		switch strings.ToLower(byteOrder) {
		case config.OrderBig, config.OrderLittle:
			o.order = config.ParseByteOrder(byteOrder)
		default:
			return o, errors.NewValidation("byte-order", byteOrder, "must be big or little")
		}
	}
	if format != "" {
		switch format {
		case config.FormatDump, config.FormatRaw, config.FormatList:
			o.format = format
		default:
			return o, errors.NewValidation("format", format, "must be dump, raw or list")
		}
	}
	return o, nil
}

// EncodeCmd encodes code points.
type EncodeCmd struct {
	CodePoints []string `arg:"" optional:"" name:"code-points" help:"Code points: U+20AC, 0x20AC, 8364 or ranges like U+41..U+5A"`
	Text       string   `help:"Encode the characters of this string instead"`
	In         string   `help:"Read a code point list from a file ('-' for stdin)"`
	Encoding   string   `short:"e" help:"Target encoding (utf-8, utf-16, ucs-2)"`
	ByteOrder  string   `name:"byte-order" help:"Byte order for 16-bit output (big, little)"`
	BOM        bool     `name:"bom" help:"Prefix 16-bit output with a byte order mark"`
	Out        string   `short:"o" help:"Write encoded bytes to this file ('-' for stdout)" default:"-"`
	XZ         bool     `name:"xz" help:"Compress written bytes with xz"`
	Format     string   `short:"f" help:"Output format (dump, raw, list)"`
	Binary     bool     `short:"b" help:"Include binary rows in dumps"`
}

func (c *EncodeCmd) Run(s *session) error {
	opts, err := s.options(c.Encoding, c.ByteOrder, c.Format, c.BOM, c.Binary)
	if err != nil {
		return err
	}

	cps, err := c.codePoints()
	if err != nil {
		return err
	}

	marshal := opts.enc.Marshal
	if opts.bom {
		marshal = opts.enc.MarshalWithBOM
	}
	data, err := marshal(cps, opts.order)
	if err != nil {
		logging.CodecFailure(s.ctx, "encode", opts.enc, err)
		return err
	}
	payload := data
	if opts.bom && opts.enc != codec.UTF8 {
		payload = data[2:]
	}
	units, err := opts.enc.Units(payload, opts.order)
	if err != nil {
		return err
	}
	logging.Conversion(s.ctx, "encode", opts.enc, len(cps), len(units))

	if c.Out != fileio.StdStream || opts.format == config.FormatRaw {
		return s.write(c.Out, data, c.XZ)
	}

	if opts.format == config.FormatList {
		_, err := fmt.Fprintln(s.stdout, notation.FormatUnits(units, opts.enc.UnitBits()))
		return err
	}
	text := textOf(cps)
	if err := notation.Render(s.stdout, notation.Dump{Label: "UNICODE", Text: text, Values: cps, Binary: opts.binary}); err != nil {
		return err
	}
	return notation.Render(s.stdout, notation.Dump{
		Label:  opts.enc.String(),
		Text:   text,
		Values: units,
		Bits:   opts.enc.UnitBits(),
		Binary: opts.binary,
	})
}

func (c *EncodeCmd) codePoints() ([]uint32, error) {
	switch {
	case c.Text != "":
		return codec.DecodeUTF8([]byte(c.Text))
	case c.In != "":
		data, err := fileio.ReadInput(c.In)
		if err != nil {
			return nil, err
		}
		return notation.ParseCodePoints(string(data))
	case len(c.CodePoints) > 0:
		return notation.ParseCodePoints(strings.Join(c.CodePoints, " "))
	}
	return nil, errors.NewValidation("input", "", "give code points, --text or --in")
}

// DecodeCmd decodes code units.
type DecodeCmd struct {
	Units     []string `arg:"" optional:"" help:"Code units: 0xE2 0x82 0xAC, or ranges like 0x41..0x5A"`
	In        string   `help:"Read an encoded byte stream from a file ('-' for stdin, xz accepted)"`
	Encoding  string   `short:"e" help:"Source encoding (utf-8, utf-16, ucs-2)"`
	ByteOrder string   `name:"byte-order" help:"Byte order for 16-bit input without a BOM (big, little)"`
	Out       string   `short:"o" help:"Write decoded text as UTF-8 to this file ('-' for stdout)" default:"-"`
	Format    string   `short:"f" help:"Output format (dump, raw, list)"`
	Binary    bool     `short:"b" help:"Include binary rows in dumps"`
}

func (c *DecodeCmd) Run(s *session) error {
	opts, err := s.options(c.Encoding, c.ByteOrder, c.Format, false, c.Binary)
	if err != nil {
		return err
	}

	var data []byte
	switch {
	case c.In != "":
		if data, err = fileio.ReadInput(c.In); err != nil {
			return err
		}
		if opts.enc != codec.UTF8 {
			if stripped, order, ok := codec.StripBOM(data); ok {
				s.warnOverride(c.In, c.ByteOrder, order, opts.order)
				data, opts.order = stripped, order
			}
		}
	case len(c.Units) > 0:
		units, err := notation.ParseUnits(strings.Join(c.Units, " "), opts.enc.UnitBits())
		if err != nil {
			return err
		}
		if data, err = opts.enc.PackUnits(units, opts.order); err != nil {
			return err
		}
	default:
		return errors.NewValidation("input", "", "give code units or --in")
	}

	cps, err := opts.enc.Unmarshal(data, opts.order)
	if err != nil {
		logging.CodecFailure(s.ctx, "decode", opts.enc, err)
		return err
	}
	units, err := opts.enc.Units(data, opts.order)
	if err != nil {
		return err
	}
	logging.Conversion(s.ctx, "decode", opts.enc, len(units), len(cps))

	if c.Out != fileio.StdStream || opts.format == config.FormatRaw {
		text, err := codec.EncodeUTF8(cps)
		if err != nil {
			return err
		}
		return s.write(c.Out, text, false)
	}

	if opts.format == config.FormatList {
		_, err := fmt.Fprintln(s.stdout, notation.FormatCodePoints(cps))
		return err
	}
	text := textOf(cps)
	if err := notation.Render(s.stdout, notation.Dump{
		Label:  opts.enc.String(),
		Text:   text,
		Values: units,
		Bits:   opts.enc.UnitBits(),
		Binary: opts.binary,
	}); err != nil {
		return err
	}
	return notation.Render(s.stdout, notation.Dump{Label: "UNICODE", Text: text, Values: cps, Binary: opts.binary})
}

// TranscodeCmd re-encodes byte streams. Several inputs are converted
// concurrently and written out back to back.
type TranscodeCmd struct {
	From      string   `required:"" help:"Source encoding"`
	To        string   `required:"" help:"Target encoding"`
	In        []string `help:"Input files ('-' for stdin, xz accepted); repeat or comma-separate for several" default:"-"`
	Out       string   `short:"o" help:"Output file ('-' for stdout)" default:"-"`
	ByteOrder string   `name:"byte-order" help:"Byte order for 16-bit streams without a BOM (big, little)"`
	BOM       bool     `name:"bom" help:"Prefix 16-bit output with a byte order mark"`
	XZ        bool     `name:"xz" help:"Compress output with xz"`
	Workers   int      `help:"Concurrent conversions (0 for one per CPU)" default:"0"`
}

func (c *TranscodeCmd) Run(s *session) error {
	to, err := codec.ParseEncoding(c.To)
	if err != nil {
		return err
	}
	opts, err := s.options(c.From, c.ByteOrder, "", c.BOM, false)
	if err != nil {
		return err
	}
	from, order := opts.enc, opts.order

	inputs, size, err := c.readInputs(s, from, order)
	if err != nil {
		return err
	}

	decoded, err := codec.DecodeBatch(s.ctx, from, order, inputs, c.Workers)
	if err != nil {
		logging.CodecFailure(s.ctx, "transcode", from, err, "stage", "decode")
		return err
	}
	encoded, err := codec.EncodeBatch(s.ctx, to, order, decoded, c.Workers)
	if err != nil {
		logging.CodecFailure(s.ctx, "transcode", to, err, "stage", "encode")
		return err
	}

	var out []byte
	if opts.bom && to != codec.UTF8 {
		out = codec.ByteOrderMark(order)
	}
	for _, e := range encoded {
		out = append(out, e...)
	}
	logging.Conversion(s.ctx, "transcode", to, size, len(out), "from", from.String(), "inputs", len(inputs))

	return s.write(c.Out, out, c.XZ)
}

// readInputs loads every input. A 16-bit input whose BOM announces a
// different order than order is re-packed so the batch sees one order.
func (c *TranscodeCmd) readInputs(s *session, from codec.Encoding, order binary.ByteOrder) ([][]byte, int, error) {
	inputs := make([][]byte, 0, len(c.In))
	size := 0
	for _, path := range c.In {
		data, err := fileio.ReadInput(path)
		if err != nil {
			return nil, 0, err
		}
		size += len(data)
		if from != codec.UTF8 {
			if stripped, announced, ok := codec.StripBOM(data); ok {
				s.warnOverride(path, c.ByteOrder, announced, order)
				data = stripped
				if data, err = repack(from, data, announced, order); err != nil {
					return nil, 0, errors.Wrapf(err, "input %s", path)
				}
			}
		}
		inputs = append(inputs, data)
	}
	return inputs, size, nil
}

func repack(enc codec.Encoding, data []byte, have, want binary.ByteOrder) ([]byte, error) {
	if have == want {
		return data, nil
	}
	units, err := enc.Units(data, have)
	if err != nil {
		return nil, err
	}
	return enc.PackUnits(units, want)
}

// SelfcheckCmd runs the conformance vectors.
type SelfcheckCmd struct {
	Golden string `help:"Expected BLAKE3 digest of the transcript"`
	JSON   bool   `help:"Output as JSON"`
}

func (c *SelfcheckCmd) Run(s *session) error {
	report := selfcheck.Run()

	if c.JSON {
		data, err := report.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to serialize report: %w", err)
		}
		fmt.Fprintln(s.stdout, string(data))
	} else {
		fmt.Fprintf(s.stdout, "Self-Check Report\n")
		fmt.Fprintf(s.stdout, "  Status: %s\n", report.Status)
		fmt.Fprintf(s.stdout, "  Vectors: %d\n", len(report.Results))
		fmt.Fprintf(s.stdout, "  Transcript BLAKE3: %s\n", report.TranscriptBLAKE3)
		for _, r := range report.Failed() {
			fmt.Fprintf(s.stdout, "  FAIL %s %s %s: expected %s, got %s\n",
				r.CheckType, r.Encoding, r.Label, r.Expected, r.Actual)
		}
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("selfcheck failed: %d of %d vectors", len(failed), len(report.Results))
	}
	if c.Golden != "" {
		if err := report.Verify(c.Golden); err != nil {
			return err
		}
	}
	logging.InfoContext(s.ctx, "selfcheck passed", "vectors", len(report.Results))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(s *session) error {
	fmt.Fprintf(s.stdout, "ende version %s\n", version)
	return nil
}

// textOf renders cps for dump titles, "?" when they do not form text.
func textOf(cps []uint32) string {
	b, err := codec.EncodeUTF8(cps)
	if err != nil {
		return "?"
	}
	return string(b)
}

func parser(cli *cliSpec, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("ende"),
		kong.Description("Unicode code point codecs: UTF-8, UTF-16 and UCS-2"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"config_path": config.DefaultPath},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	k, err := parser(&CLI)
	if err != nil {
		panic(err)
	}
	ctx, err := k.Parse(os.Args[1:])
	k.FatalIfErrorf(err)

	sess, err := newSession(CLI.Globals, os.Stdout)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(sess)
	ctx.FatalIfErrorf(err)
}
