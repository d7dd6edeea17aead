// Command carvekit scans files for embedded file containers, data
// appended after image containers, and payloads hidden in image bit
// planes.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "github.com/gen2brain/jpegn"
	"github.com/spf13/pflag"

	"github.com/gobeaver/carvekit"
	"github.com/gobeaver/carvekit/sigscan"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "carvekit: %v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	profile       string
	formats       string
	mime          string
	minLength     int
	maxLength     int
	minConfidence string
	maxFindings   int
	maxScanBytes  int
	digest        string
	planes        string
	scanOrder     string
	channelOrder  string
	bitOrder      string
	packOrder     string
	trailing      bool
	save          string
	jsonOut       bool
	watch         string
	help          bool
}

func registerFlags(flagSet *pflag.FlagSet, f *cliFlags) {
	flagSet.StringVar(&f.profile, "profile", "", "YAML scan profile, flags override its values")
	flagSet.StringVar(&f.formats, "formats", "", "comma-separated format list to scan for, e.g. png,jpeg,zip")
	flagSet.StringVar(&f.mime, "mime", "", "keep payloads whose media type matches a glob, e.g. image/*")
	flagSet.IntVar(&f.minLength, "min-length", 0, "drop payloads shorter than this many bytes")
	flagSet.IntVar(&f.maxLength, "max-length", 0, "drop payloads longer than this many bytes")
	flagSet.StringVar(&f.minConfidence, "min-confidence", "", "drop payloads below a confidence grade: low, medium or high")
	flagSet.IntVar(&f.maxFindings, "max-findings", 24, "cap reported payloads per scan")
	flagSet.IntVar(&f.maxScanBytes, "max-scan-bytes", 64<<20, "reject inputs larger than this many bytes, 0 for unlimited")
	flagSet.StringVar(&f.digest, "digest", "", "payload checksum algorithm: md5, sha1, sha256, sha512, crc32, xxhash or blake3")
	flagSet.StringVar(&f.planes, "planes", "", "decode the input as an image and scan these bit planes, e.g. R1,G1,B1")
	flagSet.StringVar(&f.scanOrder, "scan-order", "", "bit plane pixel walk: row-major or column-major")
	flagSet.StringVar(&f.channelOrder, "channel-order", "", "bit plane channel walk: RGBA, ARGB, BGRA or ABGR")
	flagSet.StringVar(&f.bitOrder, "bit-order", "", "bit plane bit walk: lsb-to-msb or msb-to-lsb")
	flagSet.StringVar(&f.packOrder, "pack-order", "", "output bit packing: msb-first or lsb-first")
	flagSet.BoolVar(&f.trailing, "trailing", false, "also report data appended after a PNG or JPEG host")
	flagSet.StringVar(&f.save, "save", "", "write carved payload bytes into this directory")
	flagSet.BoolVar(&f.jsonOut, "json", false, "emit reports as JSON")
	flagSet.StringVar(&f.watch, "watch", "", "watch a directory and scan files as they appear")
	flagSet.BoolVarP(&f.help, "help", "h", false, "show usage")
}

// applyProfile fills in flag values the user did not set explicitly.
func applyProfile(flagSet *pflag.FlagSet, prof *Profile, f *cliFlags) {
	if !flagSet.Changed("formats") && prof.Formats != "" {
		f.formats = prof.Formats
	}
	if !flagSet.Changed("mime") && prof.MIME != "" {
		f.mime = prof.MIME
	}
	if !flagSet.Changed("min-length") && prof.MinLength > 0 {
		f.minLength = prof.MinLength
	}
	if !flagSet.Changed("max-length") && prof.MaxLength > 0 {
		f.maxLength = prof.MaxLength
	}
	if !flagSet.Changed("min-confidence") && prof.MinConfidence != "" {
		f.minConfidence = prof.MinConfidence
	}
	if !flagSet.Changed("max-findings") && prof.MaxFindings > 0 {
		f.maxFindings = prof.MaxFindings
	}
	if !flagSet.Changed("digest") && prof.Digest != "" {
		f.digest = prof.Digest
	}
	if !flagSet.Changed("planes") && prof.Planes != "" {
		f.planes = prof.Planes
	}
	if !flagSet.Changed("scan-order") && prof.ScanOrder != "" {
		f.scanOrder = prof.ScanOrder
	}
	if !flagSet.Changed("channel-order") && prof.ChannelOrder != "" {
		f.channelOrder = prof.ChannelOrder
	}
	if !flagSet.Changed("bit-order") && prof.BitOrder != "" {
		f.bitOrder = prof.BitOrder
	}
	if !flagSet.Changed("pack-order") && prof.PackOrder != "" {
		f.packOrder = prof.PackOrder
	}
	if !flagSet.Changed("trailing") && prof.Trailing {
		f.trailing = true
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("carvekit", pflag.ContinueOnError)
	flagSet.SortFlags = false

	var f cliFlags
	registerFlags(flagSet, &f)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if f.help {
		printHelp(flagSet)
		return nil
	}

	if f.profile != "" {
		prof, err := LoadProfile(f.profile)
		if err != nil {
			return err
		}
		applyProfile(flagSet, prof, &f)
	}

	carver, err := carvekit.New(&carvekit.Config{
		MaxScanBytes:    f.maxScanBytes,
		MaxFindings:     f.maxFindings,
		Formats:         f.formats,
		DigestEnabled:   f.digest != "",
		DigestAlgorithm: f.digest,
	})
	if err != nil {
		return err
	}

	var selectors []carvekit.PayloadSelector
	if f.mime != "" {
		selectors = append(selectors, carvekit.MatchMIME(f.mime))
	}
	if f.minLength > 0 {
		selectors = append(selectors, carvekit.MinLength(f.minLength))
	}
	if f.maxLength > 0 {
		selectors = append(selectors, carvekit.MaxLength(f.maxLength))
	}
	if f.minConfidence != "" {
		grade := carvekit.Confidence(strings.ToLower(f.minConfidence))
		switch grade {
		case carvekit.ConfidenceLow, carvekit.ConfidenceMedium, carvekit.ConfidenceHigh:
		default:
			return fmt.Errorf("unknown confidence grade %q", f.minConfidence)
		}
		selectors = append(selectors, carvekit.MinConfidence(grade))
	}
	var opts []carvekit.Option
	if len(selectors) > 0 {
		opts = append(opts, carvekit.WithSelector(carvekit.And(selectors...)))
	}

	var planes []carvekit.PlaneSpec
	if f.planes != "" {
		planes, err = carvekit.ParsePlanes(f.planes)
		if err != nil {
			return err
		}
	}

	s := &scanner{
		carver: carver,
		opts:   opts,
		planes: planes,
		extract: carvekit.BitExtractionOptions{
			ScanOrder:    carvekit.ScanOrder(strings.ToLower(f.scanOrder)),
			ChannelOrder: carvekit.ChannelOrder(strings.ToUpper(f.channelOrder)),
			BitOrder:     carvekit.BitOrder(strings.ToLower(f.bitOrder)),
			PackOrder:    carvekit.PackOrder(strings.ToLower(f.packOrder)),
		},
		trailing: f.trailing,
		saveDir:  f.save,
		jsonOut:  f.jsonOut,
	}

	if f.save != "" {
		if err := os.MkdirAll(f.save, 0o755); err != nil {
			return err
		}
	}

	if f.watch != "" {
		return watchDir(f.watch, func(path string) {
			if err := s.scanFile(path); err != nil {
				fmt.Fprintf(os.Stderr, "carvekit: %s: %v\n", path, err)
			}
		})
	}

	paths := flagSet.Args()
	if len(paths) == 0 {
		printHelp(flagSet)
		return errors.New("no input files")
	}
	for _, path := range paths {
		if err := s.scanFile(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// scanner applies one scan configuration to a series of input files.
type scanner struct {
	carver   *carvekit.Carver
	opts     []carvekit.Option
	planes   []carvekit.PlaneSpec
	extract  carvekit.BitExtractionOptions
	trailing bool
	saveDir  string
	jsonOut  bool
}

// report is the per-file scan result in both output modes.
type report struct {
	File     string                   `json:"file"`
	Size     int                      `json:"size"`
	Payloads []carvekit.CarvedPayload `json:"payloads"`
	Trailing *trailingReport          `json:"trailing,omitempty"`
	Stream   *streamReport            `json:"stream,omitempty"`
}

type trailingReport struct {
	ContainerEnd int                      `json:"container_end"`
	Length       int                      `json:"length"`
	Payloads     []carvekit.CarvedPayload `json:"payloads,omitempty"`
}

type streamReport struct {
	TotalBits    int `json:"total_bits"`
	TotalBytes   int `json:"total_bytes"`
	BitsPerPixel int `json:"bits_per_pixel"`
	Extracted    int `json:"extracted"`
}

func (s *scanner) scanFile(path string) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}

	r := report{File: path, Size: len(data)}

	if len(s.planes) > 0 {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode image: %w", err)
		}
		stream, payloads, err := s.carver.ScanBitPlanes(carvekit.PixmapFromImage(img), s.planes, s.extract)
		if err != nil {
			return err
		}
		r.Payloads = payloads
		r.Stream = &streamReport{
			TotalBits:    stream.TotalBits,
			TotalBytes:   stream.TotalBytes,
			BitsPerPixel: stream.BitsPerPixel,
			Extracted:    len(stream.Bytes),
		}
		if err := s.savePayloads(path, stream.Bytes, payloads); err != nil {
			return err
		}
		if s.saveDir != "" {
			name := baseName(path) + "_planes.bin"
			if err := os.WriteFile(filepath.Join(s.saveDir, name), stream.Bytes, 0o644); err != nil {
				return err
			}
		}
		return s.emit(r)
	}

	payloads, err := s.carver.Scan(data, s.opts...)
	if err != nil {
		return err
	}
	r.Payloads = payloads

	if s.trailing {
		if kind, ok := hostKind(data); ok {
			td, tp, err := s.carver.TrailingPayloads(data, kind)
			if err != nil {
				return err
			}
			if td != nil {
				r.Trailing = &trailingReport{ContainerEnd: td.ContainerEnd, Length: td.Length, Payloads: tp}
			}
		}
	}

	if err := s.savePayloads(path, data, payloads); err != nil {
		return err
	}
	return s.emit(r)
}

// savePayloads writes each payload's bytes into the save directory,
// named after the input file and the payload's own suggested name.
func (s *scanner) savePayloads(path string, data []byte, payloads []carvekit.CarvedPayload) error {
	if s.saveDir == "" {
		return nil
	}
	base := baseName(path)
	for _, p := range payloads {
		name := fmt.Sprintf("%s_%s", base, p.Filename())
		if err := os.WriteFile(filepath.Join(s.saveDir, name), p.Bytes(data), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (s *scanner) emit(r report) error {
	if s.jsonOut {
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	printReport(r)
	return nil
}

func printReport(r report) {
	fmt.Printf("%s: %d bytes, %d payloads\n", r.File, r.Size, len(r.Payloads))
	if r.Stream != nil {
		fmt.Printf("  plane stream: %d bits (%d bytes) across %d planes, %d extracted\n",
			r.Stream.TotalBits, r.Stream.TotalBytes, r.Stream.BitsPerPixel, r.Stream.Extracted)
	}
	for i, p := range r.Payloads {
		fmt.Printf("  [%d] %s [%d:%d) %d bytes, %s confidence, %s\n",
			i, p.Kind, p.Start, p.End, p.Length, p.Confidence, p.Strategy)
		if p.Digest != "" {
			fmt.Printf("      digest %s\n", p.Digest)
		}
	}
	if r.Trailing != nil {
		fmt.Printf("  trailing: %d bytes after container end %d, %d payloads\n",
			r.Trailing.Length, r.Trailing.ContainerEnd, len(r.Trailing.Payloads))
		for i, p := range r.Trailing.Payloads {
			fmt.Printf("    [%d] %s [%d:%d) %d bytes, %s confidence\n",
				i, p.Kind, p.Start, p.End, p.Length, p.Confidence)
		}
	}
}

// hostKind reports which trailing-capable container the buffer starts
// with.
func hostKind(data []byte) (sigscan.Kind, bool) {
	for _, kind := range []sigscan.Kind{sigscan.KindPNG, sigscan.KindJPEG} {
		if det, ok := sigscan.Lookup(kind); ok && det.Matches(data, 0) {
			return kind, true
		}
	}
	return "", false
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprint(os.Stderr, `carvekit scans byte buffers for embedded file containers.

It detects container signatures (PNG, JPEG, GIF, WebP, BMP, TIFF, PDF,
ZIP), locates their ends, reports data appended after a host image, and
can lift bit planes out of decoded images for a second-stage scan.

Usage:
  carvekit [flags] <file>...
  carvekit --watch <dir> [flags]

Inputs with a .zst or .lz4 suffix are decompressed before scanning.

Flags:
`)
	flagSet.PrintDefaults()
}
