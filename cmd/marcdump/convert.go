package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/marckit/cmd/marcdump/logger"
	"github.com/joshuapare/marckit/internal/mmfile"
	"github.com/joshuapare/marckit/internal/writer"
	"github.com/joshuapare/marckit/pkg/marc"
	"github.com/joshuapare/marckit/pkg/xmltree"
)

// recordsPerJob is the number of records each worker converts per batch.
const recordsPerJob = 256

var (
	convertTo          string
	convertFrom        string
	convertOutput      string
	convertJobs        int
	convertFromCharset string
	convertToCharset   string
	convertLeaderSpec  string
	convertDebug       int
	convertSubfield    string
	convertEndline     string
	convertLimit       int
)

func init() {
	cmd := newConvertCmd()
	cmd.Flags().StringVarP(&convertTo, "to", "t", "", "Output format: line, marcxml, marcxchange, iso2709")
	cmd.Flags().StringVarP(&convertFrom, "from", "f", "", "Input format: iso2709, xml")
	cmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write to file instead of stdout (.gz and .zst are compressed)")
	cmd.Flags().IntVarP(&convertJobs, "jobs", "j", 1, "Convert ISO 2709 records on this many goroutines")
	addRecordFlags(cmd)
	rootCmd.AddCommand(cmd)
}

// addRecordFlags registers the flags shared by convert and dump.
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&convertFromCharset, "from-charset", "", "Character set of the input")
	cmd.Flags().StringVar(&convertToCharset, "to-charset", "", "Character set of the output")
	cmd.Flags().StringVarP(&convertLeaderSpec, "leader-spec", "l", "", "Leader patches, e.g. 9='a',17=32")
	cmd.Flags().IntVar(&convertDebug, "debug", 0, "Add decoding diagnostics as comments")
	cmd.Flags().StringVar(&convertSubfield, "subfield-separator", "", "Subfield separator for line output")
	cmd.Flags().StringVar(&convertEndline, "line-terminator", "", "Line terminator for line output")
	cmd.Flags().IntVarP(&convertLimit, "limit", "n", 0, "Stop after this many records (0 = all)")
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file|->",
		Short: "Convert records between ISO 2709 and XML formats",
		Long: `The convert command reads ISO 2709 or MARCXML records and writes them in
another format. Use - to read from standard input. Files ending in .gz or
.zst are decompressed on input and compressed on output.

Example:
  marcdump convert records.mrc --to marcxml
  marcdump convert records.xml --from xml --to iso2709 -o records.mrc
  marcdump convert records.mrc.gz --from-charset iso-8859-1 --to marcxchange
  marcdump convert records.mrc --to iso2709 --leader-spec "9='a'" -j 4 -o out.mrc.zst
  cat records.mrc | marcdump convert - --to line --debug 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRecordFlags(cmd)
			if cmd.Flags().Changed("to") {
				cfg.Format = convertTo
			}
			if cmd.Flags().Changed("from") {
				cfg.Input = convertFrom
			}
			return runConvert(args[0], convertOutput, convertJobs)
		},
	}
	return cmd
}

// applyRecordFlags copies the shared flags that were set into cfg.
func applyRecordFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("from-charset") {
		cfg.FromCharset = convertFromCharset
	}
	if flags.Changed("to-charset") {
		cfg.ToCharset = convertToCharset
	}
	if flags.Changed("leader-spec") {
		cfg.LeaderSpec = convertLeaderSpec
	}
	if flags.Changed("debug") {
		cfg.Debug = convertDebug
	}
	if flags.Changed("subfield-separator") {
		cfg.SubfieldSeparator = convertSubfield
	}
	if flags.Changed("line-terminator") {
		cfg.LineTerminator = convertEndline
	}
}

func runConvert(input, output string, jobs int) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Logger = logger.L

	c := &converter{limit: convertLimit}
	for i := 0; i < max(jobs, 1); i++ {
		h, err := marc.New(opts)
		if err != nil {
			return err
		}
		defer h.Close()
		c.handles = append(c.handles, h)
	}

	sink := writer.Stream(os.Stdout)
	if output != "" {
		fw, err := writer.Create(output)
		if err != nil {
			return err
		}
		sink = fw
	}
	zw, err := compress(output, sink)
	if err != nil {
		_ = sink.Abort()
		return err
	}
	c.w = bufio.NewWriter(zw)

	err = c.run(input)
	if err == nil {
		err = c.w.Flush()
	}
	if err == nil {
		err = zw.Close()
	}
	if err != nil {
		_ = sink.Abort()
		return err
	}
	if err := sink.Commit(); err != nil {
		return err
	}
	if output != "" {
		printInfo("Wrote %d records to %s\n", c.count, output)
	}
	printVerbose("%d records converted\n", c.count)
	return nil
}

// converter feeds records from one input through handles into w. With more
// than one handle, ISO 2709 records are converted in batches, one goroutine
// per handle, and written in input order.
type converter struct {
	handles []*marc.Handle
	w       *bufio.Writer
	limit   int
	count   int

	batch [][]byte
	done  int
}

func (c *converter) full() bool {
	return c.limit > 0 && c.count >= c.limit
}

func (c *converter) run(input string) error {
	if err := c.header(); err != nil {
		return err
	}
	var err error
	switch strings.ToLower(cfg.Input) {
	case "iso2709", "":
		err = c.readISO2709(input)
	case "xml", "marcxml", "marcxchange":
		err = c.readXML(input)
	default:
		return fmt.Errorf("unknown input format %q", cfg.Input)
	}
	if err == nil {
		err = c.flush()
	}
	if err != nil {
		return err
	}
	return c.footer()
}

// header opens a collection element for XML output.
func (c *converter) header() error {
	var ns string
	switch c.handles[0].Mode() {
	case marc.ModeMARCXML:
		ns = marc.NamespaceMARCXML
	case marc.ModeMarcXchange:
		ns = marc.NamespaceMarcXchange
	default:
		return nil
	}
	_, err := fmt.Fprintf(c.w, "<collection xmlns=\"%s\">\n", ns)
	return err
}

func (c *converter) footer() error {
	switch c.handles[0].Mode() {
	case marc.ModeMARCXML, marc.ModeMarcXchange:
		_, err := io.WriteString(c.w, "</collection>\n")
		return err
	}
	return nil
}

// open returns a stream for input, decompressing by extension.
func open(input string) (io.ReadCloser, error) {
	if input == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	r, err := decompress(input, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return struct {
		io.Reader
		io.Closer
	}{r, closers{r, f}}, nil
}

// closers closes each element in order and returns the first error.
type closers []io.Closer

func (cs closers) Close() error {
	var first error
	for _, c := range cs {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *converter) readISO2709(input string) error {
	if input == "-" || compressionOf(input) != compressNone {
		r, err := open(input)
		if err != nil {
			return err
		}
		defer r.Close()
		return c.scanISO2709(r)
	}

	f, err := mmfile.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	// Records are decoded in place from the mapping.
	data := f.Bytes()
	off := 0
	for !c.full() {
		adv, rec, err := marc.ScanRecords(data[off:], true)
		if err != nil {
			return fmt.Errorf("%s: record %d at offset %d: %w", input, c.count+1, off, err)
		}
		if rec == nil {
			return nil
		}
		off += adv
		if err := c.iso2709Record(rec); err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
	}
	return nil
}

func (c *converter) scanISO2709(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), marc.MaxRecordSize)
	sc.Split(marc.ScanRecords)
	for !c.full() && sc.Scan() {
		if err := c.iso2709Record(sc.Bytes()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// iso2709Record converts rec now, or queues it when running in parallel.
// rec is only valid for the duration of the call.
func (c *converter) iso2709Record(rec []byte) error {
	c.count++
	if len(c.handles) == 1 {
		out, err := convertISO2709(c.handles[0], c.count, rec)
		if err != nil {
			return err
		}
		_, err = c.w.Write(out)
		return err
	}
	c.batch = append(c.batch, bytes.Clone(rec))
	if len(c.batch) >= recordsPerJob*len(c.handles) {
		return c.flush()
	}
	return nil
}

// flush converts the queued records, one contiguous share per handle, and
// writes the results in order.
func (c *converter) flush() error {
	if len(c.batch) == 0 {
		return nil
	}
	out := make([][]byte, len(c.batch))
	share := (len(c.batch) + len(c.handles) - 1) / len(c.handles)

	var g errgroup.Group
	for i, h := range c.handles {
		lo := i * share
		if lo >= len(c.batch) {
			break
		}
		hi := min(lo+share, len(c.batch))
		g.Go(func() error {
			for k := lo; k < hi; k++ {
				enc, err := convertISO2709(h, c.done+k+1, c.batch[k])
				if err != nil {
					return err
				}
				out[k] = bytes.Clone(enc)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, b := range out {
		if _, err := c.w.Write(b); err != nil {
			return err
		}
	}
	c.done += len(c.batch)
	clear(c.batch)
	c.batch = c.batch[:0]
	return nil
}

// convertISO2709 decodes one record with h and encodes it in h's mode. The
// result is valid until h is used again.
func convertISO2709(h *marc.Handle, n int, rec []byte) ([]byte, error) {
	if _, err := h.ReadISO2709(rec, len(rec)); err != nil {
		return nil, fmt.Errorf("record %d: %w", n, err)
	}
	if k := len(h.Record().Comments()); k > 0 {
		logger.Debug("record has diagnostics", "record", n, "comments", k)
	}
	out, err := h.Encode()
	if err != nil {
		return nil, fmt.Errorf("record %d: %w", n, err)
	}
	return out, nil
}

func (c *converter) readXML(input string) error {
	var (
		nodes []*xmltree.Node
		err   error
	)
	if input == "-" || compressionOf(input) != compressNone {
		r, oerr := open(input)
		if oerr != nil {
			return oerr
		}
		defer r.Close()
		nodes, err = xmltree.Parse(r)
	} else {
		f, oerr := mmfile.Open(input)
		if oerr != nil {
			return oerr
		}
		defer f.Close()
		nodes, err = xmltree.ParseBytes(f.Bytes())
	}
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	h := c.handles[0]
	for _, rec := range marc.RecordElements(nodes) {
		if c.full() {
			break
		}
		c.count++
		if err := h.ReadXMLRecord(rec); err != nil {
			return fmt.Errorf("%s: record %d: %w", input, c.count, err)
		}
		if err := h.Write(c.w); err != nil {
			return err
		}
	}
	return nil
}
