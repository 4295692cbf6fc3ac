// Command jsonsanitize cleans almost-JSON, either as one raw document or as
// a field inside NDJSON records.
//
//	jsonsanitize -raw < messy.txt
//	jsonsanitize -field data -mode both < records.ndjson
//	jsonsanitize -config sanitize.yaml records.ndjson
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/devwithmj/jsonsanitize"
	"github.com/devwithmj/jsonsanitize/internal/diag"
	"github.com/devwithmj/jsonsanitize/record"
)

const maxLineBytes = 16 * 1024 * 1024

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("jsonsanitize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	configPath := fs.String("config", "", "path to options yaml (flags override it)")
	field := fs.String("field", "", "dot-delimited input field path (default data)")
	mode := fs.String("mode", "", "output mode: parsed|string|both|repair (default parsed)")
	outputField := fs.String("output-field", "", "output field name (default sanitized)")
	keep := fs.Bool("keep", false, "keep original record fields")
	onError := fs.String("on-error", "", "error handling: stop|continue (default stop)")
	extract := fs.Bool("extract", false, "scan text for JSON buried in prose")
	raw := fs.Bool("raw", false, "treat the whole input as one document, print the cleaned string")
	outputPath := fs.String("output", "", "output file (default stdout)")
	verbose := fs.Bool("verbose", false, "log per-record progress to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	in, closeIn, err := openInput(fs.Args())
	if err != nil {
		return err
	}
	defer closeIn()

	out := io.Writer(os.Stdout)
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			return fmt.Errorf("create output %q: %w", *outputPath, err)
		}
		defer f.Close()
		out = f
	}

	if *raw {
		return runRaw(in, out, *mode)
	}

	opts, err := buildOptions(*configPath, *field, *mode, *outputField, *keep, *onError, *extract)
	if err != nil {
		return err
	}
	diag.LogJSON(*verbose, "options", opts)
	return runRecords(in, out, opts, *verbose)
}

func openInput(rest []string) (io.Reader, func(), error) {
	switch len(rest) {
	case 0:
		return os.Stdin, func() {}, nil
	case 1:
		f, err := os.Open(rest[0])
		if err != nil {
			return nil, nil, fmt.Errorf("open input %q: %w", rest[0], err)
		}
		return f, func() { f.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("usage: jsonsanitize [flags] [input-file]")
	}
}

func buildOptions(configPath, field, mode, outputField string, keep bool, onError string, extract bool) (record.Options, error) {
	var opts record.Options
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return opts, err
		}
		opts = cfg.options()
	}
	if field != "" {
		opts.InputField = field
	}
	if mode != "" {
		opts.Mode = record.Mode(mode)
	}
	if outputField != "" {
		opts.OutputField = outputField
	}
	if keep {
		opts.KeepOriginalFields = true
	}
	if onError != "" {
		opts.OnError = record.ErrorMode(onError)
	}
	if extract {
		opts.Extract = true
	}
	return opts, opts.Validate()
}

func runRaw(in io.Reader, out io.Writer, mode string) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var res *jsonsanitize.Result
	if mode == string(record.ModeRepair) {
		res, err = jsonsanitize.Repair(string(data))
	} else {
		res, err = jsonsanitize.Sanitize(string(data))
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, res.CleanedString)
	return err
}

func runRecords(in io.Reader, out io.Writer, opts record.Options, verbose bool) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records [][]byte
	for scanner.Scan() {
		rec := scanner.Bytes()
		if len(rec) == 0 {
			continue
		}
		records = append(records, append([]byte(nil), rec...))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	diag.LogText(verbose, "input", fmt.Sprintf("%d records", len(records)))

	processed, err := record.Process(records, opts)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	defer w.Flush()
	for _, rec := range processed {
		if _, err := w.Write(rec); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
