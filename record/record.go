// Package record applies the jsonsanitize pipeline to fields of JSON-encoded
// records: resolve a dot-delimited input field, sanitize or repair it,
// project the result per output mode, and write it back. This is the host
// glue around the pure core; per-record failures either abort the batch or
// annotate the record, depending on the configured error mode.
package record

import (
	"fmt"

	"github.com/devwithmj/jsonsanitize"
	"github.com/lyricat/goutils/structs"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Mode selects what gets written under the output field.
type Mode string

const (
	ModeParsed Mode = "parsed"
	ModeString Mode = "string"
	ModeBoth   Mode = "both"
	ModeRepair Mode = "repair"
)

// ErrorMode decides whether a failed record aborts the batch or is annotated
// and carried along.
type ErrorMode string

const (
	OnErrorStop     ErrorMode = "stop"
	OnErrorContinue ErrorMode = "continue"
)

// Options configure per-record processing. Zero values fall back to the
// "data" input field, parsed mode, the "sanitized" output field, and stop on
// error.
type Options struct {
	// InputField is the dot-delimited path of the field to sanitize.
	InputField string
	// Mode selects the output projection.
	Mode Mode
	// OutputField names the field the projection is written to.
	OutputField string
	// KeepOriginalFields writes the output into the original record instead
	// of a fresh object.
	KeepOriginalFields bool
	// OnError picks between aborting the batch and annotating the record.
	OnError ErrorMode
	// Extract additionally scans text values for JSON buried in prose.
	Extract bool
}

func (o Options) withDefaults() Options {
	if o.InputField == "" {
		o.InputField = "data"
	}
	if o.Mode == "" {
		o.Mode = ModeParsed
	}
	if o.OutputField == "" {
		o.OutputField = "sanitized"
	}
	if o.OnError == "" {
		o.OnError = OnErrorStop
	}
	return o
}

// Validate rejects unknown mode and error-mode values.
func (o Options) Validate() error {
	switch o.Mode {
	case "", ModeParsed, ModeString, ModeBoth, ModeRepair:
	default:
		return fmt.Errorf("unsupported mode %q", o.Mode)
	}
	switch o.OnError {
	case "", OnErrorStop, OnErrorContinue:
	default:
		return fmt.Errorf("unsupported error mode %q", o.OnError)
	}
	return nil
}

// Process sanitizes the configured field of every record and returns the
// rewritten records in order.
func Process(records [][]byte, opts Options) ([][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	out := make([][]byte, 0, len(records))
	for i, rec := range records {
		next, err := ProcessOne(rec, opts)
		if err != nil {
			if opts.OnError == OnErrorStop {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			next, err = annotateError(rec, opts, err)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}
		out = append(out, next)
	}
	return out, nil
}

// ProcessOne sanitizes the configured field of a single record.
func ProcessOne(rec []byte, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if !gjson.ValidBytes(rec) {
		return nil, fmt.Errorf("record is not valid JSON")
	}
	value, err := Extract(rec, opts.InputField)
	if err != nil {
		return nil, err
	}
	res, err := sanitizeValue(value, opts)
	if err != nil {
		return nil, err
	}
	return writeOutput(rec, opts, Project(res, opts.Mode))
}

func sanitizeValue(value gjson.Result, opts Options) (*jsonsanitize.Result, error) {
	input := fieldInput(value)
	if opts.Mode == ModeRepair {
		return jsonsanitize.Repair(input)
	}
	if opts.Extract {
		if text, ok := input.(string); ok {
			return jsonsanitize.SanitizeAny(text)
		}
	}
	return jsonsanitize.Sanitize(input)
}

// fieldInput converts a gjson result into the core's input shape: string
// values keep their text form, everything else decodes to Go values.
func fieldInput(v gjson.Result) any {
	if v.Type == gjson.String {
		return v.String()
	}
	return v.Value()
}

func writeOutput(rec []byte, opts Options, value any) ([]byte, error) {
	base := rec
	if !opts.KeepOriginalFields {
		base = []byte(`{}`)
	}
	out, err := sjson.SetBytes(base, opts.OutputField, value)
	if err != nil {
		return nil, fmt.Errorf("write output field %q: %w", opts.OutputField, err)
	}
	return out, nil
}

func annotateError(rec []byte, opts Options, cause error) ([]byte, error) {
	note := structs.NewJSONMap()
	note["error"] = cause.Error()
	note["field"] = opts.InputField
	return writeOutput(rec, opts, note)
}
