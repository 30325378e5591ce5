// Package keywords reads keyword lists from CSV, plain-text and YAML files.
package keywords

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v2"
)

// Format selects how a keyword file is parsed.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatCSV   Format = "csv"
	FormatLines Format = "lines"
	FormatYAML  Format = "yaml"
)

// DefaultColumn is the CSV header read when Options.Column is empty.
const DefaultColumn = "keyword"

var (
	ErrUnknownFormat = errors.New("unknown keyword format")
	ErrMissingColumn = errors.New("csv column not found")
	ErrInvalidUTF8   = errors.New("keyword is not valid UTF-8")
)

// Options controls parsing.
type Options struct {
	Format Format
	Column string // CSV header name
}

// ParseFormat converts a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV, FormatLines, FormatYAML:
		return f, nil
	case "txt", "text":
		return FormatLines, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Detect picks a format from the file extension. Anything unrecognised is
// read as one keyword per line.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatLines
	}
}

// Load reads the keyword file at path.
func Load(path string, opts Options) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keywords %s: %w", path, err)
	}
	defer f.Close()

	if opts.Format == "" || opts.Format == FormatAuto {
		opts.Format = Detect(path)
	}

	kws, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("keywords %s: %w", path, err)
	}
	return kws, nil
}

// Read parses keywords from r. Keywords are trimmed, empty ones dropped, and
// file order kept. FormatAuto is treated as FormatLines since there is no
// file name to go by.
func Read(r io.Reader, opts Options) ([]string, error) {
	var (
		raw []string
		err error
	)

	switch opts.Format {
	case FormatCSV:
		raw, err = readCSV(r, opts.Column)
	case "", FormatAuto, FormatLines:
		raw, err = readLines(r)
	case FormatYAML:
		raw, err = readYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return nil, err
	}

	return clean(raw)
}

func clean(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for i, kw := range raw {
		if !utf8.ValidString(kw) {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidUTF8, i+1)
		}
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		out = append(out, kw)
	}
	return out, nil
}

func readCSV(r io.Reader, column string) ([]string, error) {
	if column == "" {
		column = DefaultColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := -1
	for i, h := range header {
		// A UTF-8 BOM survives csv parsing on the first field.
		h = strings.TrimPrefix(h, "\ufeff")
		if strings.TrimSpace(h) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}

	var out []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if idx < len(rec) {
			out = append(out, rec[idx])
		}
	}
	return out, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return out, nil
}

// yamlList accepts either a bare sequence or {keywords: [...]}.
type yamlList struct {
	Keywords []string `yaml:"keywords"`
}

func readYAML(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	var seq []string
	if err := yaml.Unmarshal(data, &seq); err == nil {
		return seq, nil
	}

	var doc yamlList
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return doc.Keywords, nil
}
