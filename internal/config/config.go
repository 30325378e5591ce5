// Package config resolves sift settings from flags, environment and an
// optional YAML file.
//
// Precedence is flag > SIFT_* environment variable > config file > default.
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/Geun-Oh/sift/internal/keywords"
	"github.com/Geun-Oh/sift/internal/sink"
)

// Keys shared between flag registration and Load.
const (
	KeyKeywords = "keywords"
	KeyFormat   = "format"
	KeyColumn   = "column"
	KeyWords    = "words"
	KeyOutput   = "output"
	KeyPrint    = "print"
	KeyColor    = "color"
	KeyVerbose  = "verbose"
	KeyMask     = "mask"
	KeyExclude  = "exclude"
	KeyBefore   = "before"
	KeyAfter    = "after"
	KeyStats    = "stats"
	KeyOutFile  = "out-file"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// ErrNoKeywords is returned when neither a keyword file nor inline words are set.
var ErrNoKeywords = errors.New("no keywords: set --keywords or --word")

// Config is the typed view of the resolved settings.
type Config struct {
	KeywordsFile string
	Format       keywords.Format
	Column       string
	Words        []string // inline keywords, added after the file's
	Output       string
	Print        sink.Mode
	Color        bool
	Verbose      bool
	Mask         rune // 0 when masking is off
	Exclude      []string
	Before       int
	After        int
	Stats        bool
	OutFile      string
}

// New returns a viper instance with sift defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyFormat, string(keywords.FormatAuto))
	v.SetDefault(KeyColumn, keywords.DefaultColumn)
	v.SetDefault(KeyOutput, OutputText)
	v.SetDefault(KeyPrint, "hits")
	v.SetDefault(KeyColor, true)
	return v
}

// ReadFile loads path into v. With an empty path it looks for .sift.yaml in
// the working directory and then $HOME, and a missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".sift")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return nil
}

// Load converts the settings held by v into a Config and validates them.
func Load(v *viper.Viper) (*Config, error) {
	format, err := keywords.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	mode, err := sink.ParseMode(v.GetString(KeyPrint))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	output := strings.ToLower(v.GetString(KeyOutput))
	if output != OutputText && output != OutputJSON {
		return nil, fmt.Errorf("config: unknown output %q (want text or json)", output)
	}

	var mask rune
	if m := v.GetString(KeyMask); m != "" {
		if utf8.RuneCountInString(m) != 1 {
			return nil, fmt.Errorf("config: mask must be a single character, got %q", m)
		}
		mask, _ = utf8.DecodeRuneInString(m)
	}

	before, after := v.GetInt(KeyBefore), v.GetInt(KeyAfter)
	if before < 0 || after < 0 {
		return nil, fmt.Errorf("config: context line counts must not be negative")
	}

	return &Config{
		KeywordsFile: v.GetString(KeyKeywords),
		Format:       format,
		Column:       v.GetString(KeyColumn),
		Words:        v.GetStringSlice(KeyWords),
		Output:       output,
		Print:        mode,
		Color:        v.GetBool(KeyColor),
		Verbose:      v.GetBool(KeyVerbose),
		Mask:         mask,
		Exclude:      v.GetStringSlice(KeyExclude),
		Before:       before,
		After:        after,
		Stats:        v.GetBool(KeyStats),
		OutFile:      v.GetString(KeyOutFile),
	}, nil
}

// Keywords loads the keyword file (if any) and appends the inline words.
func (c *Config) Keywords() ([]string, error) {
	var kws []string
	if c.KeywordsFile != "" {
		loaded, err := keywords.Load(c.KeywordsFile, keywords.Options{Format: c.Format, Column: c.Column})
		if err != nil {
			return nil, err
		}
		kws = loaded
	}
	for _, w := range c.Words {
		if w = strings.TrimSpace(w); w != "" {
			kws = append(kws, w)
		}
	}
	if c.KeywordsFile == "" && len(kws) == 0 {
		return nil, ErrNoKeywords
	}
	return kws, nil
}
