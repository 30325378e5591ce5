package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Geun-Oh/sift/internal/keywords"
	"github.com/Geun-Oh/sift/internal/sink"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, keywords.FormatAuto, cfg.Format)
	assert.Equal(t, "keyword", cfg.Column)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, sink.ModeHits, cfg.Print)
	assert.True(t, cfg.Color)
	assert.Zero(t, cfg.Mask)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"keywords: words.csv\n"+
			"column: term\n"+
			"output: json\n"+
			"print: lines\n"+
			"mask: \"*\"\n"+
			"exclude: [healthz, ping]\n"+
			"before: 2\n"), 0o644))

	t.Setenv("SIFT_COLUMN", "word")
	t.Setenv("SIFT_OUT_FILE", "hits.jsonl")

	v := New()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "words.csv", cfg.KeywordsFile)
	assert.Equal(t, "word", cfg.Column, "env overrides file")
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, sink.ModeLines, cfg.Print)
	assert.Equal(t, '*', cfg.Mask)
	assert.Equal(t, []string{"healthz", "ping"}, cfg.Exclude)
	assert.Equal(t, 2, cfg.Before)
	assert.Equal(t, "hits.jsonl", cfg.OutFile)
}

func TestReadFileMissing(t *testing.T) {
	v := New()
	err := ReadFile(v, filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{KeyFormat, "xml", "unknown keyword format"},
		{KeyOutput, "xml", "unknown output"},
		{KeyPrint, "all", "unknown print mode"},
		{KeyMask, "**", "single character"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	v := New()
	v.Set(KeyAfter, -1)
	_, err := Load(v)
	assert.Error(t, err)
}

func TestKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kw.csv")
	require.NoError(t, os.WriteFile(path, []byte("keyword\ncat\n"), 0o644))

	cfg := &Config{KeywordsFile: path, Format: keywords.FormatAuto, Column: "keyword", Words: []string{" dog ", ""}}
	kws, err := cfg.Keywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, kws)

	_, err = (&Config{}).Keywords()
	assert.ErrorIs(t, err, ErrNoKeywords)

	kws, err = (&Config{Words: []string{"x"}}).Keywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, kws)
}
