package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/spellbook/pkg/extract"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "System Reference Document", cfg.Sanitize.Footer)
	assert.Equal(t, "Spell Descriptions", cfg.Sanitize.SectionHeader)
	assert.Equal(t, 50, cfg.Sanitize.PageNumberFloor)
	assert.Equal(t, 5, cfg.Parse.HeaderLookahead)
	assert.Equal(t, ":8880", cfg.Serve.Addr)
	assert.Equal(t, 15*time.Second, cfg.Serve.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Serve.WriteTimeout)
	assert.Empty(t, cfg.Log.TraceSpell)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellbook.yaml")
	content := `
sanitize:
  footer: "Player's Handbook"
  page_number_floor: 300
parse:
  header_lookahead: 8
serve:
  read_timeout: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "Player's Handbook", cfg.Sanitize.Footer)
	assert.Equal(t, "Spell Descriptions", cfg.Sanitize.SectionHeader)
	assert.Equal(t, 300, cfg.Sanitize.PageNumberFloor)
	assert.Equal(t, 8, cfg.Parse.HeaderLookahead)
	assert.Equal(t, 2*time.Second, cfg.Serve.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Serve.WriteTimeout)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellbook.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"serve": {"addr": ":9000"}}`), 0644))

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("addr", ":8880", "")
	flags.String("trace", "", "")
	require.NoError(t, flags.Parse([]string{"--trace", "Acid Arrow"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.Equal(t, "Acid Arrow", cfg.Log.TraceSpell)

	require.NoError(t, flags.Parse([]string{"--addr", ":7000"}))
	cfg, err = Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Serve.Addr)
}

func TestLoad_RejectsBadLookahead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spellbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parse:\n  header_lookahead: 0\n"), 0644))

	_, err := Load(path, nil)
	assert.ErrorContains(t, err, "header_lookahead")
}

func TestConfig_ParserConfig(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	pc := cfg.ParserConfig(logger)
	assert.Equal(t, extract.DefaultSanitizePolicy(), pc.Sanitize)
	assert.Equal(t, extract.DefaultHeaderLookahead, pc.HeaderLookahead)
	assert.Nil(t, pc.TraceLogger)

	cfg.Log.TraceSpell = "Aid"
	pc = cfg.ParserConfig(logger)
	assert.Equal(t, "Aid", pc.TraceSpell)
	assert.Same(t, logger, pc.TraceLogger)
}

func TestConfig_ServerConfig(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	sc := cfg.ServerConfig()
	assert.Equal(t, ":8880", sc.Addr)
	assert.Equal(t, 15*time.Second, sc.ReadTimeout)
}
