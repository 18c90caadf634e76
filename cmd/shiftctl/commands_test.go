package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ardnew/softshift/internal/config"
	"github.com/ardnew/softshift/internal/translate"
	"github.com/ardnew/softshift/pkg"
)

func init() {
	translate.SetLanguage(language.AmericanEnglish)
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantOutputs []byte
		wantFlushes uint64
	}{
		{"set", []string{"set", "2", "0xA0"}, []byte{0x00, 0x00, 0xA0}, 1},
		{"write", []string{"write", "1", "0b1", "2"}, []byte{0x00, 0x01, 0x02}, 1},
		{"bit high", []string{"bit", "0", "0", "high"}, []byte{0x80, 0x00, 0x00}, 1},
		{"bit low", []string{"bit", "1", "7", "off"}, []byte{0x00, 0x00, 0x00}, 1},
		{"flush", []string{"flush"}, []byte{0x00, 0x00, 0x00}, 1},
		{"clear", []string{"clear"}, []byte{0x00, 0x00, 0x00}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Registers = 3
			dev, hw, err := open(cfg)
			require.NoError(t, err)

			var out bytes.Buffer
			require.NoError(t, execute(dev, tt.args, &out))
			assert.Equal(t, tt.wantOutputs, hw.Outputs())
			assert.Equal(t, tt.wantFlushes, dev.Flushes())
			assert.Contains(t, out.String(), "3 registers flushed")
		})
	}
}

func TestExecute_Show(t *testing.T) {
	cfg := config.Defaults()
	cfg.Registers = 2
	cfg.Fill = 0x5A
	dev, hw, err := open(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, execute(dev, []string{"show"}, &out))
	assert.Equal(t, "register 0 = 0x5A\nregister 1 = 0x5A\n", out.String())
	assert.Zero(t, dev.Flushes())
	assert.Equal(t, []byte{0x00, 0x00}, hw.Outputs())
}

func TestExecute_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chase.star")
	require.NoError(t, os.WriteFile(path, []byte(`
def chase(data):
    for i in range(len(data)):
        data[i] = 1 << i

span(0, registers).update(chase)
print("done")
`), 0o600))

	cfg := config.Defaults()
	cfg.Registers = 4
	dev, hw, err := open(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, execute(dev, []string{"run", path}, &out))
	assert.Equal(t, []byte{0x01, 0x02, 0x04, 0x08}, hw.Outputs())
	assert.Contains(t, out.String(), "done\n")
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no command", nil, pkg.ErrInvalidParameter},
		{"unknown", []string{"explode"}, pkg.ErrInvalidParameter},
		{"set arity", []string{"set", "0"}, pkg.ErrInvalidParameter},
		{"set bad value", []string{"set", "0", "256"}, pkg.ErrInvalidParameter},
		{"set bad index", []string{"set", "x", "1"}, pkg.ErrInvalidParameter},
		{"set out of range", []string{"set", "2", "1"}, pkg.ErrOutOfRange},
		{"write past end", []string{"write", "1", "1", "2"}, pkg.ErrOutOfRange},
		{"bit out of range", []string{"bit", "0", "8", "high"}, pkg.ErrOutOfRange},
		{"bit bad level", []string{"bit", "0", "1", "maybe"}, pkg.ErrInvalidParameter},
		{"run arity", []string{"run"}, pkg.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Registers = 2
			dev, _, err := open(cfg)
			require.NoError(t, err)

			var out bytes.Buffer
			assert.ErrorIs(t, execute(dev, tt.args, &out), tt.want)
			assert.Zero(t, dev.Flushes())
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.Backend = "spi"
	_, _, err := open(cfg)
	assert.ErrorIs(t, err, pkg.ErrNotSupported)
}
