// Package config loads the settings of the shuffle command from ini files.
//
// A configuration file holds a single [Shuffle] section:
//
//	[Shuffle]
//	Source = pcg
//	Seed   = 42
//	Count  = 10
package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/lanrat/shuffle/permute"
	"github.com/lanrat/shuffle/source"
)

// Source names accepted in configuration files and on the command line.
const (
	SourceCrypto  = "crypto"
	SourcePCG     = "pcg"
	SourceSalsa20 = "salsa20"
)

const sectionName = "Shuffle"

// Config is the validated configuration of the shuffle command.
type Config struct {
	Source string
	Seed   uint64
	Key    [32]byte
	// Count limits the number of values printed, 0 prints all of them.
	Count uint64
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Source: SourceCrypto}
}

// FileIni mirrors the [Shuffle] section of a configuration file.
type FileIni struct {
	Source string
	Seed   uint64
	Key    string
	Count  uint64
}

func (f *FileIni) toConfig() (*Config, error) {
	c := Default()
	if f.Source != "" {
		c.Source = f.Source
	}
	c.Seed = f.Seed
	c.Count = f.Count
	if f.Key != "" {
		if err := c.SetKey(f.Key); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetKey parses a hex encoded 32 byte salsa20 key.
func (c *Config) SetKey(s string) error {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	if len(key) != len(c.Key) {
		return fmt.Errorf("invalid key: want %d bytes, got %d", len(c.Key), len(key))
	}
	copy(c.Key[:], key)
	return nil
}

// Validate checks that the source name is known.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Source) {
	case SourceCrypto, SourcePCG, SourceSalsa20:
		c.Source = strings.ToLower(c.Source)
		return nil
	default:
		return fmt.Errorf("unknown source %q, want one of %s, %s, %s", c.Source, SourceCrypto, SourcePCG, SourceSalsa20)
	}
}

// NewSource builds the randomness source described by the configuration.
func (c *Config) NewSource() (permute.Source, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Source {
	case SourcePCG:
		return source.NewPCG(c.Seed), nil
	case SourceSalsa20:
		return source.NewSalsa20(c.Key), nil
	default:
		return source.Crypto(), nil
	}
}

// Parse loads a configuration from src, which may be a file path or the raw
// file contents as []byte.
func Parse(src any) (*Config, error) {
	iniOpt := ini.LoadOptions{
		Insensitive: true,
	}
	iniCfg, err := ini.LoadSources(iniOpt, src)
	if err != nil {
		return nil, err
	}

	section, err := iniCfg.GetSection(sectionName)
	if err != nil {
		return nil, err
	}
	fileIni := new(FileIni)
	if err := section.MapTo(fileIni); err != nil {
		return nil, err
	}
	return fileIni.toConfig()
}
