package cliprompt

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the build-time-style knobs the original embedded design
// expressed as preprocessor #defines. A long-running Go binary has no
// preprocessor, so these are loaded once at process start and threaded
// through NewPool.
type Config struct {
	// MaxPrompts sizes the prompt instance pool.
	MaxPrompts int `mapstructure:"max_prompts"`
	// MaxArgs bounds the argv capacity per command invocation.
	MaxArgs int `mapstructure:"max_args"`
	// LineBufferSize is the suggested line buffer capacity for callers that
	// want a reduced, Micro-build-equivalent footprint. NewPool does not
	// allocate line buffers itself (callers own that memory); this value is
	// advisory for callers that want it.
	LineBufferSize int `mapstructure:"line_buffer_size"`
	// RemoveHelp, when set, turns the detailed help emission primitives into
	// no-ops and collapses ShowCommandHelp to a single summary line.
	RemoveHelp bool `mapstructure:"remove_help"`
}

// DefaultConfig returns the compiled-in defaults matching the original
// design's Full build variant.
func DefaultConfig() Config {
	return Config{
		MaxPrompts:     1,
		MaxArgs:        10,
		LineBufferSize: 40,
		RemoveHelp:     false,
	}
}

// LoadConfig reads Config from the CLIPROMPT_* environment variables (and,
// if present, an optional YAML file at path) over the compiled defaults.
// An empty path skips the file lookup entirely.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("CLIPROMPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("max_prompts", def.MaxPrompts)
	v.SetDefault("max_args", def.MaxArgs)
	v.SetDefault("line_buffer_size", def.LineBufferSize)
	v.SetDefault("remove_help", def.RemoveHelp)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}
