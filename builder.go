// File: lixenwraith/conftree/builder.go
package conftree

import (
	"fmt"
	"io"
	"os"
)

// Builder provides a fluent interface for assembling the startup pipeline:
// merge one or more default blocks, layer an optional config file over
// them, then resolve command-line arguments strictly.
type Builder struct {
	blocks     []map[string]any
	file       string
	args       []string
	helpWriter io.Writer
	exitOnHelp bool
	err        error
}

// NewBuilder creates a configuration builder. Arguments default to
// os.Args[1:].
func NewBuilder() *Builder {
	return &Builder{args: os.Args[1:]}
}

// WithDefaults appends a block of default values. Later blocks override
// earlier ones key by key; nested groups merge recursively.
func (b *Builder) WithDefaults(block map[string]any) *Builder {
	b.blocks = append(b.blocks, block)
	return b
}

// WithStructDefaults appends a block of defaults derived from a tagged
// struct, nested under the given dotted prefix (empty for the root).
func (b *Builder) WithStructDefaults(prefix string, defaults any) *Builder {
	cfg, err := FromStruct(prefix, defaults)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.blocks = append(b.blocks, cfg.Nested())
	return b
}

// WithFile sets a configuration file to layer over the defaults. Every key
// in the file must already exist in the defaults unless no defaults were
// given, in which case the file becomes the baseline.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithArgs sets the command-line arguments to resolve.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithHelpWriter redirects the --help listing.
func (b *Builder) WithHelpWriter(w io.Writer) *Builder {
	b.helpWriter = w
	return b
}

// WithExitOnHelp makes a --help token terminate the process after printing
// the listing.
func (b *Builder) WithExitOnHelp(exit bool) *Builder {
	b.exitOnHelp = exit
	return b
}

// Build merges the default blocks, applies the file and the arguments, and
// returns the resolved Config.
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	merged := make(map[string]any)
	for _, block := range b.blocks {
		mergeRaw(merged, block)
	}
	cfg, err := New(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to build defaults: %w", err)
	}

	if b.file != "" {
		loaded, err := Load(b.file)
		if err != nil {
			return nil, err
		}
		if cfg.Len() == 0 {
			cfg = loaded
		} else {
			overrides := make(map[string]any, loaded.Len())
			for key, value := range loaded.flat {
				overrides[key] = value
			}
			cfg, err = cfg.Update(overrides)
			if err != nil {
				return nil, fmt.Errorf("failed to apply config file '%s': %w", b.file, err)
			}
		}
	}

	flags := NewFlags(cfg).WithExitOnHelp(b.exitOnHelp)
	if b.helpWriter != nil {
		flags = flags.WithHelpWriter(b.helpWriter)
	}
	return flags.Parse(b.args)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// mergeRaw deep-merges src into dst: nested maps merge recursively, any
// other value overwrites.
func mergeRaw(dst, src map[string]any) {
	for key, value := range src {
		if srcMap, isMap := value.(map[string]any); isMap {
			dstMap, isDstMap := dst[key].(map[string]any)
			if !isDstMap {
				dstMap = make(map[string]any, len(srcMap))
				dst[key] = dstMap
			}
			mergeRaw(dstMap, srcMap)
			continue
		}
		dst[key] = value
	}
}
