package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// DefaultPath is the config picked up from the working directory when no path is given
const DefaultPath = "buji.hcl"

// Source names where a loaded file came from
type Source string

const (
	SourcePath     Source = "path"
	SourceDefault  Source = "working directory"
	SourceEmbedded Source = "embedded"
)

//go:embed default.hcl
var embeddedDefault []byte

// EvalContext exposes the process environment as env.NAME and a few string and number helpers
func EvalContext(env map[string]string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
		Functions: map[string]function.Function{
			"upper": stdlib.UpperFunc,
			"lower": stdlib.LowerFunc,
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
		},
	}
}

// Environ returns the process environment as a map
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}

// Parse decodes HCL source, filename only labels diagnostics
func Parse(src []byte, filename string, env map[string]string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, EvalContext(env), &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}
	return &f, nil
}

// LoadFile reads and decodes the file at path
func LoadFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(src, path, Environ())
}

// Default decodes the embedded configuration
func Default() (*File, error) {
	return Parse(embeddedDefault, "default.hcl", Environ())
}

// LoadAuto resolves the config by priority: explicit path, then ./buji.hcl, then the embedded default
func LoadAuto(path string) (*File, Source, error) {
	if path != "" {
		f, err := LoadFile(path)
		return f, SourcePath, err
	}

	if fileExists(DefaultPath) {
		f, err := LoadFile(DefaultPath)
		return f, SourceDefault, err
	}

	f, err := Default()
	return f, SourceEmbedded, err
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
