package lognerd

import (
	"strings"

	"github.com/thoreinstein/lognerd/internal/platform"
)

// Environment is the deployment environment. It only affects whether the
// console sink is on by default.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ParseEnvironment accepts "development" or "production", case-insensitively.
func ParseEnvironment(s string) (Environment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(EnvDevelopment):
		return EnvDevelopment, true
	case string(EnvProduction):
		return EnvProduction, true
	default:
		return "", false
	}
}

// Runtime is the kind of process the Logger runs in.
type Runtime = platform.Runtime

const (
	RuntimeServer = platform.RuntimeServer
	RuntimeClient = platform.RuntimeClient
)

// Config is a fully resolved logger configuration. It is a value: copies never
// alias each other or the Overrides they were built from.
type Config struct {
	Level         Level       `json:"level" yaml:"level" toml:"level"`
	EnableConsole bool        `json:"enableConsole" yaml:"enableConsole" toml:"enableConsole"`
	EnableFile    bool        `json:"enableFile" yaml:"enableFile" toml:"enableFile"`
	FilePath      string      `json:"filePath,omitempty" yaml:"filePath,omitempty" toml:"filePath,omitempty"`
	Environment   Environment `json:"environment" yaml:"environment" toml:"environment"`
	Runtime       Runtime     `json:"runtimeEnvironment" yaml:"runtimeEnvironment" toml:"runtimeEnvironment"`

	// MaxFileSizeMB triggers rotation once the active file reaches it.
	// Zero disables rotation.
	MaxFileSizeMB float64 `json:"maxFileSize,omitempty" yaml:"maxFileSize,omitempty" toml:"maxFileSize,omitempty"`

	// MaxFiles is the number of rotated files kept. Zero disables cleanup.
	MaxFiles int `json:"maxFiles,omitempty" yaml:"maxFiles,omitempty" toml:"maxFiles,omitempty"`
}

// Overrides is a partial Config. Nil fields are "not set" and leave the base
// value untouched when applied.
type Overrides struct {
	Level         *Level
	EnableConsole *bool
	EnableFile    *bool
	FilePath      *string
	Environment   *Environment
	Runtime       *Runtime
	MaxFileSizeMB *float64
	MaxFiles      *int
}

// Ptr returns a pointer to v, for building Overrides inline.
func Ptr[T any](v T) *T {
	return &v
}

// Apply returns base with every set field of o copied over it.
func (o Overrides) Apply(base Config) Config {
	setIf(&base.Level, o.Level)
	setIf(&base.EnableConsole, o.EnableConsole)
	setIf(&base.EnableFile, o.EnableFile)
	setIf(&base.FilePath, o.FilePath)
	setIf(&base.Environment, o.Environment)
	setIf(&base.Runtime, o.Runtime)
	setIf(&base.MaxFileSizeMB, o.MaxFileSizeMB)
	setIf(&base.MaxFiles, o.MaxFiles)
	return base
}

// IsZero reports whether no field is set.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// Merge returns o with every set field of next copied over it. The result
// never shares storage with next.
func (o Overrides) Merge(next Overrides) Overrides {
	o.Level = pick(o.Level, next.Level)
	o.EnableConsole = pick(o.EnableConsole, next.EnableConsole)
	o.EnableFile = pick(o.EnableFile, next.EnableFile)
	o.FilePath = pick(o.FilePath, next.FilePath)
	o.Environment = pick(o.Environment, next.Environment)
	o.Runtime = pick(o.Runtime, next.Runtime)
	o.MaxFileSizeMB = pick(o.MaxFileSizeMB, next.MaxFileSizeMB)
	o.MaxFiles = pick(o.MaxFiles, next.MaxFiles)
	return o
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func pick[T any](cur, next *T) *T {
	if next == nil {
		return cur
	}
	return Ptr(*next)
}
