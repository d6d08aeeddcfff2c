// Package config is the processor's ambient configuration layer. It
// generalizes the NewXxxUniform(meshCells int)-with-sane-defaults
// constructor shape into a validated struct plus functional options,
// the shape favored by multi-field CLI config elsewhere (e.g. gofem,
// h3go).
package config

import (
	"github.com/mtsarch/isonet/processor/errs"
	"github.com/mtsarch/isonet/vec3"
)

// Config is the processor's full set of run parameters.
type Config struct {
	// Resolution is the background mesh's per-axis grid subdivision
	// count.
	Resolution int
	// AABBMin/AABBMax bound the background mesh.
	AABBMin, AABBMax vec3.Vec
	// LUTPath names a precomputed lookup table file (package iotable).
	// The processor does not load it; every tet goes through
	// package arrangement's general cut.
	LUTPath string
	// WorkerCount is a requested worker pool size. Validate rejects
	// negative values; nothing else reads it, and dispatch processes
	// tets on one goroutine.
	WorkerCount int
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithResolution overrides the default background-mesh resolution.
func WithResolution(n int) Option {
	return func(c *Config) { c.Resolution = n }
}

// WithBounds overrides the default background-mesh bounding box.
func WithBounds(min, max vec3.Vec) Option {
	return func(c *Config) { c.AABBMin, c.AABBMax = min, max }
}

// WithLUTPath sets the lookup-table file name (see Config.LUTPath).
func WithLUTPath(path string) Option {
	return func(c *Config) { c.LUTPath = path }
}

// WithWorkerCount sets the requested worker count (see
// Config.WorkerCount).
func WithWorkerCount(n int) Option {
	return func(c *Config) { c.WorkerCount = n }
}

// New returns a Config with sane defaults, overridden by opts.
func New(opts ...Option) *Config {
	c := &Config{
		Resolution: 32,
		AABBMin:    vec3.Vec{X: -1, Y: -1, Z: -1},
		AABBMax:    vec3.Vec{X: 1, Y: 1, Z: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate reports whether c describes a runnable configuration.
func (c *Config) Validate() error {
	if c.Resolution < 1 {
		return errs.New(errs.InvalidConfiguration, "resolution must be at least 1")
	}
	if c.AABBMin.X >= c.AABBMax.X || c.AABBMin.Y >= c.AABBMax.Y || c.AABBMin.Z >= c.AABBMax.Z {
		return errs.New(errs.InvalidConfiguration, "AABBMin must be strictly less than AABBMax on every axis")
	}
	if c.WorkerCount < 0 {
		return errs.New(errs.InvalidConfiguration, "worker count must not be negative")
	}
	return nil
}
