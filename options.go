package slycat

import "github.com/rs/zerolog"

type packConfig struct {
	force    bool
	includes []string
	excludes []string
	limits   Limits
	log      zerolog.Logger
}

// PackOption customizes a Pack run.
type PackOption func(*packConfig)

// WithForce overwrites an existing output document.
func WithForce(v bool) PackOption {
	return func(c *packConfig) { c.force = v }
}

// WithInclude restricts packing to basenames matching at least one
// pattern. Paths named on the input list, and everything beneath an
// explicitly included directory, bypass this filter.
func WithInclude(patterns ...string) PackOption {
	return func(c *packConfig) { c.includes = append(c.includes, patterns...) }
}

// WithExclude drops any file or directory whose basename matches a
// pattern. Excludes win over includes.
func WithExclude(patterns ...string) PackOption {
	return func(c *packConfig) { c.excludes = append(c.excludes, patterns...) }
}

// WithPackLimits sets resource limits for the run.
func WithPackLimits(l Limits) PackOption {
	return func(c *packConfig) { c.limits = l }
}

// WithLogger sets the progress logger. The default discards everything.
func WithLogger(log zerolog.Logger) PackOption {
	return func(c *packConfig) { c.log = log }
}

type unpackConfig struct {
	limits Limits
	log    zerolog.Logger
}

// UnpackOption customizes an Unpack run.
type UnpackOption func(*unpackConfig)

// WithUnpackLimits sets resource limits for the run.
func WithUnpackLimits(l Limits) UnpackOption {
	return func(c *unpackConfig) { c.limits = l }
}

// WithUnpackLogger sets the progress logger. The default discards
// everything.
func WithUnpackLogger(log zerolog.Logger) UnpackOption {
	return func(c *unpackConfig) { c.log = log }
}
