// Command slycat packs text files and directories into one markdown
// archive document, or slices such documents back into a file tree.
//
// Usage:
//
//	slycat [flags] <output> <path>...
//	slycat -s [flags] <output-folder> <document>...
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	slycat "github.com/logicossoftware/go-slycat"
)

func main() {
	var (
		force    bool
		slice    bool
		excludes []string
		includes []string
		verbose  bool
		quiet    bool
	)
	pflag.BoolVarP(&force, "force", "f", false, "overwrite the output file if it exists")
	pflag.BoolVarP(&slice, "slice", "s", false, "slice archive documents back into individual files")
	pflag.StringArrayVarP(&excludes, "exclude", "x", nil, "exclude files or folders matching the pattern (repeatable)")
	pflag.StringArrayVarP(&includes, "include", "i", nil, "include only files matching the pattern (repeatable)")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pflag.BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  slycat [flags] <output> <path>...\n  slycat -s [flags] <output-folder> <document>...\n\nFlags:\n%s", pflag.CommandLine.FlagUsages())
	}
	pflag.Parse()

	args := pflag.Args()
	if len(args) < 2 {
		pflag.Usage()
		os.Exit(1)
	}
	output, paths := args[0], args[1:]

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	if slice {
		sum, err := slycat.Unpack(paths, output, slycat.WithUnpackLogger(log))
		if err != nil {
			log.Error().Err(err).Msg("unpack failed")
			os.Exit(1)
		}
		log.Info().
			Int("records", sum.Records).
			Int("files", sum.Processed).
			Int("failed", sum.Unreadable).
			Str("output", output).
			Msg("slicing complete")
		return
	}

	opts := []slycat.PackOption{
		slycat.WithForce(force),
		slycat.WithExclude(excludes...),
		slycat.WithInclude(includes...),
		slycat.WithLogger(log),
	}
	sum, err := slycat.Pack(output, paths, opts...)
	if err != nil {
		log.Error().Err(err).Msg("pack failed")
		os.Exit(1)
	}
	ev := log.Info().
		Int("processed", sum.Processed).
		Str("output", output)
	if sum.SkippedNonText > 0 {
		ev = ev.Int("skipped_non_text", sum.SkippedNonText)
	}
	if sum.Excluded > 0 {
		ev = ev.Int("excluded", sum.Excluded)
	}
	if sum.Unreadable > 0 {
		ev = ev.Int("unreadable", sum.Unreadable)
	}
	ev.Msg("concatenation complete")
}
