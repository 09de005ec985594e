// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/minires/pkg/config"
	"github.com/walteh/minires/pkg/storage"
)

// rootOpts holds the flag values shared by every command
type rootOpts struct {
	configFile string
	debug      bool

	// flags mirrors the config file; a flag only wins when given explicitly
	flags config.Options

	files  storage.FileManager
	stderr io.Writer
}

// newRootCmd builds the command tree working on the real filesystem
func newRootCmd() *cobra.Command {
	return buildRootCmd(&rootOpts{
		files:  storage.NewOS(),
		stderr: os.Stderr,
	})
}

func buildRootCmd(o *rootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minires",
		Short: "Bundle, minify or version the resources referenced by an html page",
		Long: `minires rewrites the region of an html page between a start and an end
marker. In minify mode the stylesheets and scripts referenced there are
concatenated into one minified bundle each; in rename mode every referenced
file is copied to a name carrying a version tag and the page is pointed at
the copies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addRootFlags(rootCmd, o)

	rootCmd.AddCommand(
		newMinifyCmd(o),
		newRenameCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	cmd.PersistentFlags().StringVarP(&o.configFile, "config", "c", "", "config file path (.yaml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")
}

// addPageFlags adds the options every mode needs
func addPageFlags(cmd *cobra.Command, o *rootOpts) {
	f := cmd.Flags()
	f.StringVar(&o.flags.ProcessStartTag, "start-tag", "", "line marker that opens the managed region")
	f.StringVar(&o.flags.ProcessEndTag, "end-tag", "", "line marker that closes the managed region")
	f.StringVar(&o.flags.InputDir, "input-dir", "", "directory references are resolved against")
	f.StringVar(&o.flags.OutputDir, "output-dir", "", "directory bundles and copies are written to")
	f.StringVar(&o.flags.InputHeaderFile, "input", "", "page to read")
	f.StringVar(&o.flags.OutputHeaderFile, "output", "", "page to write")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

// resolve loads the config file, if any, and applies the flags given on the
// command line on top of it
func (o *rootOpts) resolve(cmd *cobra.Command) (*config.Options, error) {
	cfg := &config.Options{}
	if o.configFile != "" {
		loaded, err := config.Load(cmd.Context(), o.files, o.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	overrides := map[string]func(){
		"start-tag":   func() { cfg.ProcessStartTag = o.flags.ProcessStartTag },
		"end-tag":     func() { cfg.ProcessEndTag = o.flags.ProcessEndTag },
		"input-dir":   func() { cfg.InputDir = o.flags.InputDir },
		"output-dir":  func() { cfg.OutputDir = o.flags.OutputDir },
		"input":       func() { cfg.InputHeaderFile = o.flags.InputHeaderFile },
		"output":      func() { cfg.OutputHeaderFile = o.flags.OutputHeaderFile },
		"css":         func() { cfg.MinifiedCSSFile = o.flags.MinifiedCSSFile },
		"js":          func() { cfg.MinifiedJSFile = o.flags.MinifiedJSFile },
		"verbose":     func() { cfg.Verbose = o.flags.Verbose },
		"version-tag": func() { cfg.VersionTag = o.flags.VersionTag },
		"exclude":     func() { cfg.Exclude = o.flags.Exclude },
	}
	for name, apply := range overrides {
		if cmd.Flags().Lookup(name) != nil && cmd.Flags().Changed(name) {
			apply()
		}
	}

	return cfg, nil
}
