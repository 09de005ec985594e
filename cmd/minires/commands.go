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
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/minires/pkg/config"
	"github.com/walteh/minires/pkg/log"
	"github.com/walteh/minires/pkg/minify"
	"github.com/walteh/minires/pkg/operation"
)

// newMinifyCmd creates the minify command
func newMinifyCmd(o *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minify",
		Short: "Bundle and minify the resources of the managed region",
		Long: `Minify replaces the managed region with one stylesheet and one script tag.
It will:
1. Collect the stylesheets and scripts referenced inside the region
2. Write the rewritten page
3. Concatenate and minify the stylesheets into the css bundle
4. Concatenate and minify the scripts into the js bundle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, config.ModeMinify)
		},
	}

	addPageFlags(cmd, o)
	cmd.Flags().StringVar(&o.flags.MinifiedCSSFile, "css", "", "css bundle, relative to the output directory")
	cmd.Flags().StringVar(&o.flags.MinifiedJSFile, "js", "", "js bundle, relative to the output directory")
	cmd.Flags().BoolVar(&o.flags.Verbose, "verbose", false, "report minifier details")

	return cmd
}

// newRenameCmd creates the rename command
func newRenameCmd(o *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Copy the resources of the managed region to version-tagged names",
		Long: `Rename copies every stylesheet and script referenced inside the managed
region to a name carrying the version tag and points the page at the copies.
References to files that do not exist are left as they are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, config.ModeRename)
		},
	}

	addPageFlags(cmd, o)
	cmd.Flags().StringVar(&o.flags.VersionTag, "version-tag", "", "tag inserted before each file extension")
	cmd.Flags().StringSliceVar(&o.flags.Exclude, "exclude", nil, "glob patterns of references to leave alone")

	return cmd
}

// run executes one mode against the resolved configuration
func (o *rootOpts) run(cmd *cobra.Command, mode config.Mode) error {
	zlog := setupLogging(o.debug, o.stderr)
	ctx := zlog.With().Str("command", string(mode)).Logger().WithContext(cmd.Context())
	cmd.SetContext(ctx)

	cfg, err := o.resolve(cmd)
	if err != nil {
		return err
	}

	ui := log.New(cmd.OutOrStdout(), zlog)
	ctx = log.NewContext(ctx, ui)

	op, err := operation.New(mode, operation.Options{
		Config:   cfg,
		Files:    o.files,
		Minifier: minify.New(ui),
	})
	if err != nil {
		return errors.Errorf("creating %s operation: %w", mode, err)
	}

	ui.Header(string(mode))
	if err := operation.NewRunner(&zlog).Run(ctx, op); err != nil {
		return err
	}
	ui.Successf("%s finished, wrote %s", mode, cfg.OutputHeaderFile)

	return nil
}
