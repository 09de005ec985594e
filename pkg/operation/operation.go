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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/minires/pkg/config"
	"github.com/walteh/minires/pkg/errs"
	"github.com/walteh/minires/pkg/log"
	"github.com/walteh/minires/pkg/minify"
	"github.com/walteh/minires/pkg/scan"
	"github.com/walteh/minires/pkg/storage"
)

// 🎯 Operation is one run over one page
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains what an operation needs
type Options struct {
	// Config is the run configuration
	Config *config.Options
	// Files performs all file system access
	Files storage.FileManager
	// Minifier compresses bundles; only minify mode needs it
	Minifier minify.Minifier
}

// 🏭 New validates opts for mode and creates the matching operation. Nothing
// is read or written before validation succeeds.
func New(mode config.Mode, opts Options) (Operation, error) {
	if opts.Config == nil {
		return nil, errs.Configuration("config is required")
	}
	if err := opts.Config.Validate(mode); err != nil {
		return nil, err
	}
	if opts.Files == nil {
		return nil, errors.New("file manager is required")
	}

	base := BaseOperation{Config: opts.Config, Files: opts.Files, mode: mode}
	switch mode {
	case config.ModeMinify:
		if opts.Minifier == nil {
			return nil, errors.New("minifier is required")
		}
		return &minifyOperation{BaseOperation: base, minifier: opts.Minifier}, nil
	default:
		return &renameOperation{BaseOperation: base}, nil
	}
}

// 📦 BaseOperation holds what both modes share: reading the page, scanning
// it and writing the result
type BaseOperation struct {
	Config *config.Options
	Files  storage.FileManager
	mode   config.Mode
}

// 📄 processPage scans the input page with h and writes the output page.
func (op *BaseOperation) processPage(ctx context.Context, h scan.LineHandler) error {
	logger := zerolog.Ctx(ctx)
	input := op.Config.InputHeaderFile
	output := op.Config.OutputHeaderFile

	ok, err := op.Files.Exists(ctx, input)
	if err != nil {
		return errors.Errorf("checking input page: %w", err)
	}
	if !ok {
		return errs.NotFound(storage.Abs(input))
	}

	text, err := op.Files.Read(ctx, input)
	if err != nil {
		return errors.Errorf("reading input page: %w", err)
	}

	logger.Debug().Str("input", input).Int("bytes", len(text)).Msg("scanning page")

	page, err := scan.ScanString(ctx, text, h)
	if err != nil {
		return errors.Errorf("scanning %s: %w", input, err)
	}

	if err := op.Files.Write(ctx, output, page); err != nil {
		return errors.Errorf("writing output page: %w", err)
	}

	ui := log.FromContext(ctx)
	ui.LogFileOperation(ctx, log.FileOperation{Path: output, Kind: "page", Action: log.ActionWritten})
	ui.Infof("Input file: %s", input)
	ui.Infof("Output file: %s", output)

	return nil
}

// startPage announces the page about to be processed
func (op *BaseOperation) startPage(ctx context.Context) {
	log.FromContext(ctx).StartPage(ctx, log.PageOperation{
		Mode:   string(op.mode),
		Input:  op.Config.InputHeaderFile,
		Output: op.Config.OutputHeaderFile,
	})
}
