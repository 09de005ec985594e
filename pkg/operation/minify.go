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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/minires/pkg/config"
	"github.com/walteh/minires/pkg/errs"
	"github.com/walteh/minires/pkg/extract"
	"github.com/walteh/minires/pkg/log"
	"github.com/walteh/minires/pkg/minify"
	"github.com/walteh/minires/pkg/scan"
	"github.com/walteh/minires/pkg/storage"
)

// StylesheetLine is the tag that replaces the region for the css bundle.
func StylesheetLine(bundle string) string {
	return `<link rel="stylesheet" type="text/css" href="` + bundle + `">`
}

// ScriptLine is the tag that replaces the region for the js bundle.
func ScriptLine(bundle string) string {
	return `<SCRIPT LANGUAGE="JavaScript" SRC="` + bundle + `"></SCRIPT>`
}

// 📦 bundleHandler replaces the managed region with the two bundle tags and
// collects the references found inside it, in page order.
type bundleHandler struct {
	cfg *config.Options
	css []string
	js  []string
}

var _ scan.LineHandler = (*bundleHandler)(nil)

func (h *bundleHandler) OnLine(ctx context.Context, line string, state scan.State) (scan.State, []string, error) {
	if state == scan.Outside {
		if strings.Contains(line, h.cfg.ProcessStartTag) {
			return scan.InsideRegion, []string{
				StylesheetLine(h.cfg.MinifiedCSSFile),
				ScriptLine(h.cfg.MinifiedJSFile),
			}, nil
		}
		return scan.Outside, []string{line}, nil
	}

	if strings.Contains(line, h.cfg.ProcessEndTag) {
		return scan.Outside, nil, nil
	}

	if ref, ok := extract.Stylesheet.Find(line); ok {
		h.css = append(h.css, ref)
		h.detected(ctx, ref, "css")
	}
	if ref, ok := extract.Script.Find(line); ok {
		h.js = append(h.js, ref)
		h.detected(ctx, ref, "js")
	}

	return scan.InsideRegion, nil, nil
}

func (h *bundleHandler) detected(ctx context.Context, ref, kind string) {
	zerolog.Ctx(ctx).Debug().Str("resource", ref).Str("kind", kind).Msg("detected resource")
	log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{Path: ref, Kind: kind, Action: log.ActionDetected})
}

// 📦 minifyOperation bundles and minifies the region's resources
type minifyOperation struct {
	BaseOperation
	minifier minify.Minifier
}

// 🏃 Execute rewrites the page, then writes the css bundle and the js bundle.
func (op *minifyOperation) Execute(ctx context.Context) error {
	op.startPage(ctx)

	h := &bundleHandler{cfg: op.Config}
	if err := op.processPage(ctx, h); err != nil {
		return errors.Errorf("updating the page file: %w", err)
	}

	if err := op.generate(ctx, "css", op.Config.MinifiedCSSFile, h.css, func(ctx context.Context, text string) (string, error) {
		return op.minifier.CSS(ctx, text, minify.CSSOptions{WrapWidth: minify.DefaultWrapWidth})
	}); err != nil {
		return errors.Errorf("generating css bundle: %w", err)
	}

	if err := op.generate(ctx, "js", op.Config.MinifiedJSFile, h.js, func(ctx context.Context, text string) (string, error) {
		return op.minifier.JS(ctx, text, minify.JSOptions{
			WrapWidth:            minify.DefaultWrapWidth,
			Verbose:              op.Config.Verbose,
			PreserveSemicolons:   true,
			DisableOptimizations: true,
			Munge:                false,
		})
	}); err != nil {
		return errors.Errorf("generating js bundle: %w", err)
	}

	return nil
}

// 🗜️ generate writes the minified concatenation of refs to bundle inside
// the output directory. A stale bundle is removed first.
func (op *minifyOperation) generate(ctx context.Context, kind, bundle string, refs []string, compress func(context.Context, string) (string, error)) error {
	ui := log.FromContext(ctx)
	dest := filepath.Join(op.Config.OutputDir, bundle)

	exists, err := op.Files.Exists(ctx, dest)
	if err != nil {
		return err
	}
	if exists {
		ui.Infof("%s already exists, deleting...", storage.Abs(dest))
		if err := op.Files.Delete(ctx, dest); err != nil {
			return errors.Errorf("removing stale bundle: %w", err)
		}
		ui.LogFileOperation(ctx, log.FileOperation{Path: dest, Kind: kind, Action: log.ActionDeleted})
	}

	source, err := op.concat(ctx, refs)
	if err != nil {
		return err
	}

	out, err := compress(ctx, source)
	if err != nil {
		return errors.Errorf("minifying %s: %w", bundle, err)
	}

	if err := op.Files.Write(ctx, dest, out); err != nil {
		return errors.Errorf("writing bundle: %w", err)
	}

	ui.LogFileOperation(ctx, log.FileOperation{
		Path:   dest,
		Kind:   kind,
		Action: log.ActionWritten,
		Detail: "(" + plural(len(refs), "file") + ")",
	})
	return nil
}

// concat loads every referenced file from the input directory, each
// preceded by a marker comment naming it. A reference that is missing or
// names a directory is ErrNotFound.
func (op *minifyOperation) concat(ctx context.Context, refs []string) (string, error) {
	var sb strings.Builder
	for _, ref := range refs {
		path := filepath.Join(op.Config.InputDir, ref)

		// an empty reference resolves to the input directory itself
		ok, err := op.Files.IsFile(ctx, path)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errs.NotFound(storage.Abs(path))
		}

		content, err := op.Files.Read(ctx, path)
		if err != nil {
			return "", errors.Errorf("loading %s: %w", ref, err)
		}

		sb.WriteString("/* content: " + ref + " */\n")
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
