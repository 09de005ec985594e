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
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/minires/pkg/extract"
	"github.com/walteh/minires/pkg/log"
	"github.com/walteh/minires/pkg/scan"
)

// 🏷️ VersionedName inserts "_"+tag before the last "." of ref, or appends
// it when ref has no ".". The dot may sit in a directory name.
//
//	VersionedName("css/style.css", "1.2.3") == "css/style_1.2.3.css"
//	VersionedName("data", "1.2.3") == "data_1.2.3"
//	VersionedName("lib/v1.0/app", "b9") == "lib/v1_b9.0/app"
func VersionedName(ref, tag string) string {
	dot := strings.LastIndex(ref, ".")
	if dot == -1 {
		return ref + "_" + tag
	}
	return ref[:dot] + "_" + tag + ref[dot:]
}

// 🔄 renameHandler drops the region markers and rewrites each reference
// inside the region to its version-tagged copy.
type renameHandler struct {
	op *renameOperation
}

var _ scan.LineHandler = (*renameHandler)(nil)

func (h *renameHandler) OnLine(ctx context.Context, line string, state scan.State) (scan.State, []string, error) {
	cfg := h.op.Config
	if state == scan.Outside {
		if strings.Contains(line, cfg.ProcessStartTag) {
			return scan.InsideRegion, nil, nil
		}
		return scan.Outside, []string{line}, nil
	}

	if strings.Contains(line, cfg.ProcessEndTag) {
		return scan.Outside, nil, nil
	}

	out, err := h.op.rewrite(ctx, line, extract.Stylesheet, "css")
	if err != nil {
		return state, nil, err
	}
	out, err = h.op.rewrite(ctx, out, extract.Script, "js")
	if err != nil {
		return state, nil, err
	}

	return scan.InsideRegion, []string{out}, nil
}

// 🔄 renameOperation copies the region's resources to version-tagged names
type renameOperation struct {
	BaseOperation
}

// 🏃 Execute rewrites the page, copying resources as references are met.
func (op *renameOperation) Execute(ctx context.Context) error {
	op.startPage(ctx)

	if err := op.processPage(ctx, &renameHandler{op: op}); err != nil {
		return errors.Errorf("updating the page file: %w", err)
	}
	return nil
}

// rewrite copies the resource m finds in line and points line at the copy.
// References that are missing on disk or excluded leave line untouched.
func (op *renameOperation) rewrite(ctx context.Context, line string, m extract.Marker, kind string) (string, error) {
	logger := zerolog.Ctx(ctx)
	ui := log.FromContext(ctx)

	ref, ok := m.Find(line)
	if !ok {
		return line, nil
	}
	if ref == "" {
		logger.Debug().Str("line", line).Msg("empty resource reference")
		return line, nil
	}

	if op.Config.Excluded(ref) {
		ui.LogFileOperation(ctx, log.FileOperation{Path: ref, Kind: kind, Action: log.ActionSkipped, Detail: "(excluded)"})
		return line, nil
	}

	src := filepath.Join(op.Config.InputDir, ref)
	exists, err := op.Files.Exists(ctx, src)
	if err != nil {
		return "", err
	}
	if !exists {
		logger.Debug().Str("resource", ref).Str("path", src).Msg("resource does not exist, leaving reference as is")
		ui.LogFileOperation(ctx, log.FileOperation{Path: ref, Kind: kind, Action: log.ActionSkipped, Detail: "(missing)"})
		return line, nil
	}

	newName := VersionedName(ref, op.Config.VersionTag)
	if err := op.Files.Copy(ctx, src, filepath.Join(op.Config.OutputDir, newName)); err != nil {
		return "", errors.Errorf("copying %s: %w", ref, err)
	}

	logger.Info().Str("from", ref).Str("to", newName).Msg("copied resource")
	ui.LogFileOperation(ctx, log.FileOperation{Path: ref, Kind: kind, Action: log.ActionCopied, Detail: newName})

	return strings.ReplaceAll(line, ref, newName), nil
}
