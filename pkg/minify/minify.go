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

// Package minify compresses concatenated stylesheets and scripts.
package minify

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/parse/v2"
	parsecss "github.com/tdewolff/parse/v2/css"
)

const (
	cssMediaType = "text/css"
	jsMediaType  = "application/javascript"

	// DefaultWrapWidth is the column after which output lines are broken.
	DefaultWrapWidth = 8000
)

// 🔧 CSSOptions controls stylesheet minification
type CSSOptions struct {
	WrapWidth int // break after a rule once a line is this long; 0 disables
}

// 🔧 JSOptions controls script minification
type JSOptions struct {
	WrapWidth            int  // scripts stay on one line; longer output is reported when Verbose
	Verbose              bool // report sizes and failure details
	PreserveSemicolons   bool // keep the statement terminator at the end of the output
	DisableOptimizations bool // accepted; the minifier has no separate optimization pass
	Munge                bool // allow renaming of local identifiers
}

// 📢 Reporter receives minifier diagnostics. Nothing reported aborts a run.
type Reporter interface {
	Warning(msg string)
	Error(msg string)
}

// 🎯 Minifier compresses source text.
type Minifier interface {
	CSS(ctx context.Context, text string, opts CSSOptions) (string, error)
	JS(ctx context.Context, text string, opts JSOptions) (string, error)
}

// Service is the Minifier backed by tdewolff/minify.
type Service struct {
	reporter Reporter
}

var _ Minifier = (*Service)(nil)

// 🏭 New creates a minifier that sends diagnostics to reporter.
func New(reporter Reporter) *Service {
	return &Service{reporter: reporter}
}

// CSS minifies a stylesheet. On failure the problem is reported and text is
// returned as is.
func (s *Service) CSS(ctx context.Context, text string, opts CSSOptions) (string, error) {
	m := tdminify.New()
	m.Add(cssMediaType, &css.Minifier{})

	out, err := m.String(cssMediaType, text)
	if err != nil {
		s.reporter.Error("css: " + err.Error())
		zerolog.Ctx(ctx).Error().Err(err).Msg("minifying css failed, keeping source")
		return text, nil
	}

	out = wrapCSS(ctx, out, opts.WrapWidth)

	zerolog.Ctx(ctx).Debug().
		Int("before", len(text)).
		Int("after", len(out)).
		Msg("minified css")

	return out, nil
}

// JS minifies a script. On failure the problem is reported and text is
// returned as is.
func (s *Service) JS(ctx context.Context, text string, opts JSOptions) (string, error) {
	logger := zerolog.Ctx(ctx)

	m := tdminify.New()
	m.Add(jsMediaType, &js.Minifier{KeepVarNames: !opts.Munge})

	out, err := m.String(jsMediaType, text)
	if err != nil {
		if opts.Verbose {
			s.reporter.Error("js: " + err.Error())
		} else {
			s.reporter.Error("js: minification failed, bundle left uncompressed")
		}
		logger.Error().Err(err).Msg("minifying js failed, keeping source")
		return text, nil
	}

	if opts.PreserveSemicolons && out != "" && !strings.HasSuffix(out, ";") && !strings.HasSuffix(out, "}") {
		out += ";"
	}

	if opts.Verbose && opts.WrapWidth > 0 && len(out) > opts.WrapWidth {
		s.reporter.Warning("js: output is " + strconv.Itoa(len(out)) + " bytes on one line, scripts are not wrapped at " + strconv.Itoa(opts.WrapWidth) + " columns")
	}

	event := logger.Debug()
	if opts.Verbose {
		event = logger.Info()
	}
	event.Int("before", len(text)).
		Int("after", len(out)).
		Bool("munge", opts.Munge).
		Msg("minified js")

	return out, nil
}

// wrapCSS breaks css after a closing brace once the current line reaches
// width. Braces inside strings and comments are never split.
func wrapCSS(ctx context.Context, text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/width + 1)

	l := parsecss.NewLexer(parse.NewInputString(text))
	col := 0
	for {
		tt, data := l.Next()
		if tt == parsecss.ErrorToken {
			if err := l.Err(); err != nil && err != io.EOF {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("lexing css for wrapping, leaving unwrapped")
				return text
			}
			break
		}

		b.Write(data)
		col += len(data)
		if tt == parsecss.RightBraceToken && col >= width {
			b.WriteByte('\n')
			col = 0
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
