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

package operation_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
	"pgregory.net/rapid"

	"github.com/walteh/minires/pkg/config"
	"github.com/walteh/minires/pkg/errs"
	"github.com/walteh/minires/pkg/log"
	"github.com/walteh/minires/pkg/minify"
	"github.com/walteh/minires/pkg/operation"
	"github.com/walteh/minires/pkg/storage"
)

const (
	startTag = "<!-- minires:start -->"
	endTag   = "<!-- minires:end -->"
)

const page = `<html>
<head>
<!-- minires:start -->
<link rel="stylesheet" href="css/a.css">
<LINK REL="stylesheet" HREF="css/b.css">
<script src="js/app.js"></script>
<!-- minires:end -->
</head>
</html>
`

// 🔧 MockMinifier is a mock implementation of the minify.Minifier interface
type MockMinifier struct {
	mock.Mock
}

func (m *MockMinifier) CSS(ctx context.Context, text string, opts minify.CSSOptions) (string, error) {
	result := m.Called(ctx, text, opts)
	return result.String(0), result.Error(1)
}

func (m *MockMinifier) JS(ctx context.Context, text string, opts minify.JSOptions) (string, error) {
	result := m.Called(ctx, text, opts)
	return result.String(0), result.Error(1)
}

// 🧪 createTestEnv creates an in-memory filesystem holding files and a
// context carrying test loggers
func createTestEnv(t testing.TB, files map[string]string) (context.Context, *storage.Manager) {
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	ctx := zlog.WithContext(context.Background())
	ctx = log.NewContext(ctx, log.New(io.Discard, zlog))

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644), "writing %s", path)
	}
	return ctx, storage.New(fs)
}

func testOptions() *config.Options {
	return &config.Options{
		ProcessStartTag:  startTag,
		ProcessEndTag:    endTag,
		InputDir:         "/web",
		OutputDir:        "/dist",
		InputHeaderFile:  "/web/header.html",
		OutputHeaderFile: "/dist/header.html",
		MinifiedCSSFile:  "all.css",
		MinifiedJSFile:   "all.js",
		VersionTag:       "1.2.3",
	}
}

func sourceFiles() map[string]string {
	return map[string]string{
		"/web/header.html": page,
		"/web/css/a.css":   "a { color: red; }",
		"/web/css/b.css":   "b { margin: 0; }",
		"/web/js/app.js":   "var app = 1;",
	}
}

func readFile(t *testing.T, files *storage.Manager, path string) string {
	content, err := afero.ReadFile(files.Fs(), path)
	require.NoError(t, err, "reading %s", path)
	return string(content)
}

func fileExists(t *testing.T, files *storage.Manager, path string) bool {
	ok, err := afero.Exists(files.Fs(), path)
	require.NoError(t, err)
	return ok
}

func TestNewValidatesBeforeIO(t *testing.T) {
	tests := []struct {
		name        string
		mode        config.Mode
		opts        operation.Options
		errContains string
		isConfig    bool
	}{
		{
			name:        "missing_config",
			mode:        config.ModeRename,
			opts:        operation.Options{},
			errContains: "config is required",
			isConfig:    true,
		},
		{
			name: "missing_version_tag",
			mode: config.ModeRename,
			opts: operation.Options{Config: func() *config.Options {
				o := testOptions()
				o.VersionTag = ""
				return o
			}()},
			errContains: "Missing versionTag",
			isConfig:    true,
		},
		{
			name: "missing_end_tag",
			mode: config.ModeMinify,
			opts: operation.Options{Config: func() *config.Options {
				o := testOptions()
				o.ProcessEndTag = ""
				return o
			}()},
			errContains: "Missing processEndTag",
			isConfig:    true,
		},
		{
			name:        "missing_file_manager",
			mode:        config.ModeRename,
			opts:        operation.Options{Config: testOptions()},
			errContains: "file manager is required",
		},
		{
			name:        "minify_needs_minifier",
			mode:        config.ModeMinify,
			opts:        operation.Options{Config: testOptions(), Files: storage.New(afero.NewMemMapFs())},
			errContains: "minifier is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := operation.New(tt.mode, tt.opts)
			require.Error(t, err)
			assert.Nil(t, op)
			assert.Contains(t, err.Error(), tt.errContains)
			assert.Equal(t, tt.isConfig, errors.Is(err, errs.ErrConfiguration))
		})
	}
}

func TestMissingInputPage(t *testing.T) {
	for _, mode := range []config.Mode{config.ModeMinify, config.ModeRename} {
		t.Run(string(mode), func(t *testing.T) {
			ctx, files := createTestEnv(t, nil)

			op, err := operation.New(mode, operation.Options{
				Config:   testOptions(),
				Files:    files,
				Minifier: &MockMinifier{},
			})
			require.NoError(t, err)

			err = op.Execute(ctx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrNotFound), "should be a not found error")
			assert.Contains(t, err.Error(), "/web/header.html")
			assert.False(t, fileExists(t, files, "/dist/header.html"))
		})
	}
}

func TestPageWithoutRegionIsUnchanged(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOf(rapid.StringMatching(`[a-z <>="/.]{0,30}`)).Draw(rt, "lines")
		sep := rapid.SampledFrom([]string{"\n", "\r\n"}).Draw(rt, "sep")
		mode := rapid.SampledFrom([]config.Mode{config.ModeMinify, config.ModeRename}).Draw(rt, "mode")

		var input, want strings.Builder
		for _, l := range lines {
			input.WriteString(l + sep)
			want.WriteString(l + "\n")
		}

		ctx, files := createTestEnv(t, map[string]string{"/web/header.html": input.String()})
		reporter := log.New(io.Discard, zerolog.Nop())
		op, err := operation.New(mode, operation.Options{
			Config:   testOptions(),
			Files:    files,
			Minifier: minify.New(reporter),
		})
		if err != nil {
			rt.Fatalf("creating operation: %v", err)
		}
		if err := op.Execute(ctx); err != nil {
			rt.Fatalf("executing: %v", err)
		}

		got, err := afero.ReadFile(files.Fs(), "/dist/header.html")
		if err != nil {
			rt.Fatalf("reading output: %v", err)
		}
		if string(got) != want.String() {
			rt.Fatalf("got %q, want %q", got, want.String())
		}
	})
}

func TestRegionLineCounts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "n")

		var input strings.Builder
		input.WriteString("before\n" + startTag + "\n")
		for i := 0; i < n; i++ {
			input.WriteString(`<script src="js/missing.js"></script>` + "\n")
		}
		input.WriteString(endTag + "\nafter\n")

		for _, tc := range []struct {
			mode   config.Mode
			region int
		}{
			{config.ModeRename, n},
			{config.ModeMinify, 2},
		} {
			ctx, files := createTestEnv(t, map[string]string{"/web/header.html": input.String()})
			m := &MockMinifier{}
			m.On("CSS", mock.Anything, mock.Anything, mock.Anything).Return("", nil).Maybe()
			m.On("JS", mock.Anything, mock.Anything, mock.Anything).Return("", nil).Maybe()

			op, err := operation.New(tc.mode, operation.Options{Config: testOptions(), Files: files, Minifier: m})
			if err != nil {
				rt.Fatalf("creating operation: %v", err)
			}
			// missing js files make the minify run fail after the page is written
			err = op.Execute(ctx)
			wantNotFound := tc.mode == config.ModeMinify && n > 0
			switch {
			case wantNotFound && !errors.Is(err, errs.ErrNotFound):
				rt.Fatalf("%s: want a not found error, got %v", tc.mode, err)
			case !wantNotFound && err != nil:
				rt.Fatalf("%s: unexpected error: %v", tc.mode, err)
			}

			got, err := afero.ReadFile(files.Fs(), "/dist/header.html")
			if err != nil {
				rt.Fatalf("reading output: %v", err)
			}
			lines := strings.Split(strings.TrimSuffix(string(got), "\n"), "\n")
			if len(lines) != tc.region+2 {
				rt.Fatalf("%s: got %d lines, want %d: %q", tc.mode, len(lines), tc.region+2, got)
			}
		}
	})
}
