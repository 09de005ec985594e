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

// Package storage performs the file reads, writes and copies a run needs.
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/walteh/minires/pkg/errs"
)

// 💾 FileManager handles all file system operations
type FileManager interface {
	Exists(ctx context.Context, path string) (bool, error)
	IsFile(ctx context.Context, path string) (bool, error)
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path string, content string) error
	Copy(ctx context.Context, src, dst string) error
	Delete(ctx context.Context, path string) error
}

// 🔧 Manager implements FileManager on top of an afero filesystem
type Manager struct {
	fs afero.Fs
}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a manager over fs
func New(fs afero.Fs) *Manager {
	return &Manager{fs: fs}
}

// NewOS creates a manager over the real filesystem
func NewOS() *Manager {
	return New(afero.NewOsFs())
}

// Fs returns the underlying filesystem
func (m *Manager) Fs() afero.Fs {
	return m.fs
}

func (m *Manager) Exists(ctx context.Context, path string) (bool, error) {
	ok, err := afero.Exists(m.fs, path)
	if err != nil {
		return false, errs.IO("checking "+path, err)
	}
	return ok, nil
}

// IsFile reports whether path exists and is not a directory.
func (m *Manager) IsFile(ctx context.Context, path string) (bool, error) {
	info, err := m.fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errs.IO("checking "+path, err)
	}
	return !info.IsDir(), nil
}

func (m *Manager) Read(ctx context.Context, path string) (string, error) {
	content, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return "", errs.IO("reading "+path, err)
	}
	return string(content), nil
}

// Write replaces path with content, creating parent directories. The data
// goes to a temporary file first and is renamed into place.
func (m *Manager) Write(ctx context.Context, path string, content string) error {
	if err := m.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errs.IO("creating parent directories of "+path, err)
	}

	tempPath := path + ".tmp"
	if err := afero.WriteFile(m.fs, tempPath, []byte(content), 0644); err != nil {
		return errs.IO("writing "+tempPath, err)
	}

	if err := m.fs.Rename(tempPath, path); err != nil {
		_ = m.fs.Remove(tempPath)
		return errs.IO("renaming "+tempPath+" to "+path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

// Copy copies src to dst, creating the parent directories of dst and
// overwriting it if present.
func (m *Manager) Copy(ctx context.Context, src, dst string) (err error) {
	in, err := m.fs.Open(src)
	if err != nil {
		return errs.IO("opening "+src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errs.IO("stating "+src, err)
	}

	if err := m.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errs.IO("creating parent directories of "+dst, err)
	}

	out, err := m.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errs.IO("creating "+dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errs.IO("closing "+dst, cerr)
		}
	}()

	n, err := io.Copy(out, in)
	if err != nil {
		return errs.IO("copying "+src+" to "+dst, err)
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Int64("bytes", n).Msg("copied file")
	return nil
}

func (m *Manager) Delete(ctx context.Context, path string) error {
	if err := m.fs.Remove(path); err != nil {
		return errs.IO("deleting "+path, err)
	}
	return nil
}

// 🔒 Abs returns the absolute form of path, or path itself if it cannot be
// made absolute.
func Abs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
