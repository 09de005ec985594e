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

// Package scan walks a page line by line, tracking whether each line lies
// inside the managed region, and lets a LineHandler decide what each line
// turns into.
package scan

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// maxLineSize bounds a single line; minified inline scripts can be long.
const maxLineSize = 64 * 1024 * 1024

// 📍 State says whether the scanner is inside the managed region.
type State int

const (
	Outside State = iota
	InsideRegion
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case Outside:
		return "outside"
	case InsideRegion:
		return "inside"
	default:
		return "unknown"
	}
}

// 🎯 LineHandler decides, for one line and the current state, the next
// state and the lines to emit in its place.
type LineHandler interface {
	OnLine(ctx context.Context, line string, state State) (State, []string, error)
}

// LineHandlerFunc adapts a function to LineHandler.
type LineHandlerFunc func(ctx context.Context, line string, state State) (State, []string, error)

// OnLine calls f.
func (f LineHandlerFunc) OnLine(ctx context.Context, line string, state State) (State, []string, error) {
	return f(ctx, line, state)
}

// 🏃 Scan feeds every line of r to h and returns the emitted lines, each
// terminated by "\n". Input may use "\n", "\r\n" or "\r" line endings. A
// region left open at the end of input is not an error.
func Scan(ctx context.Context, r io.Reader, h LineHandler) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)

	var out strings.Builder
	state := Outside
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return "", errors.Errorf("scanning line %d: %w", lineNo, err)
		}

		next, emits, err := h.OnLine(ctx, scanner.Text(), state)
		if err != nil {
			return "", errors.Errorf("processing line %d: %w", lineNo, err)
		}
		state = next

		for _, e := range emits {
			out.WriteString(e)
			out.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Errorf("reading lines: %w", err)
	}

	return out.String(), nil
}

// ScanString is Scan over an in-memory page.
func ScanString(ctx context.Context, text string, h LineHandler) (string, error) {
	return Scan(ctx, strings.NewReader(text), h)
}

// scanLines is bufio.ScanLines that also accepts a lone "\r" as a line end.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// "\r" at the end of the buffer may be the first half of "\r\n".
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
