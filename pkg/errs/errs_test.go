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

package errs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     error
		contains string
	}{
		{
			name:     "configuration",
			err:      Configuration("Missing versionTag"),
			kind:     ErrConfiguration,
			contains: "Missing versionTag",
		},
		{
			name:     "not_found",
			err:      NotFound("/tmp/in/a.css"),
			kind:     ErrNotFound,
			contains: "/tmp/in/a.css",
		},
		{
			name:     "io",
			err:      IO("copying a.css", os.ErrPermission),
			kind:     ErrIO,
			contains: "copying a.css: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.kind), "error should be of the expected kind")
			assert.Contains(t, tt.err.Error(), tt.contains)

			wrapped := errors.Errorf("running: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.kind), "kind should survive wrapping")
		})
	}
}

func TestIONil(t *testing.T) {
	assert.NoError(t, IO("reading", nil))
}
