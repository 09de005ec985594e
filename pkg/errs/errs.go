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

// Package errs holds the kinds of failure a run can end with.
package errs

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrConfiguration is returned when a required option is missing.
	ErrConfiguration = errors.Base("configuration error")

	// ErrNotFound is returned when the input page or a bundled resource does not exist.
	ErrNotFound = errors.Base("not found")

	// ErrIO is returned when reading, writing, copying or deleting a file fails.
	ErrIO = errors.Base("io error")
)

// Configuration returns an ErrConfiguration carrying msg.
func Configuration(msg string) error {
	return errors.Errorf("%w: %s", ErrConfiguration, msg)
}

// NotFound returns an ErrNotFound naming the missing path.
func NotFound(path string) error {
	return errors.Errorf("%w: the file %s can not be found", ErrNotFound, path)
}

// IO wraps err as an ErrIO, prefixed with the failing operation.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Errorf("%w: %s: %s", ErrIO, op, err.Error())
}
