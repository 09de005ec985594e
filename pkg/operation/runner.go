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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/minires/pkg/log"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	return &OperationRunner{
		logger: logger,
	}
}

// 🏃 Run executes an operation and reports how long it took. The runner's
// logger is attached to ctx unless ctx already carries one.
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	if zerolog.Ctx(ctx).GetLevel() == zerolog.Disabled && r.logger != nil {
		ctx = r.logger.WithContext(ctx)
	}

	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}

	start := time.Now()
	err := op.Execute(ctx)
	files := log.FromContext(ctx).EndPage(ctx)

	event := zerolog.Ctx(ctx).Info()
	if err != nil {
		event = zerolog.Ctx(ctx).Error().Err(err)
	}
	event.Dur("took", time.Since(start)).Int("files", len(files)).Msg("operation finished")

	if err != nil {
		return errors.Errorf("executing operation: %w", err)
	}
	return nil
}
