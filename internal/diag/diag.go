// Copyright 2026 The go-dicomdir Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag adapts a zap logger to the directory engine's diagnostics sink.
package diag

import (
	"sort"

	"go.uber.org/zap"
)

// Sink forwards non-fatal directory diagnostics to a zap logger at warn level
type Sink struct {
	log *zap.Logger
}

// New returns a Sink writing to log. A nil log yields a no-op sink.
func New(log *zap.Logger) *Sink {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sink{log: log}
}

// Report implements dicomdir.Diagnostics. Detail fields are emitted in key order so repeated
// conditions produce identical log lines.
func (s *Sink) Report(message string, details map[string]interface{}) {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, details[k]))
	}
	s.log.Warn(message, fields...)
}
