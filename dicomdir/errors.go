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

package dicomdir

import "fmt"

// ValidationError reports a directly supplied value that violates a directory constraint,
// such as an empty file-set ID. It is returned synchronously at the point of violation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dicomdir: invalid %s: %s", e.Field, e.Reason)
}

// StructuralError reports a directory tree that cannot be serialized, such as a save with
// no registered records or a corrupted entry encountered while flattening. A save that
// fails with a StructuralError has written no bytes.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("dicomdir: %s", e.Reason)
}
