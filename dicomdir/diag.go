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

// Diagnostics is a sink for non-fatal conditions encountered while building or loading a
// directory, such as a mandatory attribute missing from a source data set. A Directory
// invokes its sink sequentially.
type Diagnostics interface {
	Report(message string, details map[string]interface{})
}

type nopDiagnostics struct{}

func (nopDiagnostics) Report(string, map[string]interface{}) {}
