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

import (
	"math/big"

	"github.com/google/uuid"
)

// MediaStorageDirectoryStorageUID is the SOP class of the Media Storage Directory itself
const MediaStorageDirectoryStorageUID = "1.2.840.10008.1.3.10"

const (
	implementationClassUID    = "2.25.304871921624517687612179489703496721951"
	implementationVersionName = "GO_DCMDIR_10"
)

// NewUID returns a DICOM unique identifier derived from a random UUID under the 2.25 root
// defined in PS3.5 B.2.
func NewUID() string {
	u := uuid.New()
	var n big.Int
	n.SetBytes(u[:])
	return "2.25." + n.String()
}
