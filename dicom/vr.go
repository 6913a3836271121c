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

package dicom

import (
	"fmt"
)

// vrKind groups value representations that share an encoding
type vrKind int

const (
	// textKind is for value fields interpreted as simple text with space padding
	textKind vrKind = iota

	// numberBinaryKind is for value fields parsed as binary numbers
	numberBinaryKind

	// bulkDataKind groups opaque byte payloads
	bulkDataKind

	// uniqueIdentifierKind is for VR: UI. It has null padding
	uniqueIdentifierKind

	// sequenceKind is for VR: SQ
	sequenceKind

	// tagKind is for attribute tags. Distinct from numberBinaryKind due to the group/element
	// pair ordering
	tagKind
)

// UndefinedLength as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const UndefinedLength = 0xFFFFFFFF

// VR models the DICOM Value Representations (VR)
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
type VR struct {
	// Name represents the 2-character VR Code
	Name string

	kind vrKind
}

func (vr *VR) String() string {
	return vr.Name
}

var vrLookupMap = map[string]*VR{}

func newVR(name string, kind vrKind) *VR {
	vr := &VR{name, kind}
	vrLookupMap[vr.Name] = vr
	return vr
}

func lookupVRByName(name string) (*VR, error) {
	vr, ok := vrLookupMap[name]
	if !ok {
		return nil, fmt.Errorf("unknown vr name: %v", name)
	}
	return vr, nil
}

// VR list obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var (
	// textual VRs
	CSVR = newVR("CS", textKind)
	SHVR = newVR("SH", textKind)
	LOVR = newVR("LO", textKind)
	STVR = newVR("ST", textKind)
	LTVR = newVR("LT", textKind)
	ASVR = newVR("AS", textKind)

	// person name
	PNVR = newVR("PN", textKind)

	// application entity
	AEVR = newVR("AE", textKind)

	// dates/time VRs
	DAVR = newVR("DA", textKind)
	TMVR = newVR("TM", textKind)
	DTVR = newVR("DT", textKind)

	// textual numbers
	ISVR = newVR("IS", textKind)
	DSVR = newVR("DS", textKind)

	// binary numbers
	SSVR = newVR("SS", numberBinaryKind)
	USVR = newVR("US", numberBinaryKind)
	SLVR = newVR("SL", numberBinaryKind)
	ULVR = newVR("UL", numberBinaryKind)
	FLVR = newVR("FL", numberBinaryKind)
	FDVR = newVR("FD", numberBinaryKind)

	// opaque byte payloads
	OBVR = newVR("OB", bulkDataKind)
	ODVR = newVR("OD", bulkDataKind)
	OLVR = newVR("OL", bulkDataKind)
	OWVR = newVR("OW", bulkDataKind)
	OFVR = newVR("OF", bulkDataKind)

	// unlimited char
	UCVR = newVR("UC", bulkDataKind)

	// unknown
	UNVR = newVR("UN", bulkDataKind)

	// URL
	URVR = newVR("UR", bulkDataKind)

	// unlimited text
	UTVR = newVR("UT", bulkDataKind)

	// attribute tag
	ATVR = newVR("AT", tagKind)

	// unique identifier
	UIVR = newVR("UI", uniqueIdentifierKind)

	// sequence
	SQVR = newVR("SQ", sequenceKind)
)
