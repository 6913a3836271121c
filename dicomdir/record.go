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
	"github.com/dcmkit/go-dicomdir/dicom"
)

// recordInUse is the RecordInUseFlag value of an active directory record
const recordInUse = uint16(0xFFFF)

// Record is one directory record: a node of the Patient/Study/Series/instance tree. A
// Record exclusively owns its Child subtree and the tail of its Next chain; there are no
// parent or previous pointers, callers recompute those by traversal.
type Record struct {
	// Type is the directory record type name the Record was created from, e.g. "PATIENT"
	Type string

	// Attributes holds the record's data elements: the mandatory attributes of its type,
	// the copied character set attribute and the bookkeeping elements (record type, in-use
	// flag and the two linkage offsets)
	Attributes *dicom.DataSet

	// Next is the next record at the same level of the tree, or nil
	Next *Record

	// Child is the first record one level below, or nil
	Child *Record

	// offset is the absolute byte position of the record's item tag within the serialized
	// file. It is assigned by the layout pass of a save and is only valid for the save that
	// computed it; 0 means not yet computed.
	offset uint32
}

// newRecord creates a Record of the given type, copying the type's mandatory attributes and
// the character set attribute from source. A missing source attribute is skipped and
// reported to diag. recordType and source are required.
func newRecord(recordType string, source *dicom.DataSet, diag Diagnostics) (*Record, error) {
	if recordType == "" {
		return nil, &ValidationError{Field: "record type", Reason: "must not be empty"}
	}
	if source == nil {
		return nil, &ValidationError{Field: "source data set", Reason: "must not be nil"}
	}

	rec := &Record{
		Type: recordType,
		Attributes: dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
			dicom.DirectoryRecordTypeTag:                         []string{recordType},
			dicom.RecordInUseFlagTag:                             []uint16{recordInUse},
			dicom.OffsetOfTheNextDirectoryRecordTag:              []uint32{0},
			dicom.OffsetOfReferencedLowerLevelDirectoryEntityTag: []uint32{0},
		}),
	}

	if charset := source.Element(dicom.SpecificCharacterSetTag); charset != nil {
		rec.copyAttribute(charset)
	}

	for _, tag := range MandatoryTags(recordType) {
		element := source.Element(tag)
		if element == nil {
			diag.Report("attribute missing from source data set", map[string]interface{}{
				"tag":        tag.String(),
				"recordType": recordType,
			})
			continue
		}
		rec.copyAttribute(element)
	}

	return rec, nil
}

// Offset reports the byte offset assigned to the record by the most recent save. It is not
// preserved across tree mutations.
func (r *Record) Offset() uint32 {
	return r.offset
}

// StringValue returns the first value of the textual attribute stored under tag, or ""
// when absent.
func (r *Record) StringValue(tag dicom.DataElementTag) string {
	v, _ := r.Attributes.StringValue(tag)
	return v
}

func (r *Record) copyAttribute(element *dicom.DataElement) {
	copied := *element
	r.Attributes.Elements[element.Tag] = &copied
}

func (r *Record) setString(tag dicom.DataElementTag, values ...string) {
	r.Attributes.Elements[tag] = &dicom.DataElement{
		Tag:        tag,
		VR:         tag.DictionaryVR(),
		ValueField: values,
	}
}

func (r *Record) setUInt32(tag dicom.DataElementTag, v uint32) {
	r.Attributes.Elements[tag] = &dicom.DataElement{
		Tag:         tag,
		VR:          tag.DictionaryVR(),
		ValueField:  []uint32{v},
		ValueLength: 4,
	}
}
