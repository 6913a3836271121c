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
	"bytes"
	"reflect"
	"testing"
)

func testMetaHeader() *DataSet {
	return NewDataSet(map[DataElementTag]interface{}{
		FileMetaInformationVersionTag: []byte{0x00, 0x01},
		MediaStorageSOPClassUIDTag:    []string{"1.2.840.10008.1.3.10"},
		MediaStorageSOPInstanceUIDTag: []string{"2.25.1234"},
		TransferSyntaxUIDTag:          []string{ExplicitVRLittleEndianUID},
	})
}

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tag  DataElementTag
		in   interface{}
		want interface{}
	}{
		{"single string", PatientIDTag, []string{"PAT001"}, []string{"PAT001"}},
		{"odd length string is padded and trimmed", PatientIDTag, []string{"PAT01"}, []string{"PAT01"}},
		{"multi valued string", ReferencedFileIDTag, []string{"SR", "DOC0001"}, []string{"SR", "DOC0001"}},
		{"unsigned shorts", RecordInUseFlagTag, []uint16{0xFFFF}, []uint16{0xFFFF}},
		{"unsigned longs", OffsetOfTheNextDirectoryRecordTag, []uint32{394}, []uint32{394}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			dew, err := NewDataElementWriter(&buf, testMetaHeader())
			if err != nil {
				t.Fatalf("NewDataElementWriter: %v", err)
			}

			element := NewDataSet(map[DataElementTag]interface{}{tc.tag: tc.in}).Element(tc.tag)
			if err := dew.WriteElement(element); err != nil {
				t.Fatalf("WriteElement: %v", err)
			}

			parsed, err := Parse(&buf)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got := parsed.Element(tc.tag)
			if got == nil {
				t.Fatalf("element %v missing after round trip", tc.tag)
			}
			if !reflect.DeepEqual(got.ValueField, tc.want) {
				t.Errorf("got %v, want %v", got.ValueField, tc.want)
			}
		})
	}
}

func TestSequenceRoundTripPreservesItemOffsets(t *testing.T) {
	seq := &Sequence{Items: []*DataSet{
		NewDataSet(map[DataElementTag]interface{}{PatientIDTag: []string{"PAT001"}}),
		NewDataSet(map[DataElementTag]interface{}{PatientIDTag: []string{"PAT002"}}),
	}}

	var buf bytes.Buffer
	dew, err := NewDataElementWriter(&buf, testMetaHeader())
	if err != nil {
		t.Fatalf("NewDataElementWriter: %v", err)
	}
	err = dew.WriteElement(&DataElement{
		Tag:         DirectoryRecordSequenceTag,
		VR:          SQVR,
		ValueField:  seq,
		ValueLength: UndefinedLength,
	})
	if err != nil {
		t.Fatalf("WriteElement: %v", err)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, ok := parsed.Element(DirectoryRecordSequenceTag).ValueField.(*Sequence)
	if !ok {
		t.Fatalf("expected *Sequence, got %T", parsed.Element(DirectoryRecordSequenceTag).ValueField)
	}
	if len(got.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got.Items))
	}
	if len(got.ItemOffsets) != 2 {
		t.Fatalf("got %d item offsets, want 2", len(got.ItemOffsets))
	}

	// the second item tag follows the first item's header, content and delimiter
	content, err := DataSetLength(seq.Items[0], ExplicitVRLittleEndianUID)
	if err != nil {
		t.Fatalf("DataSetLength: %v", err)
	}
	if want := got.ItemOffsets[0] + 8 + int64(content) + 8; got.ItemOffsets[1] != want {
		t.Errorf("got second item offset %d, want %d", got.ItemOffsets[1], want)
	}
}

func TestDataSetLength(t *testing.T) {
	ds := NewDataSet(map[DataElementTag]interface{}{
		PatientIDTag:       []string{"PAT001"}, // 8 header + 6 value
		RecordInUseFlagTag: []uint16{0xFFFF},   // 8 header + 2 value
		PatientNameTag:     []string{"DOE^JO"}, // 8 header + 6 value
	})

	got, err := DataSetLength(ds, ExplicitVRLittleEndianUID)
	if err != nil {
		t.Fatalf("DataSetLength: %v", err)
	}
	if got != 38 {
		t.Errorf("got %d, want 38", got)
	}
}

func TestDataSetLengthPadsOddValues(t *testing.T) {
	odd := NewDataSet(map[DataElementTag]interface{}{PatientIDTag: []string{"PAT01"}})
	even := NewDataSet(map[DataElementTag]interface{}{PatientIDTag: []string{"PAT001"}})

	oddLength, err := DataSetLength(odd, ExplicitVRLittleEndianUID)
	if err != nil {
		t.Fatalf("DataSetLength: %v", err)
	}
	evenLength, err := DataSetLength(even, ExplicitVRLittleEndianUID)
	if err != nil {
		t.Fatalf("DataSetLength: %v", err)
	}
	if oddLength != evenLength {
		t.Errorf("odd value length %d, want padded to %d", oddLength, evenLength)
	}
}

func TestNewDataElementWriterRejectsNonMetaHeader(t *testing.T) {
	header := NewDataSet(map[DataElementTag]interface{}{
		TransferSyntaxUIDTag: []string{ExplicitVRLittleEndianUID},
		PatientIDTag:         []string{"PAT001"},
	})

	var buf bytes.Buffer
	if _, err := NewDataElementWriter(&buf, header); err == nil {
		t.Errorf("expected error for header with non-meta elements")
	}
}

func TestMetaGroupLength(t *testing.T) {
	header := NewDataSet(map[DataElementTag]interface{}{
		TransferSyntaxUIDTag: []string{ExplicitVRLittleEndianUID},
	})

	got, err := MetaGroupLength(header)
	if err != nil {
		t.Fatalf("MetaGroupLength: %v", err)
	}
	// 12 byte group length element plus an 8 byte header and the padded 20 byte UID
	if want := uint32(12 + 8 + 20); got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}
