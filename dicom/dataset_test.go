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
	"reflect"
	"testing"
)

func TestDataElementTag(t *testing.T) {
	tests := []struct {
		name        string
		tag         DataElementTag
		wantGroup   uint16
		wantElement uint16
		wantString  string
	}{
		{"meta element", TransferSyntaxUIDTag, 0x0002, 0x0010, "(0002,0010)"},
		{"directory element", DirectoryRecordSequenceTag, 0x0004, 0x1220, "(0004,1220)"},
		{"item tag", ItemTag, 0xFFFE, 0xE000, "(FFFE,E000)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.GroupNumber(); got != tc.wantGroup {
				t.Errorf("GroupNumber: got 0x%04X, want 0x%04X", got, tc.wantGroup)
			}
			if got := tc.tag.ElementNumber(); got != tc.wantElement {
				t.Errorf("ElementNumber: got 0x%04X, want 0x%04X", got, tc.wantElement)
			}
			if got := tc.tag.String(); got != tc.wantString {
				t.Errorf("String: got %q, want %q", got, tc.wantString)
			}
		})
	}
}

func TestIsMetadataElement(t *testing.T) {
	if !TransferSyntaxUIDTag.IsMetadataElement() {
		t.Errorf("expected group 0002 tag to be a metadata element")
	}
	if FileSetIDTag.IsMetadataElement() {
		t.Errorf("expected group 0004 tag to not be a metadata element")
	}
}

func TestDictionaryVR(t *testing.T) {
	tests := []struct {
		name string
		tag  DataElementTag
		want *VR
	}{
		{"dictionary entry", PatientNameTag, PNVR},
		{"group length", DataElementTag(0x00080000), ULVR},
		{"private creator", DataElementTag(0x00090010), LOVR},
		{"unknown tag", DataElementTag(0x00091001), UNVR},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tag.DictionaryVR(); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewDataSet(t *testing.T) {
	ds := NewDataSet(map[DataElementTag]interface{}{
		PatientIDTag:       []string{"PAT001"},
		RecordInUseFlagTag: []uint16{0xFFFF},
	})

	element := ds.Element(PatientIDTag)
	if element == nil {
		t.Fatalf("expected PatientID element to be present")
	}
	if element.VR != LOVR {
		t.Errorf("got VR %v, want %v", element.VR, LOVR)
	}
	if element.ValueLength != 6 {
		t.Errorf("got ValueLength %v, want 6", element.ValueLength)
	}
	if got, ok := ds.UIntValue(RecordInUseFlagTag); !ok || got != 0xFFFF {
		t.Errorf("got (%v, %v), want (0xFFFF, true)", got, ok)
	}
}

func TestStringValue(t *testing.T) {
	ds := NewDataSet(map[DataElementTag]interface{}{
		ReferencedFileIDTag: []string{"SR", "DOC0001"},
	})

	got, ok := ds.StringValue(ReferencedFileIDTag)
	if !ok || got != "SR" {
		t.Errorf("got (%q, %v), want (%q, true)", got, ok, "SR")
	}
	if _, ok := ds.StringValue(PatientIDTag); ok {
		t.Errorf("expected absent element to report ok=false")
	}
}

func TestSortedTags(t *testing.T) {
	ds := NewDataSet(map[DataElementTag]interface{}{
		PatientIDTag:           []string{"PAT001"},
		TransferSyntaxUIDTag:   []string{ExplicitVRLittleEndianUID},
		DirectoryRecordTypeTag: []string{"PATIENT"},
	})

	want := []DataElementTag{TransferSyntaxUIDTag, DirectoryRecordTypeTag, PatientIDTag}
	if got := ds.SortedTags(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMetaElements(t *testing.T) {
	ds := NewDataSet(map[DataElementTag]interface{}{
		TransferSyntaxUIDTag: []string{ExplicitVRLittleEndianUID},
		PatientIDTag:         []string{"PAT001"},
	})

	meta := ds.MetaElements()
	if len(meta.Elements) != 1 {
		t.Fatalf("got %d meta elements, want 1", len(meta.Elements))
	}
	if meta.Element(TransferSyntaxUIDTag) == nil {
		t.Errorf("expected transfer syntax element to survive the filter")
	}
}
