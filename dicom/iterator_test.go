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
	"io"
	"strings"
	"testing"
)

func TestNewDataElementIteratorRejectsNonDICOM(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"short input", "DIC"},
		{"wrong signature", strings.Repeat("\x00", 128) + "DCIM"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDataElementIterator(strings.NewReader(tc.in)); err == nil {
				t.Errorf("expected error for input %q", tc.name)
			}
		})
	}
}

func TestDataElementIteratorEmitsMetaThenDataElements(t *testing.T) {
	var buf bytes.Buffer
	dew, err := NewDataElementWriter(&buf, testMetaHeader())
	if err != nil {
		t.Fatalf("NewDataElementWriter: %v", err)
	}
	element := NewDataSet(map[DataElementTag]interface{}{FileSetIDTag: []string{"ARCHIVE"}}).
		Element(FileSetIDTag)
	if err := dew.WriteElement(element); err != nil {
		t.Fatalf("WriteElement: %v", err)
	}

	iter, err := NewDataElementIterator(&buf)
	if err != nil {
		t.Fatalf("NewDataElementIterator: %v", err)
	}
	defer iter.Close()

	var tags []DataElementTag
	for elem, err := iter.NextElement(); err != io.EOF; elem, err = iter.NextElement() {
		if err != nil {
			t.Fatalf("NextElement: %v", err)
		}
		tags = append(tags, elem.Tag)
	}

	if len(tags) == 0 || tags[len(tags)-1] != FileSetIDTag {
		t.Fatalf("got tags %v, want FileSetID emitted last", tags)
	}
	for _, tag := range tags[:len(tags)-1] {
		if !tag.IsMetadataElement() {
			t.Errorf("expected only meta elements before the data set, got %v", tag)
		}
	}
}
