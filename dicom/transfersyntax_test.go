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

import "testing"

func TestHeaderSize(t *testing.T) {
	tests := []struct {
		name   string
		syntax transferSyntax
		vr     *VR
		want   uint32
	}{
		{"explicit short form", explicitVRLittleEndian, LOVR, 8},
		{"explicit UI", explicitVRLittleEndian, UIVR, 8},
		{"explicit long form OB", explicitVRLittleEndian, OBVR, 12},
		{"explicit long form SQ", explicitVRLittleEndian, SQVR, 12},
		{"explicit long form UN", explicitVRLittleEndian, UNVR, 12},
		{"implicit short form", implicitVRLittleEndian, LOVR, 8},
		{"implicit SQ", implicitVRLittleEndian, SQVR, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.syntax.headerSize(tc.vr); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestElementSize(t *testing.T) {
	tests := []struct {
		name   string
		syntax transferSyntax
		vr     *VR
		length uint32
		want   uint32
	}{
		{"explicit text", explicitVRLittleEndian, LOVR, 6, 14},
		{"explicit bulk", explicitVRLittleEndian, OBVR, 2, 14},
		{"implicit text", implicitVRLittleEndian, LOVR, 6, 14},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.syntax.elementSize(tc.vr, tc.length); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLookupTransferSyntax(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		want transferSyntax
	}{
		{"implicit little endian", ImplicitVRLittleEndianUID, implicitVRLittleEndian},
		{"explicit little endian", ExplicitVRLittleEndianUID, explicitVRLittleEndian},
		{"explicit big endian", ExplicitVRBigEndianUID, explicitVRBigEndian},
		{"unrecognized defaults to explicit little endian", "1.2.3.4.5", explicitVRLittleEndian},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := lookupTransferSyntax(tc.uid); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
