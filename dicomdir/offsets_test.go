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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcmkit/go-dicomdir/dicom"
)

func TestLinkOffsetsWriteOrder(t *testing.T) {
	d := New()
	require.NoError(t, d.RegisterFile(srFile("1.1.1"), RecordTypeSRDocument, "SR/A"))
	require.NoError(t, d.RegisterFile(srFile("1.1.2"), RecordTypeSRDocument, "SR/B"))
	require.NoError(t, d.RegisterFile(
		testFile("PAT002", "ROE^RICHARD", "1.2.3", "1.2.3.4", testCTClassUID, "2.1.1"),
		RecordTypeImage, "CT/A"))

	const base = uint32(420)
	flattened, err := linkOffsets(d.Root(), base, dicom.ExplicitVRLittleEndianUID)
	require.NoError(t, err)

	// child subtrees precede siblings: the second patient comes after every record of the
	// first
	wantTypes := []string{
		RecordTypePatient, RecordTypeStudy, RecordTypeSeries,
		RecordTypeSRDocument, RecordTypeSRDocument,
		RecordTypePatient, RecordTypeStudy, RecordTypeSeries, RecordTypeImage,
	}
	var gotTypes []string
	for _, rec := range flattened {
		gotTypes = append(gotTypes, rec.Type)
	}
	require.Equal(t, wantTypes, gotTypes)

	assert.Equal(t, base, flattened[0].Offset())
	for i := 1; i < len(flattened); i++ {
		content, err := dicom.DataSetLength(flattened[i-1].Attributes, dicom.ExplicitVRLittleEndianUID)
		require.NoError(t, err)
		want := flattened[i-1].Offset() + itemHeaderSize + content + itemDelimiterSize
		assert.Equal(t, want, flattened[i].Offset(), "record %d", i)
	}
}

func TestLinkOffsetsAgreeAcrossSyntaxes(t *testing.T) {
	build := func() *Record {
		d := New()
		require.NoError(t, d.RegisterFile(srFile("1.1.1"), RecordTypeSRDocument, "SR/A"))
		require.NoError(t, d.RegisterFile(srFile("1.1.2"), RecordTypeSRDocument, "SR/B"))
		return d.Root()
	}

	explicit, err := linkOffsets(build(), 0, dicom.ExplicitVRLittleEndianUID)
	require.NoError(t, err)
	implicit, err := linkOffsets(build(), 0, dicom.ImplicitVRLittleEndianUID)
	require.NoError(t, err)

	require.Len(t, implicit, len(explicit))
	// record attributes use short-form VRs only, whose explicit header is 8 bytes, the
	// same as implicit, so relative record offsets are identical in both syntaxes
	for i := range explicit {
		assert.Equal(t, explicit[i].Offset(), implicit[i].Offset(), "record %d", i)
	}
}

func TestSaveImplicitVRIsSmaller(t *testing.T) {
	build := func(syntaxUID string) *Directory {
		d := New(WithTransferSyntax(syntaxUID))
		require.NoError(t, d.RegisterFile(srFile("1.1.1"), RecordTypeSRDocument, "SR/A"))
		require.NoError(t, d.RegisterFile(srFile("1.1.2"), RecordTypeSRDocument, "SR/B"))
		return d
	}

	explicit := saveToBytes(t, build(dicom.ExplicitVRLittleEndianUID))
	implicit := saveToBytes(t, build(dicom.ImplicitVRLittleEndianUID))

	// the directory record sequence header is the long form, 12 bytes explicit against 8
	// implicit, so the implicit encoding of the same tree is strictly shorter
	assert.Less(t, len(implicit), len(explicit))
}

func TestLinkOffsetsRejectsCorruptRecord(t *testing.T) {
	d := New()
	require.NoError(t, d.RegisterFile(srFile("1.1.1"), RecordTypeSRDocument, "SR/A"))
	d.Root().Child.Attributes = nil

	_, err := linkOffsets(d.Root(), 0, dicom.ExplicitVRLittleEndianUID)

	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
}

func TestStampCrossReferencesZeroesAbsentLinks(t *testing.T) {
	d := New()
	require.NoError(t, d.RegisterFile(srFile("1.1.1"), RecordTypeSRDocument, "SR/A"))

	_, err := linkOffsets(d.Root(), 0, dicom.ExplicitVRLittleEndianUID)
	require.NoError(t, err)

	leaf := d.Root().Child.Child.Child
	next, ok := leaf.Attributes.UIntValue(dicom.OffsetOfTheNextDirectoryRecordTag)
	require.True(t, ok)
	assert.Zero(t, next)
	lower, ok := leaf.Attributes.UIntValue(dicom.OffsetOfReferencedLowerLevelDirectoryEntityTag)
	require.True(t, ok)
	assert.Zero(t, lower)
}
