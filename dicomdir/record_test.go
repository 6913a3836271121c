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

func TestNewRecord(t *testing.T) {
	source := srFile("1.1.1")
	rec, err := newRecord(RecordTypePatient, source, nopDiagnostics{})
	require.NoError(t, err)

	assert.Equal(t, RecordTypePatient, rec.Type)
	assert.Equal(t, RecordTypePatient, rec.StringValue(dicom.DirectoryRecordTypeTag))
	assert.Equal(t, testPatientID, rec.StringValue(dicom.PatientIDTag))
	assert.Equal(t, testPatientName, rec.StringValue(dicom.PatientNameTag))

	inUse, ok := rec.Attributes.UIntValue(dicom.RecordInUseFlagTag)
	require.True(t, ok)
	assert.Equal(t, uint32(recordInUse), inUse)

	next, ok := rec.Attributes.UIntValue(dicom.OffsetOfTheNextDirectoryRecordTag)
	require.True(t, ok)
	assert.Zero(t, next)
}

func TestNewRecordValidation(t *testing.T) {
	var verr *ValidationError

	_, err := newRecord("", srFile("1.1.1"), nopDiagnostics{})
	require.ErrorAs(t, err, &verr)

	_, err = newRecord(RecordTypePatient, nil, nopDiagnostics{})
	require.ErrorAs(t, err, &verr)
}

func TestNewRecordReportsMissingAttributes(t *testing.T) {
	source := dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
		dicom.PatientIDTag: []string{"PAT003"},
	})

	diag := &captureDiagnostics{}
	rec, err := newRecord(RecordTypePatient, source, diag)
	require.NoError(t, err)

	assert.Equal(t, "PAT003", rec.StringValue(dicom.PatientIDTag))
	assert.Nil(t, rec.Attributes.Element(dicom.PatientNameTag))
	// name, birth date and sex are each reported once
	assert.Len(t, diag.messages, 3)
}

func TestNewRecordCopiesCharacterSet(t *testing.T) {
	source := srFile("1.1.1")
	source.Elements[dicom.SpecificCharacterSetTag] = &dicom.DataElement{
		Tag:        dicom.SpecificCharacterSetTag,
		VR:         dicom.CSVR,
		ValueField: []string{"ISO_IR 192"},
	}

	rec, err := newRecord(RecordTypeSeries, source, nopDiagnostics{})
	require.NoError(t, err)
	assert.Equal(t, "ISO_IR 192", rec.StringValue(dicom.SpecificCharacterSetTag))
}

func TestMandatoryTags(t *testing.T) {
	assert.Equal(t, []dicom.DataElementTag{
		dicom.PatientIDTag,
		dicom.PatientNameTag,
		dicom.PatientBirthDateTag,
		dicom.PatientSexTag,
	}, MandatoryTags(RecordTypePatient))

	assert.Empty(t, MandatoryTags("VENDOR SPECIFIC"))
	assert.Empty(t, MandatoryTags(RecordTypePrivate))
}
