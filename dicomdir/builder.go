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
	"strings"

	"github.com/dcmkit/go-dicomdir/dicom"
)

// RegisterFile adds a reference to a DICOM file to the directory, creating the missing
// levels of the Patient/Study/Series hierarchy and reusing the ones that already exist.
// file must contain the file's data set elements and may contain its file meta elements;
// referencedFileID is the slash separated path of the file relative to the directory and
// may be empty. Only the "IMAGE" and "SR DOCUMENT" record types produce an instance
// record; any other recordType leaves the hierarchy untouched without error. Registering
// a file whose SOP instance UID is already referenced under the same series is a no-op.
func (d *Directory) RegisterFile(file *dicom.DataSet, recordType, referencedFileID string) error {
	if file == nil {
		return &ValidationError{Field: "file data set", Reason: "must not be nil"}
	}

	patient, err := d.findOrCreatePatient(file)
	if err != nil {
		return err
	}

	study, err := d.findOrCreateStudy(patient, file)
	if err != nil {
		return err
	}

	series, err := d.findOrCreateSeries(study, file)
	if err != nil {
		return err
	}

	switch recordType {
	case RecordTypeImage, RecordTypeSRDocument:
		return d.appendInstance(series, file, recordType, referencedFileID)
	default:
		// only image and structured report leaves are registered
		return nil
	}
}

// findOrCreatePatient scans the root-level sibling chain for a record whose PatientID and
// PatientName both equal the file's, comparing missing values as the empty string. When no
// record matches, a new patient record is appended to the end of the chain.
func (d *Directory) findOrCreatePatient(file *dicom.DataSet) (*Record, error) {
	id, _ := file.StringValue(dicom.PatientIDTag)
	name, _ := file.StringValue(dicom.PatientNameTag)

	var last *Record
	for rec := d.root; rec != nil; rec = rec.Next {
		if rec.StringValue(dicom.PatientIDTag) == id && rec.StringValue(dicom.PatientNameTag) == name {
			return rec, nil
		}
		last = rec
	}

	patient, err := newRecord(RecordTypePatient, file, d.diag)
	if err != nil {
		return nil, err
	}
	if last == nil {
		d.root = patient
	} else {
		last.Next = patient
	}
	return patient, nil
}

// findOrCreateStudy scans the patient's child chain for a record with the file's
// StudyInstanceUID, appending a new study record when none matches.
func (d *Directory) findOrCreateStudy(patient *Record, file *dicom.DataSet) (*Record, error) {
	uid, _ := file.StringValue(dicom.StudyInstanceUIDTag)

	var last *Record
	for rec := patient.Child; rec != nil; rec = rec.Next {
		if rec.StringValue(dicom.StudyInstanceUIDTag) == uid {
			return rec, nil
		}
		last = rec
	}

	study, err := newRecord(RecordTypeStudy, file, d.diag)
	if err != nil {
		return nil, err
	}
	if last == nil {
		patient.Child = study
	} else {
		last.Next = study
	}
	return study, nil
}

// findOrCreateSeries scans the study's child chain for a record with the file's
// SeriesInstanceUID, appending a new series record when none matches.
func (d *Directory) findOrCreateSeries(study *Record, file *dicom.DataSet) (*Record, error) {
	uid, _ := file.StringValue(dicom.SeriesInstanceUIDTag)

	var last *Record
	for rec := study.Child; rec != nil; rec = rec.Next {
		if rec.StringValue(dicom.SeriesInstanceUIDTag) == uid {
			return rec, nil
		}
		last = rec
	}

	series, err := newRecord(RecordTypeSeries, file, d.diag)
	if err != nil {
		return nil, err
	}
	if last == nil {
		study.Child = series
	} else {
		last.Next = series
	}
	return series, nil
}

// appendInstance adds a leaf record under series. Only the contiguous run of same-type
// siblings starting at the series' first child is scanned for a duplicate SOP instance UID;
// the scan stops at the first sibling of a different type. The new record is appended at
// the end of that run, or becomes the first child when the run is empty.
func (d *Directory) appendInstance(series *Record, file *dicom.DataSet, recordType, referencedFileID string) error {
	sopInstanceUID := instanceUIDOf(file)

	var last *Record
	for rec := series.Child; rec != nil; rec = rec.Next {
		if rec.Type != recordType {
			break
		}
		if rec.StringValue(dicom.ReferencedSOPInstanceUIDInFileTag) == sopInstanceUID {
			// the file is already referenced under this series
			return nil
		}
		last = rec
	}

	leaf, err := newRecord(recordType, file, d.diag)
	if err != nil {
		return err
	}

	if referencedFileID == "" {
		d.diag.Report("registering file without a referenced file ID", map[string]interface{}{
			"sopInstanceUID": sopInstanceUID,
		})
	}
	leaf.setString(dicom.ReferencedFileIDTag, fileIDComponents(referencedFileID)...)
	leaf.setString(dicom.ReferencedSOPClassUIDInFileTag, classUIDOf(file))
	leaf.setString(dicom.ReferencedSOPInstanceUIDInFileTag, sopInstanceUID)
	leaf.setString(dicom.ReferencedTransferSyntaxUIDInFileTag, transferSyntaxOf(file))

	if recordType == RecordTypeSRDocument {
		leaf.setString(dicom.CompletionFlagTag, "COMPLETE")
		leaf.setString(dicom.VerificationFlagTag, "UNVERIFIED")
	}

	if last == nil {
		leaf.Next = series.Child
		series.Child = leaf
	} else {
		leaf.Next = last.Next
		last.Next = leaf
	}
	return nil
}

// instanceUIDOf prefers the media storage SOP instance UID of the file meta group and falls
// back to the data set's SOPInstanceUID.
func instanceUIDOf(file *dicom.DataSet) string {
	if uid, ok := file.StringValue(dicom.MediaStorageSOPInstanceUIDTag); ok {
		return uid
	}
	uid, _ := file.StringValue(dicom.SOPInstanceUIDTag)
	return uid
}

func classUIDOf(file *dicom.DataSet) string {
	if uid, ok := file.StringValue(dicom.MediaStorageSOPClassUIDTag); ok {
		return uid
	}
	uid, _ := file.StringValue(dicom.SOPClassUIDTag)
	return uid
}

func transferSyntaxOf(file *dicom.DataSet) string {
	uid, _ := file.StringValue(dicom.TransferSyntaxUIDTag)
	return uid
}

// fileIDComponents splits a relative path into the component values of a ReferencedFileID
// attribute. Both slash separators are accepted.
func fileIDComponents(fileID string) []string {
	if fileID == "" {
		return nil
	}
	return strings.FieldsFunc(fileID, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}
