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

// Package api defines the JSON types exchanged by the directory browse API.
package api

// FileSet describes the directory file itself
type FileSet struct {
	FileSetID string `json:"fileSetID"`
	Partial   bool   `json:"partial"`
	Patients  int    `json:"patients"`
}

// Patient is one root-level patient record
type Patient struct {
	PatientID   string `json:"patientID"`
	PatientName string `json:"patientName"`
}

// Study is one study record under a patient
type Study struct {
	StudyInstanceUID string `json:"studyInstanceUID"`
	StudyID          string `json:"studyID"`
	StudyDate        string `json:"studyDate"`
	AccessionNumber  string `json:"accessionNumber"`
	Description      string `json:"description"`
}

// Series is one series record under a study
type Series struct {
	SeriesInstanceUID string `json:"seriesInstanceUID"`
	Modality          string `json:"modality"`
	SeriesNumber      string `json:"seriesNumber"`
	Description       string `json:"description"`
}

// Instance is one leaf record under a series
type Instance struct {
	RecordType        string `json:"recordType"`
	SOPInstanceUID    string `json:"sopInstanceUID"`
	SOPClassUID       string `json:"sopClassUID"`
	ReferencedFileID  string `json:"referencedFileID"`
	TransferSyntaxUID string `json:"transferSyntaxUID"`
}
