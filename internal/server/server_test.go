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

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcmkit/go-dicomdir/dicom"
	"github.com/dcmkit/go-dicomdir/dicomdir"
	"github.com/dcmkit/go-dicomdir/internal/api"
)

const (
	studyUID  = "1.2.3"
	seriesUID = "1.2.3.4"
)

func testDirectory(t *testing.T) *dicomdir.Directory {
	t.Helper()

	file := dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
		dicom.PatientIDTag:         []string{"PAT001"},
		dicom.PatientNameTag:       []string{"DOE^JANE"},
		dicom.StudyInstanceUIDTag:  []string{studyUID},
		dicom.StudyIDTag:           []string{"STU1"},
		dicom.SeriesInstanceUIDTag: []string{seriesUID},
		dicom.ModalityTag:          []string{"SR"},
		dicom.SOPClassUIDTag:       []string{"1.2.840.10008.5.1.4.1.1.88.22"},
		dicom.SOPInstanceUIDTag:    []string{"9.9.9"},
	})

	d := dicomdir.New()
	require.NoError(t, d.SetFileSetID("ARCHIVE"))
	require.NoError(t, d.RegisterFile(file, dicomdir.RecordTypeSRDocument, "SR/DOC0001"))
	return d
}

func get(t *testing.T, handler http.Handler, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestFileSetEndpoint(t *testing.T) {
	handler := New(testDirectory(t), nil).Router()

	var got api.FileSet
	rec := get(t, handler, "/fileset", &got)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, api.FileSet{FileSetID: "ARCHIVE", Partial: false, Patients: 1}, got)
}

func TestBrowseHierarchy(t *testing.T) {
	handler := New(testDirectory(t), nil).Router()

	var patients []api.Patient
	rec := get(t, handler, "/patients", &patients)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, patients, 1)
	assert.Equal(t, api.Patient{PatientID: "PAT001", PatientName: "DOE^JANE"}, patients[0])

	var studies []api.Study
	rec = get(t, handler, "/patients/PAT001/studies", &studies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, studies, 1)
	assert.Equal(t, studyUID, studies[0].StudyInstanceUID)

	var series []api.Series
	rec = get(t, handler, "/studies/"+studyUID+"/series", &series)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, series, 1)
	assert.Equal(t, seriesUID, series[0].SeriesInstanceUID)

	var instances []api.Instance
	rec = get(t, handler, "/series/"+seriesUID+"/instances", &instances)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, instances, 1)
	assert.Equal(t, api.Instance{
		RecordType:        dicomdir.RecordTypeSRDocument,
		SOPInstanceUID:    "9.9.9",
		SOPClassUID:       "1.2.840.10008.5.1.4.1.1.88.22",
		ReferencedFileID:  "SR/DOC0001",
		TransferSyntaxUID: "",
	}, instances[0])
}

func TestBrowseNotFound(t *testing.T) {
	handler := New(testDirectory(t), nil).Router()

	tests := []struct {
		name string
		path string
	}{
		{"unknown patient", "/patients/NOBODY/studies"},
		{"unknown study", "/studies/9.8.7/series"},
		{"unknown series", "/series/9.8.7.6/instances"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, handler, tc.path, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}
