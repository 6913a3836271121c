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

// Package server exposes a loaded directory as a read-only HTTP browse API.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dcmkit/go-dicomdir/dicom"
	"github.com/dcmkit/go-dicomdir/dicomdir"
	"github.com/dcmkit/go-dicomdir/internal/api"
)

// Server serves the browse API over one loaded directory. The directory must not be
// mutated while the server is running.
type Server struct {
	dir *dicomdir.Directory
	log *zap.Logger
}

// New returns a Server over dir
func New(dir *dicomdir.Directory, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{dir: dir, log: log}
}

// Router builds the chi router of the browse API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/fileset", s.handleFileSet)
	r.Get("/patients", s.handlePatients)
	r.Get("/patients/{patientID}/studies", s.handleStudies)
	r.Get("/studies/{studyUID}/series", s.handleSeries)
	r.Get("/series/{seriesUID}/instances", s.handleInstances)

	return r
}

// ListenAndServe serves the browse API on addr until the listener fails
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("serving directory browse API", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleFileSet(w http.ResponseWriter, r *http.Request) {
	patients := 0
	for rec := s.dir.Root(); rec != nil; rec = rec.Next {
		patients++
	}
	s.respond(w, http.StatusOK, api.FileSet{
		FileSetID: s.dir.FileSetID(),
		Partial:   s.dir.IsPartial(),
		Patients:  patients,
	})
}

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request) {
	patients := []api.Patient{}
	for rec := s.dir.Root(); rec != nil; rec = rec.Next {
		patients = append(patients, api.Patient{
			PatientID:   rec.StringValue(dicom.PatientIDTag),
			PatientName: rec.StringValue(dicom.PatientNameTag),
		})
	}
	s.respond(w, http.StatusOK, patients)
}

func (s *Server) handleStudies(w http.ResponseWriter, r *http.Request) {
	patient, _ := s.dir.Find(dicom.PatientIDTag, dicomdir.RootEntity(), chi.URLParam(r, "patientID"))
	if patient == nil {
		s.respondError(w, http.StatusNotFound, "patient not found")
		return
	}

	studies := []api.Study{}
	for rec := patient.Child; rec != nil; rec = rec.Next {
		studies = append(studies, api.Study{
			StudyInstanceUID: rec.StringValue(dicom.StudyInstanceUIDTag),
			StudyID:          rec.StringValue(dicom.StudyIDTag),
			StudyDate:        rec.StringValue(dicom.StudyDateTag),
			AccessionNumber:  rec.StringValue(dicom.AccessionNumberTag),
			Description:      rec.StringValue(dicom.StudyDescriptionTag),
		})
	}
	s.respond(w, http.StatusOK, studies)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	study := s.findStudy(chi.URLParam(r, "studyUID"))
	if study == nil {
		s.respondError(w, http.StatusNotFound, "study not found")
		return
	}

	series := []api.Series{}
	for rec := study.Child; rec != nil; rec = rec.Next {
		series = append(series, api.Series{
			SeriesInstanceUID: rec.StringValue(dicom.SeriesInstanceUIDTag),
			Modality:          rec.StringValue(dicom.ModalityTag),
			SeriesNumber:      rec.StringValue(dicom.SeriesNumberTag),
			Description:       rec.StringValue(dicom.SeriesDescriptionTag),
		})
	}
	s.respond(w, http.StatusOK, series)
}

func (s *Server) handleInstances(w http.ResponseWriter, r *http.Request) {
	series := s.findSeries(chi.URLParam(r, "seriesUID"))
	if series == nil {
		s.respondError(w, http.StatusNotFound, "series not found")
		return
	}

	instances := []api.Instance{}
	for rec := series.Child; rec != nil; rec = rec.Next {
		instances = append(instances, api.Instance{
			RecordType:        rec.Type,
			SOPInstanceUID:    rec.StringValue(dicom.ReferencedSOPInstanceUIDInFileTag),
			SOPClassUID:       rec.StringValue(dicom.ReferencedSOPClassUIDInFileTag),
			ReferencedFileID:  referencedFileID(rec),
			TransferSyntaxUID: rec.StringValue(dicom.ReferencedTransferSyntaxUIDInFileTag),
		})
	}
	s.respond(w, http.StatusOK, instances)
}

func (s *Server) findStudy(uid string) *dicomdir.Record {
	for patient := s.dir.Root(); patient != nil; patient = patient.Next {
		study, _ := s.dir.Find(dicom.StudyInstanceUIDTag, dicomdir.At(patient), uid)
		if study != nil {
			return study
		}
	}
	return nil
}

func (s *Server) findSeries(uid string) *dicomdir.Record {
	for patient := s.dir.Root(); patient != nil; patient = patient.Next {
		for study := patient.Child; study != nil; study = study.Next {
			series, _ := s.dir.Find(dicom.SeriesInstanceUIDTag, dicomdir.At(study), uid)
			if series != nil {
				return series
			}
		}
	}
	return nil
}

// referencedFileID joins the file ID path components back into a slash separated path
func referencedFileID(rec *dicomdir.Record) string {
	element := rec.Attributes.Element(dicom.ReferencedFileIDTag)
	if element == nil {
		return ""
	}
	components, ok := element.ValueField.([]string)
	if !ok {
		return ""
	}
	return strings.Join(components, "/")
}

func (s *Server) respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, map[string]string{"error": message})
}
