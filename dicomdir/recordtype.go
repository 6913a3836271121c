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
	"github.com/dcmkit/go-dicomdir/dicom"
)

// Directory record type names defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part03.html#sect_F.5
const (
	RecordTypePatient           = "PATIENT"
	RecordTypeStudy             = "STUDY"
	RecordTypeSeries            = "SERIES"
	RecordTypeImage             = "IMAGE"
	RecordTypeSRDocument        = "SR DOCUMENT"
	RecordTypeOverlay           = "OVERLAY"
	RecordTypeModalityLUT       = "MODALITY LUT"
	RecordTypeVOILUT            = "VOI LUT"
	RecordTypeCurve             = "CURVE"
	RecordTypeStoredPrint       = "STORED PRINT"
	RecordTypeRTDose            = "RT DOSE"
	RecordTypeRTStructureSet    = "RT STRUCTURE SET"
	RecordTypeRTPlan            = "RT PLAN"
	RecordTypeRTTreatRecord     = "RT TREAT RECORD"
	RecordTypePresentation      = "PRESENTATION"
	RecordTypeWaveform          = "WAVEFORM"
	RecordTypeKeyObjectDoc      = "KEY OBJECT DOC"
	RecordTypeSpectroscopy      = "SPECTROSCOPY"
	RecordTypeRawData           = "RAW DATA"
	RecordTypeRegistration      = "REGISTRATION"
	RecordTypeFiducial          = "FIDUCIAL"
	RecordTypeHangingProtocol   = "HANGING PROTOCOL"
	RecordTypeEncapDoc          = "ENCAP DOC"
	RecordTypeHL7StrucDoc       = "HL7 STRUC DOC"
	RecordTypeValueMap          = "VALUE MAP"
	RecordTypeStereometric      = "STEREOMETRIC"
	RecordTypePalette           = "PALETTE"
	RecordTypeImplant           = "IMPLANT"
	RecordTypeImplantGroup      = "IMPLANT GROUP"
	RecordTypeImplantAssy       = "IMPLANT ASSY"
	RecordTypeMeasurement       = "MEASUREMENT"
	RecordTypeSurface           = "SURFACE"
	RecordTypeSurfaceScanMesh   = "SURF SCAN MESH"
	RecordTypeSurfaceScanPoints = "SURF SCAN POINT CLOUD"
	RecordTypeTract             = "TRACT"
	RecordTypeAssessment        = "ASSESSMENT"
	RecordTypePrivate           = "PRIVATE"
)

// mandatoryTagsByType lists, per record type, the attributes that must be copied from a
// source data set when a record of that type is created. Types without an entry carry no
// mandatory attributes beyond the bookkeeping elements every record has.
var mandatoryTagsByType = map[string][]dicom.DataElementTag{
	RecordTypePatient: {
		dicom.PatientIDTag,
		dicom.PatientNameTag,
		dicom.PatientBirthDateTag,
		dicom.PatientSexTag,
	},
	RecordTypeStudy: {
		dicom.StudyInstanceUIDTag,
		dicom.StudyIDTag,
		dicom.StudyDateTag,
		dicom.StudyTimeTag,
		dicom.AccessionNumberTag,
		dicom.StudyDescriptionTag,
	},
	RecordTypeSeries: {
		dicom.SeriesInstanceUIDTag,
		dicom.ModalityTag,
		dicom.SeriesDateTag,
		dicom.SeriesTimeTag,
		dicom.SeriesNumberTag,
		dicom.SeriesDescriptionTag,
	},
	RecordTypeImage: {
		dicom.InstanceNumberTag,
	},
	RecordTypeSRDocument: {
		dicom.InstanceNumberTag,
	},
}

// MandatoryTags returns the ordered attribute tags a record of the given type carries.
// Unknown or custom type names yield an empty list; the lookup never fails.
func MandatoryTags(recordType string) []dicom.DataElementTag {
	return mandatoryTagsByType[recordType]
}
