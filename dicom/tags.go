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

// Data Element tags referenced by this library, named after their keyword in the DICOM data
// dictionary. http://dicom.nema.org/medical/dicom/current/output/html/part06.html
const (
	// file meta elements (group 0002)
	FileMetaInformationGroupLengthTag DataElementTag = 0x00020000
	FileMetaInformationVersionTag     DataElementTag = 0x00020001
	MediaStorageSOPClassUIDTag        DataElementTag = 0x00020002
	MediaStorageSOPInstanceUIDTag     DataElementTag = 0x00020003
	TransferSyntaxUIDTag              DataElementTag = 0x00020010
	ImplementationClassUIDTag         DataElementTag = 0x00020012
	ImplementationVersionNameTag      DataElementTag = 0x00020013

	// media storage directory elements (group 0004)
	FileSetIDTag                                               DataElementTag = 0x00041130
	OffsetOfTheFirstDirectoryRecordOfTheRootDirectoryEntityTag DataElementTag = 0x00041200
	OffsetOfTheLastDirectoryRecordOfTheRootDirectoryEntityTag  DataElementTag = 0x00041202
	FileSetConsistencyFlagTag                                  DataElementTag = 0x00041212
	DirectoryRecordSequenceTag                                 DataElementTag = 0x00041220
	OffsetOfTheNextDirectoryRecordTag                          DataElementTag = 0x00041400
	RecordInUseFlagTag                                         DataElementTag = 0x00041410
	OffsetOfReferencedLowerLevelDirectoryEntityTag             DataElementTag = 0x00041420
	DirectoryRecordTypeTag                                     DataElementTag = 0x00041430
	ReferencedFileIDTag                                        DataElementTag = 0x00041500
	ReferencedSOPClassUIDInFileTag                             DataElementTag = 0x00041510
	ReferencedSOPInstanceUIDInFileTag                          DataElementTag = 0x00041511
	ReferencedTransferSyntaxUIDInFileTag                       DataElementTag = 0x00041512

	// data set elements
	SpecificCharacterSetTag DataElementTag = 0x00080005
	SOPClassUIDTag          DataElementTag = 0x00080016
	SOPInstanceUIDTag       DataElementTag = 0x00080018
	StudyDateTag            DataElementTag = 0x00080020
	SeriesDateTag           DataElementTag = 0x00080021
	StudyTimeTag            DataElementTag = 0x00080030
	SeriesTimeTag           DataElementTag = 0x00080031
	AccessionNumberTag      DataElementTag = 0x00080050
	ModalityTag             DataElementTag = 0x00080060
	StudyDescriptionTag     DataElementTag = 0x00081030
	SeriesDescriptionTag    DataElementTag = 0x0008103E
	PatientNameTag          DataElementTag = 0x00100010
	PatientIDTag            DataElementTag = 0x00100020
	PatientBirthDateTag     DataElementTag = 0x00100030
	PatientSexTag           DataElementTag = 0x00100040
	StudyInstanceUIDTag     DataElementTag = 0x0020000D
	SeriesInstanceUIDTag    DataElementTag = 0x0020000E
	StudyIDTag              DataElementTag = 0x00200010
	SeriesNumberTag         DataElementTag = 0x00200011
	InstanceNumberTag       DataElementTag = 0x00200013
	CompletionFlagTag       DataElementTag = 0x0040A491
	VerificationFlagTag     DataElementTag = 0x0040A493

	// item and delimitation tags (group FFFE)
	ItemTag                     DataElementTag = 0xFFFEE000
	ItemDelimitationItemTag     DataElementTag = 0xFFFEE00D
	SequenceDelimitationItemTag DataElementTag = 0xFFFEE0DD
)

var dictionaryVRByTag = map[DataElementTag]*VR{
	FileMetaInformationVersionTag:                              OBVR,
	MediaStorageSOPClassUIDTag:                                 UIVR,
	MediaStorageSOPInstanceUIDTag:                              UIVR,
	TransferSyntaxUIDTag:                                       UIVR,
	ImplementationClassUIDTag:                                  UIVR,
	ImplementationVersionNameTag:                               SHVR,
	FileSetIDTag:                                               CSVR,
	OffsetOfTheFirstDirectoryRecordOfTheRootDirectoryEntityTag: ULVR,
	OffsetOfTheLastDirectoryRecordOfTheRootDirectoryEntityTag:  ULVR,
	FileSetConsistencyFlagTag:                                  USVR,
	DirectoryRecordSequenceTag:                                 SQVR,
	OffsetOfTheNextDirectoryRecordTag:                          ULVR,
	RecordInUseFlagTag:                                         USVR,
	OffsetOfReferencedLowerLevelDirectoryEntityTag:             ULVR,
	DirectoryRecordTypeTag:                                     CSVR,
	ReferencedFileIDTag:                                        CSVR,
	ReferencedSOPClassUIDInFileTag:                             UIVR,
	ReferencedSOPInstanceUIDInFileTag:                          UIVR,
	ReferencedTransferSyntaxUIDInFileTag:                       UIVR,
	SpecificCharacterSetTag:                                    CSVR,
	SOPClassUIDTag:                                             UIVR,
	SOPInstanceUIDTag:                                          UIVR,
	StudyDateTag:                                               DAVR,
	SeriesDateTag:                                              DAVR,
	StudyTimeTag:                                               TMVR,
	SeriesTimeTag:                                              TMVR,
	AccessionNumberTag:                                         SHVR,
	ModalityTag:                                                CSVR,
	StudyDescriptionTag:                                        LOVR,
	SeriesDescriptionTag:                                       LOVR,
	PatientNameTag:                                             PNVR,
	PatientIDTag:                                               LOVR,
	PatientBirthDateTag:                                        DAVR,
	PatientSexTag:                                              CSVR,
	StudyInstanceUIDTag:                                        UIVR,
	SeriesInstanceUIDTag:                                       UIVR,
	StudyIDTag:                                                 SHVR,
	SeriesNumberTag:                                            ISVR,
	InstanceNumberTag:                                          ISVR,
	CompletionFlagTag:                                          CSVR,
	VerificationFlagTag:                                        CSVR,
}

// DictionaryVR returns the VR recorded for the tag in the data dictionary. Group length
// elements (gggg,0000) have VR UL and private creator elements (gggg,0010-00FF of an odd
// group) have VR LO. Unknown tags are given UN.
func (t DataElementTag) DictionaryVR() *VR {
	if vr, ok := dictionaryVRByTag[t]; ok {
		return vr
	}
	if t.ElementNumber() == 0 {
		return ULVR
	}
	if t.IsPrivate() && t.ElementNumber() >= 0x0010 && t.ElementNumber() <= 0x00FF {
		return LOVR
	}
	return UNVR
}
