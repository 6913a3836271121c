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
	"fmt"
	"io"
)

// DataElementWriter writes DataElements one at a time
type DataElementWriter interface {
	WriteElement(element *DataElement) error
}

var errExpectedMetaHeader = fmt.Errorf("expected header to only contain file meta elements, " +
	"use DataSet.MetaElements to filter the DataSet")

// NewDataElementWriter writes the DICOM preamble, signature and meta header to w and
// returns a DataElementWriter that writes DataElements in the transfer syntax specified by
// the header. The FileMetaInformationGroupLength element is re-calculated before the header
// is written.
func NewDataElementWriter(w io.Writer, header *DataSet) (DataElementWriter, error) {
	if !header.isMetaHeader() {
		return nil, errExpectedMetaHeader
	}

	syntax, err := header.transferSyntax()
	if err != nil {
		return nil, fmt.Errorf("getting transfer syntax from header: %v", err)
	}
	if syntax.isDeflated() {
		return nil, fmt.Errorf("writing in the deflated syntax is not supported")
	}

	dw := &dcmWriter{w}
	if err := writeDicomSignature(dw); err != nil {
		return nil, err
	}

	// The FileMetaInformationGroupLength element stores how long the meta header is and
	// must be kept consistent with the elements actually written.
	groupLength, err := createMetaGroupLengthElement(header)
	if err != nil {
		return nil, fmt.Errorf("creating meta group length element: %v", err)
	}
	header.Elements[FileMetaInformationGroupLengthTag] = groupLength

	// Meta elements are always written in the Explicit VR Little Endian syntax in
	// ascending tag order.
	for _, element := range header.SortedElements() {
		if err := writeDataElement(dw, explicitVRLittleEndian, element); err != nil {
			return nil, fmt.Errorf("writing meta element: %v", err)
		}
	}

	return &dataElementWriter{dw, syntax}, nil
}

type dataElementWriter struct {
	dw     *dcmWriter
	syntax transferSyntax
}

func (dew *dataElementWriter) WriteElement(element *DataElement) error {
	return writeDataElement(dew.dw, dew.syntax, element)
}

func writeDicomSignature(dw *dcmWriter) error {
	if err := dw.Bytes(make([]byte, 128)); err != nil {
		return fmt.Errorf("writing DICOM preamble: %v", err)
	}

	if err := dw.String("DICM"); err != nil {
		return fmt.Errorf("writing DICOM signature: %v", err)
	}

	return nil
}

func createMetaGroupLengthElement(header *DataSet) (*DataElement, error) {
	// Please refer to the DICOM Standard Part 10 for information on the File Meta
	// Information Group Length.
	// http://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7.1

	size := uint32(0)
	for _, element := range header.Elements {
		if element.Tag == FileMetaInformationGroupLengthTag {
			// the group length byte count excludes the element itself
			continue
		}
		normalized, err := processedElement(element)
		if err != nil {
			return nil, err
		}
		size += explicitVRLittleEndian.elementSize(normalized.VR, normalized.ValueLength)
	}

	return &DataElement{
		Tag:         FileMetaInformationGroupLengthTag,
		VR:          FileMetaInformationGroupLengthTag.DictionaryVR(),
		ValueField:  []uint32{size},
		ValueLength: 4,
	}, nil
}

// MetaGroupLength returns the total number of bytes the file meta group occupies on disk,
// including the FileMetaInformationGroupLength element itself but excluding the preamble
// and DICM signature.
func MetaGroupLength(header *DataSet) (uint32, error) {
	groupLength, err := createMetaGroupLengthElement(header)
	if err != nil {
		return 0, err
	}

	value := groupLength.ValueField.([]uint32)[0]
	return value + explicitVRLittleEndian.elementSize(groupLength.VR, groupLength.ValueLength), nil
}
