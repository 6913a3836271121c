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
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode"
)

func readDataElement(dr *dcmReader, metaData dicomMetaData) (*DataElement, error) {
	syntax := metaData.syntax

	tag, err := dr.Tag(syntax.byteOrder())
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading tag: %v", err)
	}

	if tag == ItemDelimitationItemTag {
		// ends a nested data set within an undefined length sequence item. This code never
		// runs for the top level data set.
		length, err := dr.UInt32(syntax.byteOrder())
		if err != nil {
			return nil, fmt.Errorf("reading 32 bit length of item delimitation: %v", err)
		}
		if length != 0 {
			return nil, fmt.Errorf("wrong length for item delimiter: got %v, want 0", length)
		}
		return nil, io.EOF
	}

	vr, err := syntax.readVR(dr, tag)
	if err != nil {
		return nil, fmt.Errorf("reading vr: %v", err)
	}

	length, err := syntax.readValueLength(dr, vr)
	if err != nil {
		return nil, fmt.Errorf("reading length: %v", err)
	}

	value, err := readValue(dr, vr, length, metaData)
	if err != nil {
		return nil, fmt.Errorf("reading value of %v: %v", tag, err)
	}

	return &DataElement{tag, vr, value, length}, nil
}

func readValue(dr *dcmReader, vr *VR, length uint32, metaData dicomMetaData) (interface{}, error) {
	switch vr.kind {
	case textKind:
		return readText(dr, length, vr, metaData, unicode.IsSpace)
	case numberBinaryKind:
		return readNumberBinary(dr, length, vr, metaData.syntax.byteOrder())
	case bulkDataKind:
		return readBulkData(dr, length)
	case uniqueIdentifierKind:
		return readText(dr, length, vr, defaultMetaData, func(r rune) bool {
			return r == 0x00 || r == ' '
		})
	case sequenceKind:
		return newSequenceIterator(dr, length, metaData)
	case tagKind:
		return readTagValue(dr, metaData.syntax.byteOrder(), length)
	default:
		return nil, fmt.Errorf("unknown vr kind found: %v", vr.kind)
	}
}

func readTagValue(dr *dcmReader, order binary.ByteOrder, length uint32) ([]uint32, error) {
	ret := make([]uint32, length/tagSize)
	for i := range ret {
		t, err := dr.Tag(order)
		if err != nil {
			return nil, err
		}
		ret[i] = uint32(t)
	}
	return ret, nil
}

func readText(dr *dcmReader, length uint32, vr *VR, metaData dicomMetaData, isPadding func(rune) bool) ([]string, error) {
	if length <= 0 {
		return []string{}, nil
	}

	raw, err := dr.Bytes(int64(length))
	if err != nil {
		return nil, fmt.Errorf("reading text field value: %v", err)
	}

	decoded, err := metaData.encoding.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding text field value: %v", err)
	}

	// deal with value multiplicity
	strs := strings.Split(string(decoded), "\\")
	for i, s := range strs {
		if vr == UTVR || vr == STVR || vr == LTVR {
			strs[i] = strings.TrimRightFunc(s, isPadding)
		} else {
			strs[i] = strings.TrimFunc(s, isPadding)
		}
	}
	return strs, nil
}

func readNumberBinary(dr *dcmReader, length uint32, vr *VR, order binary.ByteOrder) (interface{}, error) {
	var data interface{}

	switch vr {
	case SSVR:
		data = make([]int16, length/2)
	case USVR:
		data = make([]uint16, length/2)
	case SLVR:
		data = make([]int32, length/4)
	case ULVR:
		data = make([]uint32, length/4)
	case FLVR:
		data = make([]float32, length/4)
	case FDVR:
		data = make([]float64, length/8)
	default:
		return nil, fmt.Errorf("unknown vr: %v", vr)
	}

	if err := binary.Read(dr.cr, order, data); err != nil {
		return nil, fmt.Errorf("reading binary numbers: %v", err)
	}

	return data, nil
}

func readBulkData(dr *dcmReader, length uint32) ([]byte, error) {
	if length == UndefinedLength {
		return nil, fmt.Errorf("undefined length bulk data is not supported")
	}
	return dr.Bytes(int64(length))
}
