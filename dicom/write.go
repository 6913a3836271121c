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
	"math"
	"strings"
)

func writeDataElement(dw *dcmWriter, syntax transferSyntax, element *DataElement) error {
	element, err := processedElement(element)
	if err != nil {
		return fmt.Errorf("processing element: %v", err)
	}

	if err := dw.Tag(syntax.byteOrder(), element.Tag); err != nil {
		return fmt.Errorf("writing tag: %v", err)
	}
	if err := syntax.writeVR(dw, element.VR); err != nil {
		return fmt.Errorf("writing VR: %v", err)
	}
	if err := syntax.writeValueLength(dw, element.VR, element.ValueLength); err != nil {
		return fmt.Errorf("writing length: %v", err)
	}
	if err := writeValue(dw, syntax, element.VR, element.ValueField); err != nil {
		return fmt.Errorf("writing value: %v", err)
	}

	return nil
}

// processedElement normalizes an element before writing: VRs are looked up from the data
// dictionary when nil and the ValueLength is re-calculated from the ValueField.
func processedElement(element *DataElement) (*DataElement, error) {
	vr := element.VR
	if vr == nil {
		vr = element.Tag.DictionaryVR()
	}

	length, err := valueFieldLength(element.ValueField)
	if err != nil {
		return nil, fmt.Errorf("calculating value length: %v", err)
	}

	return &DataElement{element.Tag, vr, element.ValueField, length}, nil
}

// valueFieldLength returns the number of bytes the ValueField occupies on disk, including
// the padding byte required to keep value fields of even length
func valueFieldLength(valueField interface{}) (uint32, error) {
	numBytes := int64(0)

	switch v := valueField.(type) {
	case []string:
		for _, s := range v {
			numBytes += int64(len(s))
		}
		if len(v) > 0 { // values are joined with the "\" delimiter
			numBytes += int64(len(v)) - 1
		}
	case []byte:
		numBytes = int64(len(v))
	case []int16:
		numBytes = int64(len(v)) * 2
	case []uint16:
		numBytes = int64(len(v)) * 2
	case []int32:
		numBytes = int64(len(v)) * 4
	case []uint32:
		numBytes = int64(len(v)) * 4
	case []float32:
		numBytes = int64(len(v)) * 4
	case []float64:
		numBytes = int64(len(v)) * 8
	case *Sequence, SequenceIterator:
		return UndefinedLength, nil
	default:
		return 0, fmt.Errorf("unexpected ValueField type %T", valueField)
	}

	if numBytes >= math.MaxUint32 {
		return UndefinedLength, nil
	}

	if numBytes%2 != 0 {
		numBytes++
	}

	return uint32(numBytes), nil
}

func writeValue(dw *dcmWriter, syntax transferSyntax, vr *VR, valueField interface{}) error {
	spacePadding := byte(0x20)
	nullPadding := byte(0x00)

	switch vr.kind {
	case textKind:
		return writeText(dw, spacePadding, valueField)
	case numberBinaryKind:
		return writeNumberBinary(dw, syntax, valueField)
	case bulkDataKind:
		return writeBulkData(dw, valueField)
	case uniqueIdentifierKind:
		return writeText(dw, nullPadding, valueField)
	case sequenceKind:
		return writeSequence(dw, syntax, valueField)
	case tagKind:
		return writeTagValue(dw, syntax.byteOrder(), valueField)
	default:
		return fmt.Errorf("unknown vr kind found: %v", vr.kind)
	}
}

func writeText(dw *dcmWriter, paddingByte byte, valueField interface{}) error {
	strs, ok := valueField.([]string)
	if !ok {
		return fmt.Errorf("expected type []string, got %T", valueField)
	}

	joined := strings.Join(strs, "\\")
	if len(joined)%2 != 0 {
		joined += string(paddingByte)
	}

	return dw.String(joined)
}

func writeNumberBinary(dw *dcmWriter, syntax transferSyntax, valueField interface{}) error {
	switch valueField.(type) {
	case []int16, []uint16, []int32, []uint32, []float32, []float64:
		return binary.Write(dw, syntax.byteOrder(), valueField)
	default:
		return fmt.Errorf("unsupported binary number type: %T", valueField)
	}
}

func writeBulkData(dw *dcmWriter, valueField interface{}) error {
	payload, ok := valueField.([]byte)
	if !ok {
		return fmt.Errorf("expected type []byte, got %T", valueField)
	}
	if err := dw.Bytes(payload); err != nil {
		return err
	}
	if len(payload)%2 != 0 {
		return dw.Bytes([]byte{0x00})
	}
	return nil
}

// writeSequence writes a Sequence with undefined length: each item is framed by an item tag
// with undefined length and an item delimitation item, and the sequence is terminated by a
// sequence delimitation item.
func writeSequence(dw *dcmWriter, syntax transferSyntax, valueField interface{}) error {
	seq, ok := valueField.(*Sequence)
	if !ok {
		return fmt.Errorf("expected type *Sequence, got %T", valueField)
	}

	order := syntax.byteOrder()
	for _, item := range seq.Items {
		if err := dw.Tag(order, ItemTag); err != nil {
			return fmt.Errorf("writing item tag: %v", err)
		}
		if err := dw.UInt32(order, UndefinedLength); err != nil {
			return fmt.Errorf("writing item length: %v", err)
		}

		if err := writeDataSet(dw, syntax, item); err != nil {
			return fmt.Errorf("writing sequence item: %v", err)
		}

		if err := dw.Delimiter(order, ItemDelimitationItemTag); err != nil {
			return fmt.Errorf("writing item delimitation item: %v", err)
		}
	}

	if err := dw.Delimiter(order, SequenceDelimitationItemTag); err != nil {
		return fmt.Errorf("writing sequence delimitation item: %v", err)
	}
	return nil
}

func writeTagValue(dw *dcmWriter, order binary.ByteOrder, valueField interface{}) error {
	tags, ok := valueField.([]uint32)
	if !ok {
		return fmt.Errorf("expected type []uint32 for tag VR, got %T", valueField)
	}
	for _, tag := range tags {
		if err := dw.Tag(order, DataElementTag(tag)); err != nil {
			return err
		}
	}
	return nil
}

func writeDataSet(dw *dcmWriter, syntax transferSyntax, ds *DataSet) error {
	for _, element := range ds.SortedElements() {
		if err := writeDataElement(dw, syntax, element); err != nil {
			return fmt.Errorf("writing data element: %v", err)
		}
	}
	return nil
}

// dataSetLength returns the number of bytes the DataSet's elements occupy on disk in the
// given syntax. Sequences of undefined length cannot be sized this way and yield an error.
func dataSetLength(ds *DataSet, syntax transferSyntax) (uint32, error) {
	size := int64(0)
	for _, element := range ds.Elements {
		normalized, err := processedElement(element)
		if err != nil {
			return 0, fmt.Errorf("calculating element length: %v", err)
		}
		if normalized.ValueLength == UndefinedLength {
			return 0, fmt.Errorf("cannot size element %v of undefined length", element.Tag)
		}
		size += int64(syntax.elementSize(normalized.VR, normalized.ValueLength))
	}

	if size > math.MaxUint32 {
		return 0, fmt.Errorf("data set length exceeds unsigned 32-bit range")
	}

	return uint32(size), nil
}

// DataSetLength returns the number of bytes the DataSet's elements occupy on disk when
// encoded with the transfer syntax identified by syntaxUID. Sequence elements of undefined
// length yield an error.
func DataSetLength(ds *DataSet, syntaxUID string) (uint32, error) {
	return dataSetLength(ds, lookupTransferSyntax(syntaxUID))
}

// ElementHeaderLength returns the number of bytes occupied by the tag, VR and length fields
// of an element with the given VR when encoded with the transfer syntax identified by
// syntaxUID.
func ElementHeaderLength(vr *VR, syntaxUID string) uint32 {
	return lookupTransferSyntax(syntaxUID).headerSize(vr)
}
