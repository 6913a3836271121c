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
	"bytes"
	"fmt"
	"io"
)

// DataElementIterator represents an iterator over a DataSet's DataElements
type DataElementIterator interface {
	// NextElement returns the next DataElement in the DataSet. If there is no next
	// DataElement, the error io.EOF is returned. In addition, iterable objects within
	// previously returned DataElements, such as SequenceIterator, are emptied.
	NextElement() (*DataElement, error)

	// Close discards all remaining DataElements in the iterator
	Close() error

	syntax() transferSyntax

	length() uint32
}

// NewDataElementIterator creates a DataElementIterator from a DICOM file. The returned
// iterator yields the file meta elements first, followed by the data set elements in the
// transfer syntax declared by the meta header. Input is consumed from r as needed.
func NewDataElementIterator(r io.Reader) (DataElementIterator, error) {
	dr := newDcmReader(r)
	if err := readDicomSignature(dr); err != nil {
		return nil, err
	}

	metaHeaderBytes, err := bufferMetaHeader(dr)
	if err != nil {
		return nil, fmt.Errorf("reading meta header: %v", err)
	}

	syntax, err := findSyntax(metaHeaderBytes)
	if err != nil {
		return nil, fmt.Errorf("finding transfer syntax: %v", err)
	}
	if syntax.isDeflated() {
		return nil, fmt.Errorf("deflated transfer syntax is not supported")
	}

	metaIter := newDataElementIterator(newDcmReader(bytes.NewBuffer(metaHeaderBytes)), defaultMetaData, UndefinedLength)

	return &dataElementIterator{
		dr:         dr,
		metaData:   dicomMetaData{syntax, defaultCharacterRepertoire},
		metaHeader: metaIter,
	}, nil
}

// newDataElementIterator creates a DataElementIterator over a byte stream that excludes
// header info (preamble and file meta elements)
func newDataElementIterator(dr *dcmReader, metaData dicomMetaData, length uint32) DataElementIterator {
	return &dataElementIterator{
		dr:         dr,
		metaData:   metaData,
		itemLength: length,
		metaHeader: emptyElementIterator{metaData},
	}
}

type dataElementIterator struct {
	dr             *dcmReader
	metaData       dicomMetaData
	currentElement *DataElement
	itemLength     uint32
	empty          bool
	metaHeader     DataElementIterator
}

func (it *dataElementIterator) NextElement() (*DataElement, error) {
	metaElem, err := it.metaHeader.NextElement()
	if err == io.EOF {
		return it.nextDataSetElement()
	}
	if err != nil {
		return nil, err
	}
	return metaElem, nil
}

func (it *dataElementIterator) syntax() transferSyntax {
	return it.metaData.syntax
}

func (it *dataElementIterator) length() uint32 {
	return it.itemLength
}

func (it *dataElementIterator) nextDataSetElement() (*DataElement, error) {
	if it.empty {
		return nil, io.EOF
	}
	if err := it.closeCurrent(); err != nil {
		return nil, fmt.Errorf("closing previous element: %v", err)
	}

	element, err := readDataElement(it.dr, it.metaData)
	if err == io.EOF {
		it.empty = true
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("reading element: %v", err)
	}

	if element.Tag == SpecificCharacterSetTag {
		it.updateEncoding(element)
	}

	it.currentElement = element

	return it.currentElement, nil
}

func (it *dataElementIterator) Close() error {
	// empty the iterator
	for _, err := it.NextElement(); err != io.EOF; _, err = it.NextElement() {
		if err != nil {
			return fmt.Errorf("unexpected error closing iterator: %v", err)
		}
	}
	return nil
}

// closeCurrent ensures the iterator is ready to read the next DataElement. If the previous
// DataElement carried a stream such as a SequenceIterator, that stream must be emptied to
// advance the input to the bytes of the next DataElement. This pattern is similar to the
// implementation of multipart.Reader in the standard library.
func (it *dataElementIterator) closeCurrent() error {
	if it.currentElement == nil {
		return nil
	}

	if closer, ok := it.currentElement.ValueField.(interface{ Close() error }); ok {
		return closer.Close()
	}

	return nil
}

// updateEncoding switches the character repertoire used to decode subsequent text values.
// Unknown defined terms leave the current repertoire in place.
func (it *dataElementIterator) updateEncoding(element *DataElement) {
	term, ok := element.StringValue()
	if !ok || term == "" {
		return
	}
	if coding, err := lookupEncoding(term); err == nil {
		it.metaData.encoding = coding
	}
}

func readDicomSignature(dr *dcmReader) error {
	if err := dr.Skip(128); err != nil {
		return fmt.Errorf("skipping preamble: %v", err)
	}

	magic, err := dr.String(4)
	if err != nil {
		return fmt.Errorf("reading DICOM signature: %v", err)
	}

	if magic != "DICM" {
		return fmt.Errorf("wrong DICOM signature: %v", magic)
	}

	return nil
}

func bufferMetaHeader(dr *dcmReader) ([]byte, error) {
	firstElemBytes, err := dr.Bytes(tagSize + vrSize + 2 /*16-bit length*/ + 4 /*UL value*/)
	if err != nil {
		return nil, fmt.Errorf("buffering bytes of FileMetaInformationGroupLength: %v", err)
	}
	firstElem, err := readDataElement(newDcmReader(bytes.NewBuffer(firstElemBytes)), defaultMetaData)
	if err != nil {
		return nil, fmt.Errorf("parsing FileMetaInformationGroupLength element: %v", err)
	}

	metaGroupLength, ok := firstElem.ValueField.([]uint32)
	if !ok {
		return nil, fmt.Errorf("wrong type for FileMetaInformationGroupLength: got %T, want []uint32", firstElem.ValueField)
	}
	if len(metaGroupLength) != 1 {
		return nil, fmt.Errorf("expected 1 value for meta group length")
	}

	remainderBytes, err := dr.Bytes(int64(metaGroupLength[0]))
	if err != nil {
		return nil, fmt.Errorf("buffering the file meta elements: %v", err)
	}

	return append(firstElemBytes, remainderBytes...), nil
}

func findSyntax(metaHeaderBytes []byte) (transferSyntax, error) {
	metaIter := newDataElementIterator(newDcmReader(bytes.NewBuffer(metaHeaderBytes)), defaultMetaData, UndefinedLength)

	for elem, err := metaIter.NextElement(); err != io.EOF; elem, err = metaIter.NextElement() {
		if err != nil {
			return nil, fmt.Errorf("reading meta element: %v", err)
		}
		if elem.Tag == TransferSyntaxUIDTag {
			uid, ok := elem.StringValue()
			if !ok {
				return nil, fmt.Errorf("expected textual value for transfer syntax element")
			}
			return lookupTransferSyntax(uid), nil
		}
	}

	return nil, fmt.Errorf("transfer syntax not found")
}

type emptyElementIterator struct {
	metaData dicomMetaData
}

func (it emptyElementIterator) NextElement() (*DataElement, error) {
	return nil, io.EOF
}

func (it emptyElementIterator) syntax() transferSyntax {
	return it.metaData.syntax
}

func (it emptyElementIterator) length() uint32 {
	return UndefinedLength
}

func (it emptyElementIterator) Close() error {
	return nil
}
