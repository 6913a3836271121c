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
)

// Sequence models a DICOM Sequence of Items
type Sequence struct {
	Items []*DataSet

	// ItemOffsets holds, for each entry of Items, the absolute byte offset of the item tag
	// within the stream the Sequence was parsed from. Empty for Sequences constructed in
	// memory.
	ItemOffsets []int64
}

func (seq *Sequence) String() string {
	return seq.string(0)
}

func (seq *Sequence) string(indentLvl int) string {
	lines := make([]string, 0, len(seq.Items))
	for _, item := range seq.Items {
		lines = append(lines, item.string(indentLvl+1))
	}
	return "\n" + strings.Join(lines, "\n")
}

func (seq *Sequence) append(item *DataSet, offset int64) {
	seq.Items = append(seq.Items, item)
	seq.ItemOffsets = append(seq.ItemOffsets, offset)
}

// SequenceIterator is an iterator over a DICOM Sequence of Items in the order in which they
// appear in the DICOM file.
type SequenceIterator interface {
	// Next returns a DataElementIterator over the next item in the Sequence. If there is no
	// next item, the error io.EOF is returned. Any iterator previously returned from Next is
	// emptied.
	Next() (DataElementIterator, error)

	// Offset reports the absolute byte offset of the item tag of the item most recently
	// returned by Next.
	Offset() int64

	// Close discards all remaining items in the iterator. Any iterator previously returned
	// from Next is emptied.
	Close() error
}

func newSequenceIterator(dr *dcmReader, length uint32, metaData dicomMetaData) (SequenceIterator, error) {
	if length < UndefinedLength {
		return &explicitLengthSequenceIterator{dr: dr.Limit(int64(length)), metaData: metaData}, nil
	}
	return &undefinedLengthSequenceIterator{dr: dr, metaData: metaData}, nil
}

type explicitLengthSequenceIterator struct {
	dr          *dcmReader
	metaData    dicomMetaData
	currentItem DataElementIterator
	itemOffset  int64
}

func (it *explicitLengthSequenceIterator) Next() (DataElementIterator, error) {
	if it.currentItem != nil {
		if err := it.currentItem.Close(); err != nil {
			return nil, err
		}
	}

	offset := it.dr.Pos()
	tag, err := processItemTag(it.dr, it.metaData.syntax.byteOrder())
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	if tag == SequenceDelimitationItemTag {
		return nil, fmt.Errorf("unexpected sequence delimitation item in explicit length sequence")
	}

	it.itemOffset = offset
	it.currentItem, err = newSeqItem(it.dr, it.metaData)

	return it.currentItem, err
}

func (it *explicitLengthSequenceIterator) Offset() int64 {
	return it.itemOffset
}

func (it *explicitLengthSequenceIterator) Close() error {
	return closeSeq(it)
}

type undefinedLengthSequenceIterator struct {
	dr          *dcmReader
	metaData    dicomMetaData
	currentItem DataElementIterator
	itemOffset  int64
	empty       bool
}

func (it *undefinedLengthSequenceIterator) Next() (DataElementIterator, error) {
	if it.empty {
		return nil, io.EOF
	}
	if it.currentItem != nil {
		if err := it.currentItem.Close(); err != nil {
			return nil, err
		}
	}

	offset := it.dr.Pos()
	tag, err := processItemTag(it.dr, it.metaData.syntax.byteOrder())
	if err == io.EOF {
		return nil, fmt.Errorf("unexpected EOF in undefined length sequence")
	}
	if err != nil {
		return nil, err
	}
	if tag == SequenceDelimitationItemTag {
		return nil, it.terminate()
	}

	it.itemOffset = offset
	it.currentItem, err = newSeqItem(it.dr, it.metaData)

	return it.currentItem, err
}

func (it *undefinedLengthSequenceIterator) terminate() error {
	itemLength, err := it.dr.UInt32(it.metaData.syntax.byteOrder())
	if err != nil {
		return fmt.Errorf("reading 32 bit length of sequence delimitation item: %v", err)
	}
	if itemLength != 0 {
		return fmt.Errorf("expected 0 length on sequence delimitation item")
	}
	// this empty flag prevents the iterator from advancing the input stream past the bytes
	// of the sequence when Next is called again. Explicit length sequences do not need it
	// because their input is wrapped in an io.LimitedReader.
	it.empty = true
	return io.EOF
}

func (it *undefinedLengthSequenceIterator) Offset() int64 {
	return it.itemOffset
}

func (it *undefinedLengthSequenceIterator) Close() error {
	return closeSeq(it)
}

func processItemTag(dr *dcmReader, order binary.ByteOrder) (DataElementTag, error) {
	tag, err := dr.Tag(order)
	if err == io.EOF {
		return tag, io.EOF
	}
	if err != nil {
		return tag, fmt.Errorf("unexpected error reading item tag: %v", err)
	}
	if tag != ItemTag && tag != SequenceDelimitationItemTag {
		return tag, fmt.Errorf("invalid item tag in sequence: got %v, want %v or %v",
			tag, ItemTag, SequenceDelimitationItemTag)
	}

	return tag, nil
}

func newSeqItem(dr *dcmReader, metaData dicomMetaData) (DataElementIterator, error) {
	itemLength, err := dr.UInt32(metaData.syntax.byteOrder())
	if err != nil {
		return nil, fmt.Errorf("reading sequence item length: %v", err)
	}

	if itemLength >= UndefinedLength {
		return newDataElementIterator(dr, metaData, itemLength), nil
	}

	return newDataElementIterator(dr.Limit(int64(itemLength)), metaData, itemLength), nil
}

func closeSeq(iter SequenceIterator) error {
	for _, err := iter.Next(); err != io.EOF; _, err = iter.Next() {
		if err != nil {
			return err
		}
	}
	return nil
}
