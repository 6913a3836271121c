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
	"sort"
	"strings"
)

// DataElementTag is a unique identifier for a Data Element composed of an unordered pair
// of numbers called the group number and the element number as specified in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10.
//
// The least significant 16 bits is the element number. The most significant 16 bits is the
// group number.
type DataElementTag uint32

// GroupNumber returns the group number component of the DataElementTag
func (t DataElementTag) GroupNumber() uint16 {
	return uint16(t >> 16)
}

// ElementNumber returns the element number component of the DataElementTag
func (t DataElementTag) ElementNumber() uint16 {
	return uint16(t & 0xFFFF)
}

// IsMetadataElement is true if and only if the Data Element is a file meta element
func (t DataElementTag) IsMetadataElement() bool {
	return t.GroupNumber() == uint16(0x0002)
}

// IsPrivate is true if and only if the Data Element belongs to an odd numbered group
func (t DataElementTag) IsPrivate() bool {
	return t.GroupNumber()%2 == 1
}

func (t DataElementTag) String() string {
	return fmt.Sprintf("(%04X,%04X)", t.GroupNumber(), t.ElementNumber())
}

// DataElement models a DICOM Data Element as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataElement struct {
	Tag DataElementTag

	// Value Representation
	VR *VR

	// ValueField represents the field within a Data Element that contains its value(s).
	// Can be any of the following types:
	// []string,
	// []byte,
	// []int16,
	// []uint16,
	// []int32,
	// []uint32,
	// []float32,
	// []float64,
	// *Sequence,
	// SequenceIterator
	ValueField interface{}

	// ValueLength is equal to the length of the ValueField in bytes.
	// Can be equal to 0xFFFFFFFF to represent an undefined length:
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
	ValueLength uint32
}

// StringValue returns the first value of a textual DataElement. ok is false when the
// element holds no textual values.
func (e *DataElement) StringValue() (v string, ok bool) {
	strs, ok := e.ValueField.([]string)
	if !ok || len(strs) == 0 {
		return "", false
	}
	return strs[0], true
}

func (e *DataElement) String() string {
	return fmt.Sprintf("%s %s #%d %v", e.Tag, e.VR.Name, e.ValueLength, e.ValueField)
}

// DataSet models a DICOM Data Set as defined in
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_3.10
type DataSet struct {
	// Elements is a map of DataElement tags to *DataElement
	Elements map[DataElementTag]*DataElement

	// Length is the number of bytes the DataSet occupies on disk, or UndefinedLength when
	// the DataSet was parsed from an undefined length sequence item
	Length uint32
}

// NewDataSet returns a DataSet where each (tag, value) entry in elements is transformed into
// a *DataElement with the VR looked up from the data dictionary and the ValueLength computed
// from the value given.
func NewDataSet(elements map[DataElementTag]interface{}) *DataSet {
	ds := &DataSet{Elements: map[DataElementTag]*DataElement{}}
	for tag, value := range elements {
		vr := tag.DictionaryVR()
		length, err := valueFieldLength(value)
		if err != nil {
			length = 0
		}
		ds.Elements[tag] = &DataElement{tag, vr, value, length}
	}
	return ds
}

// Element returns the DataElement stored under tag, or nil when absent.
func (ds *DataSet) Element(tag DataElementTag) *DataElement {
	return ds.Elements[tag]
}

// StringValue returns the first value of the textual DataElement stored under tag. ok is
// false when the element is absent or holds no textual values.
func (ds *DataSet) StringValue(tag DataElementTag) (v string, ok bool) {
	element := ds.Elements[tag]
	if element == nil {
		return "", false
	}
	return element.StringValue()
}

// UIntValue returns the first value of an unsigned integral DataElement ([]uint16 or
// []uint32) stored under tag. ok is false when the element is absent or not integral.
func (ds *DataSet) UIntValue(tag DataElementTag) (v uint32, ok bool) {
	element := ds.Elements[tag]
	if element == nil {
		return 0, false
	}
	switch field := element.ValueField.(type) {
	case []uint16:
		if len(field) > 0 {
			return uint32(field[0]), true
		}
	case []uint32:
		if len(field) > 0 {
			return field[0], true
		}
	}
	return 0, false
}

// SortedTags returns the tags in the DataSet in ascending order
func (ds *DataSet) SortedTags() []DataElementTag {
	tags := make([]DataElementTag, 0, len(ds.Elements))
	for tag := range ds.Elements {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// SortedElements returns the DataElements in the DataSet in ascending tag order
func (ds *DataSet) SortedElements() []*DataElement {
	tags := ds.SortedTags()
	elements := make([]*DataElement, 0, len(tags))
	for _, tag := range tags {
		elements = append(elements, ds.Elements[tag])
	}
	return elements
}

// MetaElements returns a new DataSet containing only the file meta elements of this DataSet
func (ds *DataSet) MetaElements() *DataSet {
	meta := &DataSet{Elements: map[DataElementTag]*DataElement{}}
	for tag, element := range ds.Elements {
		if tag.IsMetadataElement() {
			meta.Elements[tag] = element
		}
	}
	return meta
}

func (ds *DataSet) isMetaHeader() bool {
	for tag := range ds.Elements {
		if !tag.IsMetadataElement() {
			return false
		}
	}
	return true
}

func (ds *DataSet) transferSyntax() (transferSyntax, error) {
	uid, ok := ds.StringValue(TransferSyntaxUIDTag)
	if !ok {
		return nil, fmt.Errorf("transfer syntax element missing from meta header")
	}
	return lookupTransferSyntax(uid), nil
}

func (ds *DataSet) String() string {
	return ds.string(0)
}

func (ds *DataSet) string(indentLvl int) string {
	indent := strings.Repeat(">", indentLvl)
	lines := make([]string, 0, len(ds.Elements))
	for _, element := range ds.SortedElements() {
		lines = append(lines, indent+element.String())
	}
	return strings.Join(lines, "\n")
}
