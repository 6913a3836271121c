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

// Parse parses a DICOM file represented as an io.Reader, returning a DataSet that contains
// both the file meta elements and the data set elements. Streaming values produced by the
// low level API are buffered: sequences become *Sequence and opaque payloads become []byte.
func Parse(r io.Reader) (*DataSet, error) {
	iter, err := NewDataElementIterator(r)
	if err != nil {
		return nil, fmt.Errorf("creating data element iterator: %v", err)
	}
	defer iter.Close()

	return CollectDataElements(iter)
}

// CollectDataElements returns the DataSet defined by the elements in the
// DataElementIterator. The DataElementIterator is drained.
func CollectDataElements(iter DataElementIterator) (*DataSet, error) {
	ds := &DataSet{Elements: map[DataElementTag]*DataElement{}, Length: iter.length()}

	for elem, err := iter.NextElement(); err != io.EOF; elem, err = iter.NextElement() {
		if err != nil {
			return nil, err
		}
		buffered, err := bufferElement(elem)
		if err != nil {
			return nil, err
		}
		ds.Elements[buffered.Tag] = buffered
	}
	return ds, nil
}

// CollectSequence returns the Sequence defined by the items in the SequenceIterator,
// preserving the absolute byte offset of each item. The SequenceIterator is drained.
func CollectSequence(iter SequenceIterator) (*Sequence, error) {
	seq := &Sequence{}
	for itemIter, err := iter.Next(); err != io.EOF; itemIter, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		item, err := CollectDataElements(itemIter)
		if err != nil {
			return nil, err
		}
		seq.append(item, iter.Offset())
	}
	return seq, nil
}

// bufferElement replaces a streaming ValueField with its buffered equivalent
func bufferElement(element *DataElement) (*DataElement, error) {
	seqIter, ok := element.ValueField.(SequenceIterator)
	if !ok {
		return element, nil
	}

	seq, err := CollectSequence(seqIter)
	if err != nil {
		return nil, fmt.Errorf("collecting sequence: %v", err)
	}

	return &DataElement{element.Tag, element.VR, seq, element.ValueLength}, nil
}
