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
	"fmt"

	"github.com/dcmkit/go-dicomdir/dicom"
)

const (
	// itemHeaderSize is the byte cost of the item tag and length preceding a record's
	// content
	itemHeaderSize = 8

	// itemDelimiterSize is the byte cost of the item delimitation item following a record's
	// content
	itemDelimiterSize = 8
)

// linkOffsets runs the two layout passes over the record tree rooted at root and returns
// the records flattened into write order.
//
// Pass A flattens the tree child-before-sibling (a record is followed by its complete
// child subtree, then by its next sibling) and assigns each record the absolute byte
// position its item tag will occupy in the serialized file, starting at base. Pass B walks
// the tree again and stamps every record's next-record and lower-level offset attributes
// from the positions assigned in pass A; records without a sibling or child get 0. The
// passes cannot be fused: a record's cross references point at offsets of records that may
// be assigned after it in write order.
//
// Both passes are iterative with an explicit stack so that the traversal depth does not
// grow with the record count. Offsets are valid only for the save that computed them.
func linkOffsets(root *Record, base uint32, syntaxUID string) ([]*Record, error) {
	flattened, err := assignOffsets(root, base, syntaxUID)
	if err != nil {
		return nil, err
	}
	stampCrossReferences(root)
	return flattened, nil
}

// assignOffsets is pass A: flatten into write order and assign absolute item offsets
func assignOffsets(root *Record, base uint32, syntaxUID string) ([]*Record, error) {
	var flattened []*Record
	offset := base

	stack := []*Record{root}
	for len(stack) > 0 {
		rec := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if rec.Attributes == nil {
			return nil, &StructuralError{Reason: fmt.Sprintf(
				"record %d in write order is not a directory record", len(flattened))}
		}

		rec.offset = offset
		flattened = append(flattened, rec)

		content, err := dicom.DataSetLength(rec.Attributes, syntaxUID)
		if err != nil {
			return nil, &StructuralError{Reason: fmt.Sprintf(
				"sizing record at offset %d: %v", offset, err)}
		}
		offset += itemHeaderSize + content + itemDelimiterSize

		// the sibling is pushed first so that the child subtree is visited before it
		if rec.Next != nil {
			stack = append(stack, rec.Next)
		}
		if rec.Child != nil {
			stack = append(stack, rec.Child)
		}
	}

	return flattened, nil
}

// stampCrossReferences is pass B: every record's next-record and lower-level offset
// attributes are set from the offsets its neighbours received in pass A
func stampCrossReferences(root *Record) {
	stack := []*Record{root}
	for len(stack) > 0 {
		rec := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if rec.Next != nil {
			rec.setUInt32(dicom.OffsetOfTheNextDirectoryRecordTag, rec.Next.offset)
			stack = append(stack, rec.Next)
		} else {
			rec.setUInt32(dicom.OffsetOfTheNextDirectoryRecordTag, 0)
		}

		if rec.Child != nil {
			rec.setUInt32(dicom.OffsetOfReferencedLowerLevelDirectoryEntityTag, rec.Child.offset)
			stack = append(stack, rec.Child)
		} else {
			rec.setUInt32(dicom.OffsetOfReferencedLowerLevelDirectoryEntityTag, 0)
		}
	}
}
