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

// Container identifies the linked level that a Find or Remove operates on: either the root
// directory entity or the children of a specific record.
type Container struct {
	at *Record
}

// RootEntity returns the Container addressing the root-level record chain
func RootEntity() Container {
	return Container{}
}

// At returns the Container addressing the child chain of record
func At(record *Record) Container {
	return Container{at: record}
}

// Find scans the single linked level under container for the first record whose attribute
// under tag has the string value given. It returns the match and the sibling immediately
// preceding it; previous is nil when the match heads the chain. Both results are nil when
// value is empty or nothing matches.
func (d *Directory) Find(tag dicom.DataElementTag, container Container, value string) (match, previous *Record) {
	if value == "" {
		return nil, nil
	}

	var prev *Record
	for rec := d.head(container); rec != nil; rec = rec.Next {
		if rec.StringValue(tag) == value {
			return rec, prev
		}
		prev = rec
	}
	return nil, nil
}

// Remove unlinks node from the chain under container, using previous as returned by a prior
// Find. The node's child subtree is discarded with it; it is not traversed. Removing a node
// that is already detached is not an error, but the caller is responsible for supplying a
// previous consistent with the chain's current state.
func (d *Directory) Remove(node, previous *Record, container Container) {
	if node == nil {
		return
	}

	if previous == nil {
		if container.at != nil {
			container.at.Child = node.Next
		} else {
			d.root = node.Next
		}
	} else {
		previous.Next = node.Next
	}

	node.Next = nil
}

func (d *Directory) head(container Container) *Record {
	if container.at != nil {
		return container.at.Child
	}
	return d.root
}
