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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dcmkit/go-dicomdir/dicom"
)

// OpenOption configures a load operation
type OpenOption func(*openConfig)

type openConfig struct {
	diag Diagnostics
	stop func() bool
}

// WithStopCondition installs a predicate that is evaluated before each directory record is
// read. When the predicate returns true, loading stops and the Directory built so far is
// returned with IsPartial reporting true.
func WithStopCondition(stop func() bool) OpenOption {
	return func(cfg *openConfig) {
		if stop != nil {
			cfg.stop = stop
		}
	}
}

// WithOpenDiagnostics injects the sink that receives non-fatal conditions encountered while
// loading. The sink is retained by the returned Directory.
func WithOpenDiagnostics(diag Diagnostics) OpenOption {
	return func(cfg *openConfig) {
		if diag != nil {
			cfg.diag = diag
		}
	}
}

// Open loads the directory file at path. A path that cannot be opened or read yields an
// error. A file that opens but does not decode as a directory yields (nil, nil) with the
// cause reported to the diagnostics sink, so that callers scanning media can skip
// unreadable candidates without special-casing them.
func Open(path string, opts ...OpenOption) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dicomdir: opening %s: %w", path, err)
	}
	defer f.Close()

	return OpenReader(f, opts...)
}

// OpenContext loads the directory file at path, stopping early when ctx is canceled. A
// canceled load returns the records read so far with IsPartial reporting true.
func OpenContext(ctx context.Context, path string, opts ...OpenOption) (*Directory, error) {
	opts = append(opts, WithStopCondition(func() bool {
		return ctx.Err() != nil
	}))
	return Open(path, opts...)
}

// OpenReader loads a directory from r. Decode failures are reported to the diagnostics
// sink and yield (nil, nil). A stream that decodes but whose offset pointers cannot be
// linked into a tree yields (nil, *StructuralError).
func OpenReader(r io.Reader, opts ...OpenOption) (*Directory, error) {
	cfg := &openConfig{diag: nopDiagnostics{}}
	for _, opt := range opts {
		opt(cfg)
	}

	d := &Directory{
		fileSetUID: NewUID(),
		syntaxUID:  dicom.ExplicitVRLittleEndianUID,
		diag:       cfg.diag,
	}

	iter, err := dicom.NewDataElementIterator(r)
	if err != nil {
		cfg.diag.Report("stream is not a readable directory file", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil
	}

	var firstOffset uint32
	items := map[uint32]*dicom.DataSet{}

	for element, err := iter.NextElement(); err != io.EOF; element, err = iter.NextElement() {
		if err != nil {
			cfg.diag.Report("decoding directory file", map[string]interface{}{
				"error": err.Error(),
			})
			return nil, nil
		}

		switch element.Tag {
		case dicom.MediaStorageSOPInstanceUIDTag:
			if uid, ok := element.StringValue(); ok {
				d.fileSetUID = uid
			}
		case dicom.TransferSyntaxUIDTag:
			if uid, ok := element.StringValue(); ok {
				d.syntaxUID = uid
			}
		case dicom.FileSetIDTag:
			d.fileSetID, _ = element.StringValue()
		case dicom.OffsetOfTheFirstDirectoryRecordOfTheRootDirectoryEntityTag:
			buffered, ok := element.ValueField.([]uint32)
			if ok && len(buffered) > 0 {
				firstOffset = buffered[0]
			}
		case dicom.DirectoryRecordSequenceTag:
			seqIter, ok := element.ValueField.(dicom.SequenceIterator)
			if !ok {
				cfg.diag.Report("directory record sequence has unexpected form", nil)
				return nil, nil
			}
			if err := collectRecordItems(seqIter, cfg, d, items); err != nil {
				cfg.diag.Report("decoding directory record sequence", map[string]interface{}{
					"error": err.Error(),
				})
				return nil, nil
			}
		}

		if d.partial {
			// the remainder of the stream is abandoned; the records read so far are
			// still linked into a usable tree below
			break
		}
	}

	if err := d.rebuildTree(firstOffset, items); err != nil {
		return nil, err
	}
	return d, nil
}

// collectRecordItems drains the directory record sequence, keying each item data set by the
// absolute byte offset of its item tag. It stops between items when the configured stop
// predicate fires, marking the directory partial.
func collectRecordItems(seqIter dicom.SequenceIterator, cfg *openConfig, d *Directory, items map[uint32]*dicom.DataSet) error {
	for {
		if cfg.stop != nil && cfg.stop() {
			d.partial = true
			return nil
		}

		itemIter, err := seqIter.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		item, err := dicom.CollectDataElements(itemIter)
		if err != nil {
			return err
		}
		items[uint32(seqIter.Offset())] = item
	}
}

// linkTask asks for the record chain starting at offset to be built and attached at slot
type linkTask struct {
	offset uint32
	slot   **Record
}

// rebuildTree reassembles the record tree from the flat item map by following the offset
// pointers stored in the items, starting from the root entity's first record. Records whose
// in-use flag is cleared are skipped over by following their next pointer. An offset that
// points at no item, or a pointer loop, fails with a StructuralError.
func (d *Directory) rebuildTree(firstOffset uint32, items map[uint32]*dicom.DataSet) error {
	if firstOffset == 0 {
		return nil
	}

	visited := map[uint32]bool{}
	stack := []linkTask{{offset: firstOffset, slot: &d.root}}

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		offset, slot := task.offset, task.slot
		for offset != 0 {
			if visited[offset] {
				return &StructuralError{
					Reason: fmt.Sprintf("record offset %d is referenced more than once", offset),
				}
			}
			visited[offset] = true

			item := items[offset]
			if item == nil {
				if d.partial {
					// the referenced record lies past the point the load stopped at; the
					// chain ends here
					break
				}
				return &StructuralError{
					Reason: fmt.Sprintf("offset %d does not address a directory record", offset),
				}
			}

			next, _ := item.UIntValue(dicom.OffsetOfTheNextDirectoryRecordTag)
			if inUse, ok := item.UIntValue(dicom.RecordInUseFlagTag); ok && inUse == 0 {
				offset = next
				continue
			}

			recordType, _ := item.StringValue(dicom.DirectoryRecordTypeTag)
			rec := &Record{Type: recordType, Attributes: item, offset: offset}
			*slot = rec

			if lower, ok := item.UIntValue(dicom.OffsetOfReferencedLowerLevelDirectoryEntityTag); ok && lower != 0 {
				stack = append(stack, linkTask{offset: lower, slot: &rec.Child})
			}

			offset, slot = next, &rec.Next
		}
	}

	return nil
}
