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
	"io"
	"os"
	"strings"

	"github.com/dcmkit/go-dicomdir/dicom"
)

// preambleSize is the byte count of the DICOM preamble plus the "DICM" signature
const preambleSize = 128 + 4

// Directory maintains a DICOM Media Storage Directory: the tree of directory records that
// indexes a file set, and the serialization state needed to write it back as a DICOMDIR
// file. A Directory is owned by one logical owner at a time; it performs no locking and
// concurrent mutation is not supported.
type Directory struct {
	root       *Record
	fileSetID  string
	fileSetUID string
	syntaxUID  string
	diag       Diagnostics
	partial    bool
}

// Option configures a Directory at construction time
type Option func(*Directory)

// WithDiagnostics injects the sink that receives non-fatal conditions. The default sink
// discards them.
func WithDiagnostics(diag Diagnostics) Option {
	return func(d *Directory) {
		if diag != nil {
			d.diag = diag
		}
	}
}

// WithTransferSyntax selects the transfer syntax the directory is serialized with. The
// default is Explicit VR Little Endian.
func WithTransferSyntax(uid string) Option {
	return func(d *Directory) {
		d.syntaxUID = uid
	}
}

// New returns an empty Directory ready for file registration
func New(opts ...Option) *Directory {
	d := &Directory{
		fileSetUID: NewUID(),
		syntaxUID:  dicom.ExplicitVRLittleEndianUID,
		diag:       nopDiagnostics{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the first root-level record of the directory, or nil when the directory is
// empty
func (d *Directory) Root() *Record {
	return d.root
}

// FileSetID returns the identifier of the file set the directory describes
func (d *Directory) FileSetID() string {
	return d.fileSetID
}

// SetFileSetID sets the identifier of the file set. The identifier must be non-empty after
// trimming surrounding whitespace.
func (d *Directory) SetFileSetID(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return &ValidationError{Field: "file-set ID", Reason: "must not be empty"}
	}
	d.fileSetID = trimmed
	return nil
}

// IsPartial reports whether the directory was loaded from a reader that stopped before the
// complete record sequence was consumed
func (d *Directory) IsPartial() bool {
	return d.partial
}

// Save lays out the record tree and serializes the directory to w. The two layout passes
// run from scratch on every call: record offsets are recomputed and the sequence of binary
// items is rebuilt, so saving an unmodified directory twice produces identical bytes.
// Saving a directory with no registered records fails with a StructuralError before any
// bytes are written.
func (d *Directory) Save(w io.Writer) error {
	if d.root == nil {
		return &StructuralError{Reason: "cannot save a directory with no records"}
	}

	meta := d.metaHeader()
	metaLength, err := dicom.MetaGroupLength(meta)
	if err != nil {
		return &StructuralError{Reason: fmt.Sprintf("sizing file meta group: %v", err)}
	}

	rootElements := dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
		dicom.FileSetIDTag:              []string{d.fileSetID},
		dicom.FileSetConsistencyFlagTag: []uint16{0},
		dicom.OffsetOfTheFirstDirectoryRecordOfTheRootDirectoryEntityTag: []uint32{0},
		dicom.OffsetOfTheLastDirectoryRecordOfTheRootDirectoryEntityTag:  []uint32{0},
	})
	prefixLength, err := dicom.DataSetLength(rootElements, d.syntaxUID)
	if err != nil {
		return &StructuralError{Reason: fmt.Sprintf("sizing root data set: %v", err)}
	}

	base := preambleSize + metaLength + prefixLength +
		dicom.ElementHeaderLength(dicom.SQVR, d.syntaxUID)

	flattened, err := linkOffsets(d.root, base, d.syntaxUID)
	if err != nil {
		return err
	}

	var lastRoot *Record
	for rec := d.root; rec != nil; rec = rec.Next {
		lastRoot = rec
	}

	rootElements.Elements[dicom.OffsetOfTheFirstDirectoryRecordOfTheRootDirectoryEntityTag].
		ValueField = []uint32{d.root.offset}
	rootElements.Elements[dicom.OffsetOfTheLastDirectoryRecordOfTheRootDirectoryEntityTag].
		ValueField = []uint32{lastRoot.offset}

	// the item list is materialized fresh on every save so that entries from a prior save
	// cannot leak into this one
	sequence := &dicom.Sequence{Items: make([]*dicom.DataSet, 0, len(flattened))}
	for _, rec := range flattened {
		sequence.Items = append(sequence.Items, rec.Attributes)
	}
	rootElements.Elements[dicom.DirectoryRecordSequenceTag] = &dicom.DataElement{
		Tag:         dicom.DirectoryRecordSequenceTag,
		VR:          dicom.SQVR,
		ValueField:  sequence,
		ValueLength: dicom.UndefinedLength,
	}

	dew, err := dicom.NewDataElementWriter(w, meta)
	if err != nil {
		return fmt.Errorf("dicomdir: writing file header: %w", err)
	}
	for _, element := range rootElements.SortedElements() {
		if err := dew.WriteElement(element); err != nil {
			return fmt.Errorf("dicomdir: writing %v: %w", element.Tag, err)
		}
	}

	return nil
}

// SaveFile serializes the directory to the file at path
func (d *Directory) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dicomdir: creating %s: %w", path, err)
	}

	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("dicomdir: closing %s: %w", path, err)
	}
	return nil
}

func (d *Directory) metaHeader() *dicom.DataSet {
	return dicom.NewDataSet(map[dicom.DataElementTag]interface{}{
		dicom.FileMetaInformationVersionTag: []byte{0x00, 0x01},
		dicom.MediaStorageSOPClassUIDTag:    []string{MediaStorageDirectoryStorageUID},
		dicom.MediaStorageSOPInstanceUIDTag: []string{d.fileSetUID},
		dicom.TransferSyntaxUIDTag:          []string{d.syntaxUID},
		dicom.ImplementationClassUIDTag:     []string{implementationClassUID},
		dicom.ImplementationVersionNameTag:  []string{implementationVersionName},
	})
}
