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

// Package dicom provides the data structures and binary codecs for manipulating the DICOM
// file format as specified in
// [http://dicom.nema.org/medical/dicom/current/output/pdf/part05.pdf] to the extent needed
// by a Media Storage Directory.
//
// The package offers two levels of abstraction. The low level API consists of streaming
// interfaces, DataElementIterator and SequenceIterator, that consume input as elements are
// requested and report absolute byte offsets of sequence items. The high level API consists
// of Parse, which drains the streaming interfaces into a DataSet of buffered DataElements,
// and DataElementWriter, which serializes DataSets back to their binary form.
package dicom
