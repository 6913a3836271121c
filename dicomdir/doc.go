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

// Package dicomdir builds, loads and rewrites DICOM Media Storage Directory (DICOMDIR)
// files.
//
// A Directory maintains the Patient/Study/Series/instance record tree that indexes a DICOM
// file set. Files are registered with RegisterFile, which creates or reuses the hierarchy
// records that describe the file and appends a leaf record referencing it. Save serializes
// the tree as a standard DICOMDIR file, computing the byte offsets that link records
// together; Open reverses the process, reassembling the tree from the offsets stored in an
// existing file.
//
//	d := dicomdir.New()
//	d.SetFileSetID("ARCHIVE-2026")
//	err := d.RegisterFile(ds, dicomdir.RecordTypeImage, "IMAGES/IM000001")
//	...
//	err = d.SaveFile("DICOMDIR")
package dicomdir
