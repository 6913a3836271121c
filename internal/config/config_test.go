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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
fileSetID: ARCHIVE01
transferSyntax: 1.2.840.10008.1.2
sources:
  - images/*.dcm
  - reports/*.dcm
output: out/DICOMDIR
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "ARCHIVE01", m.FileSetID)
	assert.Equal(t, "1.2.840.10008.1.2", m.TransferSyntaxUID)
	assert.Equal(t, []string{"images/*.dcm", "reports/*.dcm"}, m.Sources)
	assert.Equal(t, "out/DICOMDIR", m.Output)
}

func TestLoadManifestDefaultsOutput(t *testing.T) {
	path := writeManifest(t, `
fileSetID: ARCHIVE01
sources: ["*.dcm"]
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "DICOMDIR", m.Output)
}

func TestLoadManifestValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing file set ID", "sources: ['*.dcm']"},
		{"missing sources", "fileSetID: A"},
		{"invalid yaml", "fileSetID: [unterminated"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DICOMDIR_LISTEN_ADDR", ":9999")
	t.Setenv("DICOMDIR_REMOTE_ADDR", "")

	cfg := FromEnv()
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, defaultRemoteAddr, cfg.RemoteAddr)
}
