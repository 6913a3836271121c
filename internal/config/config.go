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

// Package config loads CLI settings from the environment and build manifests from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr = ":8742"
	defaultRemoteAddr = "http://localhost:8742"
)

// Config holds the environment-driven settings of the CLI
type Config struct {
	// ListenAddr is the address the browse server binds to
	ListenAddr string

	// RemoteAddr is the base URL of a remote browse server
	RemoteAddr string
}

// FromEnv reads configuration from the process environment, after loading a .env file from
// the working directory when one exists.
func FromEnv() *Config {
	// a missing .env file is not an error, the environment alone may be complete
	_ = godotenv.Load()

	return &Config{
		ListenAddr: envOr("DICOMDIR_LISTEN_ADDR", defaultListenAddr),
		RemoteAddr: envOr("DICOMDIR_REMOTE_ADDR", defaultRemoteAddr),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Manifest describes one directory build: which files to index and how to write the result
type Manifest struct {
	// FileSetID identifies the file set, must be non-empty
	FileSetID string `yaml:"fileSetID"`

	// TransferSyntaxUID selects the encoding of the directory file; empty means Explicit VR
	// Little Endian
	TransferSyntaxUID string `yaml:"transferSyntax"`

	// Sources are glob patterns of DICOM files to register, relative to the manifest
	Sources []string `yaml:"sources"`

	// Output is the path the directory file is written to
	Output string `yaml:"output"`
}

// LoadManifest reads and validates a YAML build manifest
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("config: parsing manifest %s: %w", path, err)
	}

	if m.FileSetID == "" {
		return nil, fmt.Errorf("config: manifest %s: fileSetID is required", path)
	}
	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("config: manifest %s: at least one source pattern is required", path)
	}
	if m.Output == "" {
		m.Output = "DICOMDIR"
	}
	return &m, nil
}
