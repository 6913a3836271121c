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

// Package client is a typed client for the directory browse API.
package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/dcmkit/go-dicomdir/internal/api"
)

// Client calls a remote directory browse server
type Client struct {
	http *resty.Client
}

// New returns a Client for the server at baseURL
func New(baseURL string) *Client {
	return &Client{http: resty.New().SetBaseURL(baseURL)}
}

// FileSet fetches the file set summary
func (c *Client) FileSet(ctx context.Context) (*api.FileSet, error) {
	var out api.FileSet
	if err := c.get(ctx, "/fileset", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Patients fetches the root-level patient records
func (c *Client) Patients(ctx context.Context) ([]api.Patient, error) {
	var out []api.Patient
	return out, c.get(ctx, "/patients", &out)
}

// Studies fetches the studies of one patient
func (c *Client) Studies(ctx context.Context, patientID string) ([]api.Study, error) {
	var out []api.Study
	return out, c.get(ctx, fmt.Sprintf("/patients/%s/studies", patientID), &out)
}

// Series fetches the series of one study
func (c *Client) Series(ctx context.Context, studyUID string) ([]api.Series, error) {
	var out []api.Series
	return out, c.get(ctx, fmt.Sprintf("/studies/%s/series", studyUID), &out)
}

// Instances fetches the leaf records of one series
func (c *Client) Instances(ctx context.Context, seriesUID string) ([]api.Instance, error) {
	var out []api.Instance
	return out, c.get(ctx, fmt.Sprintf("/series/%s/instances", seriesUID), &out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	resp, err := c.http.R().SetContext(ctx).SetResult(out).Get(path)
	if err != nil {
		return fmt.Errorf("client: GET %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("client: GET %s: server returned %s", path, resp.Status())
	}
	return nil
}
