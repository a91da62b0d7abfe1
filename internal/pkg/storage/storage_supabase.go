// Copyright 2025 Arcade Team
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

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// SupabaseStorage talks to the Supabase Storage REST API.
type SupabaseStorage struct {
	client *resty.Client
	s      *Storage
}

func newSupabase(s *Storage) (*SupabaseStorage, error) {
	if s.Endpoint == "" {
		return nil, errors.New("supabase endpoint is required")
	}
	client := resty.New().
		SetBaseURL(endpointURL(s.Endpoint, true)).
		SetTimeout(60*time.Second).
		SetAuthToken(s.SecretKey).
		SetHeader("apikey", s.SecretKey)

	return &SupabaseStorage{client: client, s: s}, nil
}

func (sb *SupabaseStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	fullPath := getFullPath(sb.s.BasePath, path)
	resp, err := sb.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "true").
		SetBody(data).
		Post(fmt.Sprintf("/storage/v1/object/%s/%s", bucket, fullPath))
	if err != nil {
		return errors.Wrapf(err, "supabase upload %s/%s", bucket, fullPath)
	}
	if resp.IsError() {
		return fmt.Errorf("supabase upload %s/%s: status %d: %s", bucket, fullPath, resp.StatusCode(), resp.String())
	}
	return nil
}

func (sb *SupabaseStorage) PublicURL(bucket, path string) string {
	fullPath := getFullPath(sb.s.BasePath, path)
	if u, ok := sb.s.overrideURL(bucket, fullPath); ok {
		return u
	}
	return publicURL(endpointURL(sb.s.Endpoint, true)+"/storage/v1/object/public", bucket, fullPath)
}
