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

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type GCSStorage struct {
	Client *storage.Client
	s      *Storage
}

func newGCS(s *Storage) (*GCSStorage, error) {
	var opts []option.ClientOption

	// 如果提供了 AccessKey，将其作为 credentials JSON 文件路径
	if s.AccessKey != "" {
		opts = append(opts, option.WithCredentialsFile(s.AccessKey))
	}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	return &GCSStorage{Client: client, s: s}, nil
}

func (g *GCSStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	fullPath := getFullPath(g.s.BasePath, path)
	writer := g.Client.Bucket(bucket).Object(fullPath).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return errors.Wrapf(err, "gcs write %s/%s", bucket, fullPath)
	}
	if err := writer.Close(); err != nil {
		return errors.Wrapf(err, "gcs close %s/%s", bucket, fullPath)
	}
	return nil
}

func (g *GCSStorage) PublicURL(bucket, path string) string {
	fullPath := getFullPath(g.s.BasePath, path)
	if u, ok := g.s.overrideURL(bucket, fullPath); ok {
		return u
	}
	return publicURL("https://storage.googleapis.com", bucket, fullPath)
}
