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
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type MinioStorage struct {
	Client *minio.Client
	s      *Storage
}

func newMinio(s *Storage) (*MinioStorage, error) {
	client, err := minio.New(hostOf(s.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseTLS,
		Region: s.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorage{Client: client, s: s}, nil
}

func (m *MinioStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	fullPath := getFullPath(m.s.BasePath, path)
	_, err := m.Client.PutObject(ctx, bucket, fullPath, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return errors.Wrapf(err, "minio put %s/%s", bucket, fullPath)
	}
	return nil
}

func (m *MinioStorage) PublicURL(bucket, path string) string {
	fullPath := getFullPath(m.s.BasePath, path)
	if u, ok := m.s.overrideURL(bucket, fullPath); ok {
		return u
	}
	return publicURL(endpointURL(m.s.Endpoint, m.s.UseTLS), bucket, fullPath)
}
