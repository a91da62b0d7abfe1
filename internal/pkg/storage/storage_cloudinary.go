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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/pkg/errors"
)

// CloudinaryStorage maps bucket to a cloudinary folder and the object path,
// minus its extension, to the public id.
type CloudinaryStorage struct {
	uploader *uploader.API
	s        *Storage
}

func newCloudinary(s *Storage) (*CloudinaryStorage, error) {
	cfg, err := config.NewFromParams(s.CloudName, s.AccessKey, s.SecretKey)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStorage{uploader: up, s: s}, nil
}

func publicID(fullPath string) string {
	return strings.TrimSuffix(fullPath, filepath.Ext(fullPath))
}

func (c *CloudinaryStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	fullPath := getFullPath(c.s.BasePath, path)
	overwrite := true
	_, err := c.uploader.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:    bucket,
		PublicID:  publicID(fullPath),
		Overwrite: &overwrite,
	})
	if err != nil {
		return errors.Wrapf(err, "cloudinary upload %s/%s", bucket, fullPath)
	}
	return nil
}

func (c *CloudinaryStorage) PublicURL(bucket, path string) string {
	fullPath := getFullPath(c.s.BasePath, path)
	if u, ok := c.s.overrideURL(bucket, fullPath); ok {
		return u
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s/%s", c.s.CloudName, bucket, fullPath)
}
