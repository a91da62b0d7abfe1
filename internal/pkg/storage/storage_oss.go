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
	"sync"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

type OSSStorage struct {
	Client *oss.Client
	s      *Storage

	mu      sync.Mutex
	buckets map[string]*oss.Bucket
}

func newOSS(s *Storage) (*OSSStorage, error) {
	client, err := oss.New(endpointURL(s.Endpoint, true), s.AccessKey, s.SecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorage{
		Client:  client,
		s:       s,
		buckets: make(map[string]*oss.Bucket),
	}, nil
}

func (o *OSSStorage) bucket(name string) (*oss.Bucket, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if b, ok := o.buckets[name]; ok {
		return b, nil
	}
	b, err := o.Client.Bucket(name)
	if err != nil {
		return nil, err
	}
	o.buckets[name] = b
	return b, nil
}

func (o *OSSStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	fullPath := getFullPath(o.s.BasePath, path)
	b, err := o.bucket(bucket)
	if err != nil {
		return errors.Wrapf(err, "oss bucket %s", bucket)
	}
	if err := b.PutObject(fullPath, bytes.NewReader(data), oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return errors.Wrapf(err, "oss put %s/%s", bucket, fullPath)
	}
	return nil
}

func (o *OSSStorage) PublicURL(bucket, path string) string {
	fullPath := getFullPath(o.s.BasePath, path)
	if u, ok := o.s.overrideURL(bucket, fullPath); ok {
		return u
	}
	return "https://" + bucket + "." + hostOf(o.s.Endpoint) + "/" + fullPath
}
