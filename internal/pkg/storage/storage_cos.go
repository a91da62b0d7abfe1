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
	"net/http"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	"github.com/tencentyun/cos-go-sdk-v5"
)

// COSStorage keeps one client per bucket, COS addresses buckets by host name.
type COSStorage struct {
	s *Storage

	mu      sync.Mutex
	clients map[string]*cos.Client
}

func newCOS(s *Storage) (*COSStorage, error) {
	if _, err := url.Parse(endpointURL(s.Endpoint, true)); err != nil {
		return nil, err
	}
	return &COSStorage{s: s, clients: make(map[string]*cos.Client)}, nil
}

func (c *COSStorage) bucketHost(bucket string) string {
	return bucket + "." + hostOf(c.s.Endpoint)
}

func (c *COSStorage) client(bucket string) (*cos.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cl, ok := c.clients[bucket]; ok {
		return cl, nil
	}
	u, err := url.Parse("https://" + c.bucketHost(bucket))
	if err != nil {
		return nil, err
	}
	cl := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  c.s.AccessKey,
			SecretKey: c.s.SecretKey,
		},
	})
	c.clients[bucket] = cl
	return cl, nil
}

func (c *COSStorage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	fullPath := getFullPath(c.s.BasePath, path)
	cl, err := c.client(bucket)
	if err != nil {
		return errors.Wrapf(err, "cos bucket %s", bucket)
	}
	_, err = cl.Object.Put(ctx, fullPath, bytes.NewReader(data), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: contentType,
		},
	})
	if err != nil {
		return errors.Wrapf(err, "cos put %s/%s", bucket, fullPath)
	}
	return nil
}

func (c *COSStorage) PublicURL(bucket, path string) string {
	fullPath := getFullPath(c.s.BasePath, path)
	if u, ok := c.s.overrideURL(bucket, fullPath); ok {
		return u
	}
	return "https://" + c.bucketHost(bucket) + "/" + fullPath
}
