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
	"path/filepath"
	"strings"
)

// 存储类型常量
const (
	StorageSupabase   = "supabase"
	StorageMinio      = "minio"
	StorageS3         = "s3"
	StorageOSS        = "oss"
	StorageGCS        = "gcs"
	StorageCOS        = "cos"
	StorageCloudinary = "cloudinary"
)

// Gateway is the object store used for platform assets.
// Upload overwrites any existing object at path; PublicURL never touches the network.
type Gateway interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	PublicURL(bucket, path string) string
}

// Upload is one submitted file.
type Upload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Storage 存储配置结构
type Storage struct {
	Provider      string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Region        string
	Bucket        string
	UseTLS        bool
	BasePath      string
	PublicBaseURL string
	// CloudName is only used by cloudinary
	CloudName string
}

func (s *Storage) SetDefaults() {
	if s.Provider == "" {
		s.Provider = StorageSupabase
	}
}

// NewGateway 根据配置创建存储网关实例
func NewGateway(s *Storage) (Gateway, error) {
	switch s.Provider {
	case StorageSupabase:
		return newSupabase(s)
	case StorageMinio:
		return newMinio(s)
	case StorageS3:
		return newS3(s)
	case StorageOSS:
		return newOSS(s)
	case StorageGCS:
		return newGCS(s)
	case StorageCOS:
		return newCOS(s)
	case StorageCloudinary:
		return newCloudinary(s)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

func getFullPath(basePath, objectName string) string {
	if basePath == "" {
		return strings.TrimPrefix(objectName, "/")
	}
	// 清理路径，避免双斜杠
	basePath = strings.Trim(basePath, "/")
	objectName = strings.TrimPrefix(objectName, "/")
	return filepath.ToSlash(filepath.Join(basePath, objectName))
}

// publicURL joins root, bucket and object path. An empty bucket is skipped.
func publicURL(root, bucket, objectName string) string {
	root = strings.TrimRight(root, "/")
	if bucket == "" {
		return root + "/" + objectName
	}
	return root + "/" + bucket + "/" + objectName
}

// overrideURL returns the configured public root joined with the object path, if any.
func (s *Storage) overrideURL(bucket, objectName string) (string, bool) {
	if s.PublicBaseURL == "" {
		return "", false
	}
	return publicURL(s.PublicBaseURL, bucket, objectName), true
}

func endpointURL(endpoint string, useTLS bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return strings.TrimRight(endpoint, "/")
	}
	if useTLS {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

func hostOf(endpoint string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return strings.TrimRight(host, "/")
}
