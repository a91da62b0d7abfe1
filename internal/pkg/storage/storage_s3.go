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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

type S3Storage struct {
	Client *s3.Client
	s      *Storage
}

func newS3(s *Storage) (*S3Storage, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID:     s.AccessKey,
				SecretAccessKey: s.SecretKey,
			},
		}),
		config.WithRegion(s.Region),
	}
	if s.Endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(endpointURL(s.Endpoint, s.UseTLS)))
	}
	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// custom endpoints (R2, ceph, localstack) need path-style addressing
		o.UsePathStyle = s.Endpoint != ""
	})
	return &S3Storage{Client: client, s: s}, nil
}

func (s *S3Storage) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	fullPath := getFullPath(s.s.BasePath, path)
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(fullPath),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return errors.Wrapf(err, "s3 put %s/%s", bucket, fullPath)
	}
	return nil
}

func (s *S3Storage) PublicURL(bucket, path string) string {
	fullPath := getFullPath(s.s.BasePath, path)
	if u, ok := s.s.overrideURL(bucket, fullPath); ok {
		return u
	}
	if s.s.Endpoint != "" {
		return publicURL(endpointURL(s.s.Endpoint, s.s.UseTLS), bucket, fullPath)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.s.Region, fullPath)
}
