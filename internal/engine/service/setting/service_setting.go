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

package setting

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-arcade/platform-settings/internal/engine/model"
	"github.com/go-arcade/platform-settings/internal/engine/repo"
	"github.com/go-arcade/platform-settings/internal/pkg/storage"
	"github.com/go-arcade/platform-settings/pkg/id"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/go-arcade/platform-settings/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	opGetSettings           = "get_settings"
	opUploadSettingImages   = "upload_setting_images"
	opUpdateSetting         = "update_setting"
	opUpdatePluggouSettings = "update_pluggou_settings"
)

// UploadRequest maps slot names to submitted files
type UploadRequest map[string]*storage.Upload

// Option configures a SettingService
type Option func(*SettingService)

// WithBucket sets the object store bucket for asset uploads
func WithBucket(bucket string) Option {
	return func(s *SettingService) {
		s.bucket = bucket
	}
}

// WithTokenFunc replaces the unique token used in asset paths
func WithTokenFunc(fn func() string) Option {
	return func(s *SettingService) {
		s.newToken = fn
	}
}

// WithParallelUploads uploads slots concurrently, failing fast on the first error
func WithParallelUploads(parallel bool) Option {
	return func(s *SettingService) {
		s.parallel = parallel
	}
}

func WithMetrics(m *metrics.SettingMetrics) Option {
	return func(s *SettingService) {
		s.metrics = m
	}
}

type SettingService struct {
	settingRepo repo.ISettingRepository
	gateway     storage.Gateway
	bucket      string
	newToken    func() string
	parallel    bool
	metrics     *metrics.SettingMetrics
}

func NewSettingService(settingRepo repo.ISettingRepository, gateway storage.Gateway, opts ...Option) *SettingService {
	s := &SettingService{
		settingRepo: settingRepo,
		gateway:     gateway,
		newToken:    id.GetUlid,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSettings returns every stored settings row. An empty table is not an error.
func (ss *SettingService) GetSettings(ctx context.Context) *Result[[]*model.Setting] {
	return observe(ss, opGetSettings, func() *Result[[]*model.Setting] {
		return ss.getSettings(ctx)
	})
}

func (ss *SettingService) getSettings(ctx context.Context) *Result[[]*model.Setting] {
	settings, err := ss.settingRepo.ListSettings(ctx)
	if err != nil {
		log.Errorw("failed to list settings", "error", err)
		return fail[[]*model.Setting](repoError("failed to get settings", err))
	}
	if settings == nil {
		settings = make([]*model.Setting, 0)
	}
	return succeed(settings, "settings retrieved successfully")
}

// UploadSettingImages stores each recognized slot in the object store and
// writes the resulting public urls in a single update. Any upload failure
// skips the update; blobs already uploaded in the same call are left in place.
func (ss *SettingService) UploadSettingImages(ctx context.Context, uploads UploadRequest) *Result[*model.Setting] {
	return observe(ss, opUploadSettingImages, func() *Result[*model.Setting] {
		return ss.uploadSettingImages(ctx, uploads)
	})
}

func (ss *SettingService) uploadSettingImages(ctx context.Context, uploads UploadRequest) *Result[*model.Setting] {
	if ss.bucket == "" {
		return fail[*model.Setting](configError("storage bucket is not configured"))
	}

	slots := make([]model.FieldPolicy, 0, len(model.AssetSlots))
	for _, slot := range model.AssetSlots {
		if u, found := uploads[slot.Key]; found && u != nil {
			slots = append(slots, slot)
		}
	}
	if len(slots) == 0 {
		return fail[*model.Setting](validationError(msgNoValidFiles))
	}

	setting, err := ss.settingRepo.GetSingleton(ctx)
	if err != nil {
		log.Errorw("failed to get settings", "error", err)
		return fail[*model.Setting](repoError("failed to get settings", err))
	}

	urls, err := ss.uploadSlots(ctx, slots, uploads)
	if err != nil {
		return fail[*model.Setting](err)
	}

	fields := make(map[string]any, len(slots))
	for i, slot := range slots {
		fields[slot.Column] = urls[i]
	}

	updated, err := ss.settingRepo.UpdatePartial(ctx, setting.ID, fields)
	if err != nil {
		log.Errorw("failed to update setting images", "id", setting.ID, "error", err)
		return fail[*model.Setting](repoError("failed to update settings", err))
	}

	log.Infow("setting images updated", "id", setting.ID, "slots", len(slots))
	return succeed(updated, "images updated successfully")
}

// uploadSlots returns the public url of every slot, in slot order
func (ss *SettingService) uploadSlots(ctx context.Context, slots []model.FieldPolicy, uploads UploadRequest) ([]string, error) {
	urls := make([]string, len(slots))
	var (
		mu       sync.Mutex
		uploaded []string
	)

	upload := func(ctx context.Context, i int) error {
		slot := slots[i].Key
		u := uploads[slot]
		path := ss.assetPath(slot, u.Filename)
		err := ss.gateway.Upload(ctx, ss.bucket, path, u.Data, u.ContentTypeOrGuess())
		ss.metrics.ObserveUpload(slot, err)
		if err != nil {
			log.Errorw("failed to upload setting image", "slot", slot, "path", path, "error", err)
			return uploadError(slot, err)
		}
		urls[i] = ss.gateway.PublicURL(ss.bucket, path)
		mu.Lock()
		uploaded = append(uploaded, path)
		mu.Unlock()
		return nil
	}

	var err error
	if ss.parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range slots {
			g.Go(func() error { return upload(gctx, i) })
		}
		err = g.Wait()
	} else {
		for i := range slots {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = uploadError(slots[i].Key, ctxErr)
				break
			}
			if err = upload(ctx, i); err != nil {
				break
			}
		}
	}

	if err != nil {
		if len(uploaded) > 0 {
			log.Warnw("settings not updated, uploaded assets left orphaned", "bucket", ss.bucket, "paths", uploaded)
		}
		return nil, err
	}
	return urls, nil
}

func (ss *SettingService) assetPath(slot, filename string) string {
	return fmt.Sprintf("settings/%s/%s-%s", slot, ss.newToken(), storage.SanitizeFileName(filename))
}

// UpdateSetting applies the non-blank platform name and description
func (ss *SettingService) UpdateSetting(ctx context.Context, data map[string]any) *Result[*model.Setting] {
	return observe(ss, opUpdateSetting, func() *Result[*model.Setting] {
		return ss.updateFields(ctx, model.TextFields, data, "settings updated successfully")
	})
}

// UpdatePluggouSettings applies the non-blank pluggou integration fields
func (ss *SettingService) UpdatePluggouSettings(ctx context.Context, data map[string]any) *Result[*model.Setting] {
	return observe(ss, opUpdatePluggouSettings, func() *Result[*model.Setting] {
		return ss.updateFields(ctx, model.PluggouFields, data, "pluggou settings updated successfully")
	})
}

func (ss *SettingService) updateFields(ctx context.Context, policy []model.FieldPolicy, data map[string]any, message string) *Result[*model.Setting] {
	fields := filterText(policy, data)
	if len(fields) == 0 {
		return fail[*model.Setting](validationError(msgNoValidFields))
	}

	setting, err := ss.settingRepo.GetSingleton(ctx)
	if err != nil {
		log.Errorw("failed to get settings", "error", err)
		return fail[*model.Setting](repoError("failed to get settings", err))
	}

	updated, err := ss.settingRepo.UpdatePartial(ctx, setting.ID, fields)
	if err != nil {
		log.Errorw("failed to update settings", "id", setting.ID, "error", err)
		return fail[*model.Setting](repoError("failed to update settings", err))
	}

	log.Infow("settings updated", "id", setting.ID, "fields", len(fields))
	return succeed(updated, message)
}

// filterText keeps string values that are non-blank after trimming, keyed by column.
// Keys outside the policy and values of other types are dropped.
func filterText(policy []model.FieldPolicy, data map[string]any) map[string]any {
	fields := make(map[string]any, len(policy))
	for _, p := range policy {
		raw, found := data[p.Key]
		if !found {
			continue
		}
		s, isString := raw.(string)
		if !isString {
			continue
		}
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		fields[p.Column] = s
	}
	return fields
}

func observe[T any](ss *SettingService, operation string, run func() *Result[T]) *Result[T] {
	start := time.Now()
	res := run()
	ss.metrics.ObserveOperation(operation, res.Success, time.Since(start))
	return res
}
