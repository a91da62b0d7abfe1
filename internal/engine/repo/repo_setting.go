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

package repo

import (
	"context"
	"time"

	"github.com/go-arcade/platform-settings/internal/engine/model"
	"github.com/go-arcade/platform-settings/pkg/cache"
	"github.com/go-arcade/platform-settings/pkg/database"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound is returned when the singleton settings row does not exist
var ErrNotFound = errors.New("settings record not found")

type ISettingRepository interface {
	ListSettings(ctx context.Context) ([]*model.Setting, error)
	GetSingleton(ctx context.Context) (*model.Setting, error)
	UpdatePartial(ctx context.Context, id string, fields map[string]any) (*model.Setting, error)
	Create(ctx context.Context, setting *model.Setting) error
}

const (
	settingListCacheKey = "settings:list"
	// 缓存过期时间（10分钟）
	settingCacheTTL = 10 * time.Minute
)

type SettingRepo struct {
	database.IDatabase
	cache.ICache
	listQuery *cache.CachedQuery[[]*model.Setting]
}

// NewSettingRepo creates the gorm backed repository. A nil cache disables read caching.
func NewSettingRepo(db database.IDatabase, c cache.ICache) ISettingRepository {
	sr := &SettingRepo{
		IDatabase: db,
		ICache:    c,
	}
	sr.listQuery = cache.NewCachedQuery(
		c,
		settingListCacheKey,
		sr.listFromDB,
		cache.WithTTL[[]*model.Setting](settingCacheTTL),
		cache.WithLogPrefix[[]*model.Setting]("[SettingRepo]"),
	)
	return sr
}

func (sr *SettingRepo) listFromDB(ctx context.Context) ([]*model.Setting, error) {
	settings := make([]*model.Setting, 0)
	err := database.ReadDB(sr.Database()).WithContext(ctx).
		Order("created_at ASC").
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// ListSettings returns every settings row, possibly none
func (sr *SettingRepo) ListSettings(ctx context.Context) ([]*model.Setting, error) {
	settings, err := sr.listQuery.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list settings")
	}
	if settings == nil {
		settings = make([]*model.Setting, 0)
	}
	return settings, nil
}

// GetSingleton returns the earliest created row. It never creates one.
func (sr *SettingRepo) GetSingleton(ctx context.Context) (*model.Setting, error) {
	var setting model.Setting
	err := database.WriteDB(sr.Database()).WithContext(ctx).
		Order("created_at ASC").
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get settings")
	}
	return &setting, nil
}

// UpdatePartial writes only the given columns of row id and returns the reloaded row
func (sr *SettingRepo) UpdatePartial(ctx context.Context, id string, fields map[string]any) (*model.Setting, error) {
	var updated model.Setting
	err := sr.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Setting{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "update settings %s", id)
	}

	sr.invalidate(ctx)
	return &updated, nil
}

func (sr *SettingRepo) Create(ctx context.Context, setting *model.Setting) error {
	if err := sr.Database().WithContext(ctx).Create(setting).Error; err != nil {
		return errors.Wrap(err, "create settings")
	}
	sr.invalidate(ctx)
	return nil
}

func (sr *SettingRepo) invalidate(ctx context.Context) {
	if err := sr.listQuery.Invalidate(ctx); err != nil {
		log.Warnw("failed to invalidate settings cache", "error", err)
	}
}
