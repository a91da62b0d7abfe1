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
	"github.com/go-arcade/platform-settings/internal/engine/repo"
	"github.com/go-arcade/platform-settings/internal/pkg/storage"
	"github.com/go-arcade/platform-settings/pkg/metrics"
	"github.com/google/wire"
)

// Conf holds service level switches
type Conf struct {
	ParallelUploads bool
}

// ProviderSet 提供设置服务相关的依赖
var ProviderSet = wire.NewSet(ProvideSettingService)

func ProvideSettingService(
	settingRepo repo.ISettingRepository,
	gateway storage.Gateway,
	storageConf *storage.Storage,
	conf Conf,
	m *metrics.SettingMetrics,
) *SettingService {
	return NewSettingService(settingRepo, gateway,
		WithBucket(storageConf.Bucket),
		WithParallelUploads(conf.ParallelUploads),
		WithMetrics(m),
	)
}
