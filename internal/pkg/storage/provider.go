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
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/google/wire"
)

// ProviderSet 提供存储层相关的依赖
var ProviderSet = wire.NewSet(ProvideGateway)

// ProvideGateway 根据配置提供存储网关
func ProvideGateway(conf *Storage) (Gateway, error) {
	gw, err := NewGateway(conf)
	if err != nil {
		return nil, err
	}
	log.Infow("storage gateway initialized",
		"provider", conf.Provider,
		"bucket", conf.Bucket,
	)
	return gw, nil
}
