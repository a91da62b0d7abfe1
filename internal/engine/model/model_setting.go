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

package model

import "github.com/go-arcade/platform-settings/pkg/database"

// Setting 平台设置（单行表）
type Setting struct {
	BaseModel
	PlatformName          *string `gorm:"column:platform_name;type:varchar(255)" json:"platform_name"`
	PlatformDescription   *string `gorm:"column:platform_description;type:text" json:"platform_description"`
	PlataformLogo         *string `gorm:"column:plataform_logo;type:varchar(1024)" json:"plataform_logo"`
	PlataformBanner       *string `gorm:"column:plataform_banner;type:varchar(1024)" json:"plataform_banner"`
	PlataformBanner2      *string `gorm:"column:plataform_banner_2;type:varchar(1024)" json:"plataform_banner_2"`
	PlataformBanner3      *string `gorm:"column:plataform_banner_3;type:varchar(1024)" json:"plataform_banner_3"`
	RegisterBanner        *string `gorm:"column:register_banner;type:varchar(1024)" json:"register_banner"`
	LoginBanner           *string `gorm:"column:login_banner;type:varchar(1024)" json:"login_banner"`
	DepositBanner         *string `gorm:"column:deposit_banner;type:varchar(1024)" json:"deposit_banner"`
	PluggouBaseURL        *string `gorm:"column:pluggou_base_url;type:varchar(1024)" json:"pluggou_base_url"`
	PluggouAPIKey         *string `gorm:"column:pluggou_api_key;type:varchar(512)" json:"pluggou_api_key"`
	PluggouOrganizationID *string `gorm:"column:pluggou_organization_id;type:varchar(255)" json:"pluggou_organization_id"`
}

func (Setting) TableName() string {
	return "t_setting"
}

func init() {
	database.RegisterModels(&Setting{})
}
