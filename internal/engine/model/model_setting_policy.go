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

// FieldPolicy maps an accepted input key to the setting column it writes.
type FieldPolicy struct {
	Key    string
	Column string
}

// AssetSlots is the ordered allow-list of upload slots. Slots not listed here are ignored.
var AssetSlots = []FieldPolicy{
	{Key: "logo", Column: "plataform_logo"},
	{Key: "banner", Column: "plataform_banner"},
	{Key: "banner_2", Column: "plataform_banner_2"},
	{Key: "banner_3", Column: "plataform_banner_3"},
	{Key: "register_banner", Column: "register_banner"},
	{Key: "login_banner", Column: "login_banner"},
	{Key: "deposit_banner", Column: "deposit_banner"},
}

// TextFields are the general text settings accepted by UpdateSetting.
var TextFields = []FieldPolicy{
	{Key: "platform_name", Column: "platform_name"},
	{Key: "platform_description", Column: "platform_description"},
}

// PluggouFields are the payment gateway settings.
var PluggouFields = []FieldPolicy{
	{Key: "pluggou_base_url", Column: "pluggou_base_url"},
	{Key: "pluggou_api_key", Column: "pluggou_api_key"},
	{Key: "pluggou_organization_id", Column: "pluggou_organization_id"},
}

// Keys returns the input keys of a policy, in order.
func Keys(policy []FieldPolicy) []string {
	keys := make([]string, len(policy))
	for i, p := range policy {
		keys[i] = p.Key
	}
	return keys
}
