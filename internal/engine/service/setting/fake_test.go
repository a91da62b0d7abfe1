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
	"strings"
	"sync"

	"github.com/go-arcade/platform-settings/internal/engine/model"
	"github.com/go-arcade/platform-settings/internal/engine/repo"
)

// fakeRepo keeps at most one row and records every write
type fakeRepo struct {
	mu        sync.Mutex
	row       *model.Setting
	listErr   error
	getErr    error
	updateErr error

	gets    int
	updates []map[string]any
}

func newFakeRepo(row *model.Setting) *fakeRepo {
	return &fakeRepo{row: row}
}

func (f *fakeRepo) ListSettings(ctx context.Context) ([]*model.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.row == nil {
		return []*model.Setting{}, nil
	}
	cp := *f.row
	return []*model.Setting{&cp}, nil
}

func (f *fakeRepo) GetSingleton(ctx context.Context) (*model.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.row == nil {
		return nil, repo.ErrNotFound
	}
	cp := *f.row
	return &cp, nil
}

func (f *fakeRepo) UpdatePartial(ctx context.Context, id string, fields map[string]any) (*model.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fields)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.row == nil || f.row.ID != id {
		return nil, repo.ErrNotFound
	}
	for column, value := range fields {
		v := value.(string)
		switch column {
		case "platform_name":
			f.row.PlatformName = &v
		case "platform_description":
			f.row.PlatformDescription = &v
		case "plataform_logo":
			f.row.PlataformLogo = &v
		case "plataform_banner":
			f.row.PlataformBanner = &v
		case "plataform_banner_2":
			f.row.PlataformBanner2 = &v
		case "plataform_banner_3":
			f.row.PlataformBanner3 = &v
		case "register_banner":
			f.row.RegisterBanner = &v
		case "login_banner":
			f.row.LoginBanner = &v
		case "deposit_banner":
			f.row.DepositBanner = &v
		case "pluggou_base_url":
			f.row.PluggouBaseURL = &v
		case "pluggou_api_key":
			f.row.PluggouAPIKey = &v
		case "pluggou_organization_id":
			f.row.PluggouOrganizationID = &v
		default:
			panic("unexpected column " + column)
		}
	}
	cp := *f.row
	return &cp, nil
}

func (f *fakeRepo) Create(ctx context.Context, setting *model.Setting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.row = setting
	return nil
}

func (f *fakeRepo) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

type uploadCall struct {
	bucket      string
	path        string
	data        []byte
	contentType string
}

// fakeGateway fails uploads for the slots listed in failSlots
type fakeGateway struct {
	mu        sync.Mutex
	failSlots map[string]error
	uploads   []uploadCall
	urlCalls  int
	// afterUpload runs once each upload is recorded
	afterUpload func()
}

func (g *fakeGateway) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.afterUpload != nil {
		defer g.afterUpload()
	}
	g.uploads = append(g.uploads, uploadCall{bucket: bucket, path: path, data: data, contentType: contentType})
	for slot, err := range g.failSlots {
		if strings.HasPrefix(path, "settings/"+slot+"/") {
			return err
		}
	}
	return nil
}

func (g *fakeGateway) PublicURL(bucket, path string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.urlCalls++
	return "https://cdn.test/" + bucket + "/" + path
}

func (g *fakeGateway) uploadCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.uploads)
}
