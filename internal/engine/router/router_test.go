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

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/platform-settings/internal/engine/model"
	"github.com/go-arcade/platform-settings/internal/engine/repo"
	"github.com/go-arcade/platform-settings/internal/engine/service/setting"
	"github.com/go-arcade/platform-settings/pkg/database"
	"github.com/go-arcade/platform-settings/pkg/http"
	"github.com/go-arcade/platform-settings/pkg/http/jwt"
	"github.com/go-arcade/platform-settings/pkg/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type memGateway struct {
	mu      sync.Mutex
	objects map[string][]byte
	fail    bool
}

func (g *memGateway) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	if g.fail {
		return errors.New("store unavailable")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[bucket+"/"+path] = data
	return nil
}

func (g *memGateway) PublicURL(bucket, path string) string {
	return "https://cdn.test/" + bucket + "/" + path
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
}

type fixture struct {
	app     *fiber.App
	repo    repo.ISettingRepository
	gateway *memGateway
}

func newFixture(t *testing.T, secret string, seed bool) *fixture {
	t.Helper()
	manager, err := database.NewManager(database.Database{
		Driver:       database.DriverSQLite,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		SQLite: database.SQLiteConfig{
			Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })
	require.NoError(t, database.AutoMigrate(manager.DB()))

	settingRepo := repo.NewSettingRepo(database.NewDatabaseAdapter(manager), nil)
	if seed {
		name := "Arena"
		require.NoError(t, settingRepo.Create(context.Background(), &model.Setting{PlatformName: &name}))
	}

	gw := &memGateway{objects: make(map[string][]byte)}
	svc := setting.NewSettingService(settingRepo, gw,
		setting.WithBucket("assets"),
		setting.WithTokenFunc(func() string { return "tok" }),
	)

	httpConf := &http.Http{AccessLog: false, Auth: http.Auth{SecretKey: secret}}
	httpConf.SetDefaults()
	server := metrics.NewServer(metrics.MetricsConfig{})

	return &fixture{
		app:     NewRouter(httpConf, svc, server).Router(),
		repo:    settingRepo,
		gateway: gw,
	}
}

func do(t *testing.T, app *fiber.App, req *nethttp.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(body) > 0 && body[0] == '{' {
		require.NoError(t, sonic.Unmarshal(body, &env))
	}
	return resp.StatusCode, env
}

func jsonRequest(method, target, body string) *nethttp.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, files map[string]string) *nethttp.Request {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for field, filename := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/settings/images", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, fiber.StatusOK, statusOf(true, ""))
	assert.Equal(t, fiber.StatusBadRequest, statusOf(false, setting.KindValidation))
	assert.Equal(t, fiber.StatusNotFound, statusOf(false, setting.KindNotFound))
	assert.Equal(t, fiber.StatusBadGateway, statusOf(false, setting.KindUpload))
	assert.Equal(t, fiber.StatusInternalServerError, statusOf(false, setting.KindConfig))
	assert.Equal(t, fiber.StatusInternalServerError, statusOf(false, setting.KindPersistence))
}

func TestRouter_Health(t *testing.T) {
	f := newFixture(t, "", false)
	resp, err := f.app.Test(httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestRouter_Metrics(t *testing.T) {
	f := newFixture(t, "", false)
	resp, err := f.app.Test(httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRouter_NotFound(t *testing.T) {
	f := newFixture(t, "", false)
	resp, err := f.app.Test(httptest.NewRequest(nethttp.MethodGet, "/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRouter_GetSettings_Empty(t *testing.T) {
	f := newFixture(t, "", false)
	status, env := do(t, f.app, httptest.NewRequest(nethttp.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.JSONEq(t, "[]", string(env.Data))
	assert.Equal(t, "settings retrieved successfully", env.Message)
}

func TestRouter_UpdateSetting(t *testing.T) {
	f := newFixture(t, "", true)
	status, env := do(t, f.app, jsonRequest(nethttp.MethodPut, "/api/v1/settings",
		`{"platform_name":"  New Arena ","platform_description":"   ","unknown":"x"}`))
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "settings updated successfully", env.Message)

	var row model.Setting
	require.NoError(t, sonic.Unmarshal(env.Data, &row))
	require.NotNil(t, row.PlatformName)
	assert.Equal(t, "New Arena", *row.PlatformName)
	assert.Nil(t, row.PlatformDescription)
}

func TestRouter_UpdateSetting_Form(t *testing.T) {
	f := newFixture(t, "", true)
	req := httptest.NewRequest(nethttp.MethodPut, "/api/v1/settings", strings.NewReader("platform_description=Fast+games"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	status, env := do(t, f.app, req)
	require.Equal(t, fiber.StatusOK, status)

	var row model.Setting
	require.NoError(t, sonic.Unmarshal(env.Data, &row))
	require.NotNil(t, row.PlatformDescription)
	assert.Equal(t, "Fast games", *row.PlatformDescription)
}

func TestRouter_UpdateSetting_NoValidFields(t *testing.T) {
	f := newFixture(t, "", true)
	status, env := do(t, f.app, jsonRequest(nethttp.MethodPut, "/api/v1/settings", `{"plataform_name":"legacy"}`))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "validation", env.Kind)
	assert.Equal(t, "no valid fields to update", env.Message)
}

func TestRouter_UpdateSetting_InvalidBody(t *testing.T) {
	f := newFixture(t, "", true)
	resp, err := f.app.Test(jsonRequest(nethttp.MethodPut, "/api/v1/settings", `{not json`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRouter_UpdateSetting_NoRow(t *testing.T) {
	f := newFixture(t, "", false)
	status, env := do(t, f.app, jsonRequest(nethttp.MethodPut, "/api/v1/settings", `{"platform_name":"x"}`))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Kind)
}

func TestRouter_UpdatePluggouSettings(t *testing.T) {
	f := newFixture(t, "", true)
	status, env := do(t, f.app, jsonRequest(nethttp.MethodPut, "/api/v1/settings/pluggou",
		`{"pluggou_api_key":"k-1","pluggou_base_url":42}`))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "pluggou settings updated successfully", env.Message)

	var row model.Setting
	require.NoError(t, sonic.Unmarshal(env.Data, &row))
	require.NotNil(t, row.PluggouAPIKey)
	assert.Equal(t, "k-1", *row.PluggouAPIKey)
	assert.Nil(t, row.PluggouBaseURL)
}

func TestRouter_UploadSettingImages(t *testing.T) {
	f := newFixture(t, "", true)
	status, env := do(t, f.app, multipartRequest(t, map[string]string{
		"logo":    "My Logo.png",
		"favicon": "fav.ico",
	}))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "images updated successfully", env.Message)

	var row model.Setting
	require.NoError(t, sonic.Unmarshal(env.Data, &row))
	require.NotNil(t, row.PlataformLogo)
	assert.Equal(t, "https://cdn.test/assets/settings/logo/tok-My_Logo.png", *row.PlataformLogo)
	assert.Len(t, f.gateway.objects, 1)
	assert.Contains(t, f.gateway.objects, "assets/settings/logo/tok-My_Logo.png")
}

func TestRouter_UploadSettingImages_NoValidFiles(t *testing.T) {
	f := newFixture(t, "", true)
	status, env := do(t, f.app, multipartRequest(t, map[string]string{"favicon": "fav.ico"}))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "no valid files submitted", env.Message)
	assert.Empty(t, f.gateway.objects)
}

func TestRouter_UploadSettingImages_StoreFailure(t *testing.T) {
	f := newFixture(t, "", true)
	f.gateway.fail = true
	status, env := do(t, f.app, multipartRequest(t, map[string]string{"banner": "b.png"}))
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "upload", env.Kind)
	assert.Contains(t, env.Message, "banner")
	assert.Contains(t, env.Message, "store unavailable")

	settings, err := f.repo.ListSettings(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Nil(t, settings[0].PlataformBanner)
}

func TestRouter_Auth(t *testing.T) {
	f := newFixture(t, testSecret, true)

	// reads stay public
	status, _ := do(t, f.app, httptest.NewRequest(nethttp.MethodGet, "/api/v1/settings", nil))
	assert.Equal(t, fiber.StatusOK, status)

	resp, err := f.app.Test(jsonRequest(nethttp.MethodPut, "/api/v1/settings", `{"platform_name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token, err := jwt.GenToken("admin", []byte(testSecret), time.Minute)
	require.NoError(t, err)
	req := jsonRequest(nethttp.MethodPut, "/api/v1/settings", `{"platform_name":"x"}`)
	req.Header.Set("Authorization", "Bearer "+token)
	status, env := do(t, f.app, req)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
}
