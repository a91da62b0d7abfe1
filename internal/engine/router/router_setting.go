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
	"io"
	"mime/multipart"

	"github.com/go-arcade/platform-settings/internal/engine/model"
	"github.com/go-arcade/platform-settings/internal/engine/service/setting"
	"github.com/go-arcade/platform-settings/internal/pkg/storage"
	"github.com/go-arcade/platform-settings/pkg/http"
	"github.com/go-arcade/platform-settings/pkg/log"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) settingRouter(r fiber.Router, auth fiber.Handler) {
	settingsGroup := r.Group("/settings")
	{
		settingsGroup.Get("/", rt.getSettings)                        // GET /settings - list settings
		settingsGroup.Put("/", auth, rt.updateSetting)                // PUT /settings - update name and description
		settingsGroup.Put("/pluggou", auth, rt.updatePluggouSettings) // PUT /settings/pluggou - update pluggou credentials
		settingsGroup.Post("/images", auth, rt.uploadSettingImages)   // POST /settings/images - replace branding images
	}
}

// statusOf maps a result onto an HTTP status
func statusOf(success bool, kind setting.ErrorKind) int {
	if success {
		return fiber.StatusOK
	}
	switch kind {
	case setting.KindValidation:
		return fiber.StatusBadRequest
	case setting.KindNotFound:
		return fiber.StatusNotFound
	case setting.KindUpload:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func respond[T any](c *fiber.Ctx, res *setting.Result[T]) error {
	return http.WithRepStatus(c, statusOf(res.Success, res.Kind), res)
}

func (rt *Router) getSettings(c *fiber.Ctx) error {
	return respond(c, rt.Setting.GetSettings(c.UserContext()))
}

func (rt *Router) updateSetting(c *fiber.Ctx) error {
	data, err := parseFields(c)
	if err != nil {
		return http.WithRepErrMsg(c, fiber.StatusBadRequest, http.BadRequest.Code, "invalid request body", c.Path())
	}
	return respond(c, rt.Setting.UpdateSetting(c.UserContext(), data))
}

func (rt *Router) updatePluggouSettings(c *fiber.Ctx) error {
	data, err := parseFields(c)
	if err != nil {
		return http.WithRepErrMsg(c, fiber.StatusBadRequest, http.BadRequest.Code, "invalid request body", c.Path())
	}
	return respond(c, rt.Setting.UpdatePluggouSettings(c.UserContext(), data))
}

// parseFields accepts a JSON object or urlencoded form values
func parseFields(c *fiber.Ctx) (map[string]any, error) {
	data := make(map[string]any)
	if len(c.Body()) == 0 {
		return data, nil
	}
	if c.Is("json") {
		if err := c.BodyParser(&data); err != nil {
			return nil, err
		}
		return data, nil
	}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		data[string(key)] = string(value)
	})
	return data, nil
}

func (rt *Router) uploadSettingImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return http.WithRepErrMsg(c, fiber.StatusBadRequest, http.BadRequest.Code, "invalid multipart form", c.Path())
	}

	uploads := make(setting.UploadRequest)
	for _, slot := range model.AssetSlots {
		files := form.File[slot.Key]
		if len(files) == 0 {
			continue
		}
		upload, err := readUpload(files[0])
		if err != nil {
			log.Errorw("failed to read uploaded file", "slot", slot.Key, "error", err)
			return http.WithRepErrMsg(c, fiber.StatusBadRequest, http.RequestParameterParsingFailed.Code, "failed to read file "+slot.Key, c.Path())
		}
		uploads[slot.Key] = upload
	}

	return respond(c, rt.Setting.UploadSettingImages(c.UserContext(), uploads))
}

func readUpload(fh *multipart.FileHeader) (*storage.Upload, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &storage.Upload{
		Data:        data,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, nil
}
