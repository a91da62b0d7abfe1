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
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".avif": "image/avif",
	".bmp":  "image/bmp",
}

// ContentTypeOrGuess returns the declared type, or one derived from the file extension.
func (u *Upload) ContentTypeOrGuess() string {
	if u.ContentType != "" {
		return u.ContentType
	}
	return GetContentType(u.Filename)
}

func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if contentType, ok := contentTypes[ext]; ok {
		return contentType
	}
	return "application/octet-stream"
}

// SanitizeFileName strips path separators and characters that are unsafe in object keys.
func SanitizeFileName(name string) string {
	// replace spaces with underscores
	name = strings.ReplaceAll(name, " ", "_")

	// remove invalid characters
	invalidChars := []string{"/", "\\", "..", "<", ">", ":", "\"", "|", "?", "*", "#", "%"}
	for _, char := range invalidChars {
		name = strings.ReplaceAll(name, char, "")
	}

	// limit length, keep the extension
	if len(name) > 50 {
		ext := filepath.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		cut := 50 - len(ext)
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut] + ext
	}

	if name == "" {
		name = "file"
	}
	return name
}
