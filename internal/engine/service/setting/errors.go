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
	"errors"

	"github.com/go-arcade/platform-settings/internal/engine/repo"
)

// ErrorKind classifies a failed operation
type ErrorKind string

const (
	KindConfig      ErrorKind = "config"
	KindNotFound    ErrorKind = "not_found"
	KindValidation  ErrorKind = "validation"
	KindUpload      ErrorKind = "upload"
	KindPersistence ErrorKind = "persistence"
)

const (
	msgNoValidFiles  = "no valid files submitted"
	msgNoValidFields = "no valid fields to update"
)

// Error is returned by every failed settings operation. Slot is set for upload failures.
type Error struct {
	Kind    ErrorKind
	Slot    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Cause == nil:
		return e.Message
	case e.Message == "":
		return e.Cause.Error()
	default:
		return e.Message + ": " + e.Cause.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of err, KindPersistence for foreign errors
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindPersistence
}

func configError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func uploadError(slot string, cause error) *Error {
	return &Error{Kind: KindUpload, Slot: slot, Message: "failed to upload " + slot, Cause: cause}
}

// repoError maps repository failures onto NotFound or Persistence
func repoError(message string, err error) *Error {
	if errors.Is(err, repo.ErrNotFound) {
		return &Error{Kind: KindNotFound, Cause: err}
	}
	return &Error{Kind: KindPersistence, Message: message, Cause: err}
}
