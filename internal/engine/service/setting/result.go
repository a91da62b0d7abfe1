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

// Result is the outcome of a settings operation. It renders as the flat
// {success, data, message} envelope with the error kind added on failure.
type Result[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"kind,omitempty"`

	err error
}

func succeed[T any](data T, message string) *Result[T] {
	return &Result[T]{Success: true, Data: data, Message: message}
}

// fail drops any data, failures always carry a null payload
func fail[T any](err error) *Result[T] {
	return &Result[T]{
		Success: false,
		Message: err.Error(),
		Kind:    KindOf(err),
		err:     err,
	}
}

// Err returns the failure cause, nil on success
func (r *Result[T]) Err() error {
	return r.err
}
