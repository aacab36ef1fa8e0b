// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import "errors"

var (
	// ErrEmptyInput indicates that text passed to an embedder was empty
	// or whitespace-only. There is nothing meaningful to embed.
	ErrEmptyInput = errors.New("embedding input is empty")

	// ErrEmptyResponse indicates that the model backend answered without
	// usable content. Backend transport failures and malformed responses
	// are treated alike: the call did not produce a result.
	ErrEmptyResponse = errors.New("model returned no content")
)
