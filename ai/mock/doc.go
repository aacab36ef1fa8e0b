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


// Package mock provides test doubles for the ai interfaces.
//
// The default behaviors are deterministic: the embedder hashes the
// input text into a stable pseudo-random unit vector, and the
// summarizer echoes a prefix of the content it was given. Tests that
// need failures or specific vectors inject behavior through the
// public function fields (EmbedTextFunc, SummarizeFunc).
package mock
