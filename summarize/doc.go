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


// Package summarize turns an aggregated retrieval context into an answer.
//
// Summarization is strictly best-effort: when the chat model is down
// the summary degrades to a fixed fallback message while the retrieved
// sources pass through untouched. A user who cannot get a summary can
// still read the snippets.
package summarize
