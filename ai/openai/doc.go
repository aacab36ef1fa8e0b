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


// Package openai implements the ai interfaces against any
// OpenAI-compatible API (Ollama, LocalAI, vLLM, OpenAI itself).
//
// Embeddings and summarization may be served by different hosts and
// models; see ai.Config. The client uses langchaingo under the hood,
// with a placeholder token for local services that skip authentication.
package openai
