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


// Package ingestion writes crawled pages into a vector store partition.
//
// For each (url, raw text) pair the pipeline cleans the text, embeds
// it, and upserts a Document keyed by the URL. The three outcomes
// (stored, skipped for too little content, failed on embedding or
// storage error) are reported per input; nothing about one URL's fate
// affects another's. Batches run through a bounded ants worker pool so
// concurrent embedding calls stay within backend rate limits.
package ingestion
