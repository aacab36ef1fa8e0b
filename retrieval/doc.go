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


// Package retrieval aggregates query results across all partitions.
//
// The aggregator embeds a query once and fans it out to every
// configured partition concurrently, so end-to-end latency is bounded
// by the slowest partition rather than the sum of all of them. A dead
// or slow partition contributes zero candidates; only a failure to
// embed the query itself aborts the operation, because without a query
// vector there is nothing to search with.
//
// Candidates are merged in partition configuration order with
// per-partition rank order preserved, then deduplicated by URL with
// first occurrence winning. The configured order therefore expresses
// source priority wherever collections overlap. Relevance scores are
// never compared across partitions.
package retrieval
