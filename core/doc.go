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


// Package core defines the domain model shared by all webdex packages.
//
// The central type is Document: one ingested web page identified by its
// source URL. Documents live inside named partitions (one per data
// source, see the storage package); the same URL may exist in several
// partitions without conflict, but within a partition a URL identifies
// exactly one Document.
//
// QueryCandidate and SummaryResult carry query-time results. A
// QueryCandidate's Rank is meaningful only relative to other candidates
// from the same partition; merging across partitions is done by
// configured partition order, never by score arithmetic.
package core
