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


// Package storage defines the partition abstraction over per-source
// document collections, plus the MUS serialization used by persistent
// implementations.
//
// A Partition supports exactly two data-path operations: upsert-by-URL
// and nearest-neighbor query. Everything else about a backing store
// (layout, indexes, compaction) is implementation-defined. The
// storage/badger subpackage provides the production implementation;
// its in-memory mode doubles as the test fixture.
package storage
