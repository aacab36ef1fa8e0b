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


// Package badger implements storage.Partition on BadgerDB.
//
// All partitions share one Backend (one BadgerDB instance); each
// partition's documents live under the key prefix "part:<name>:doc:"
// followed by a fixed-width BLAKE2b digest of the document URL, which
// gives upsert-by-URL semantics for free. Queries scan the partition
// prefix and rank by cosine similarity; collections here are small
// enough (thousands of pages per source) that a linear scan beats the
// complexity of maintaining an ANN index.
package badger
