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


// Package textclean normalizes scraped web page text before embedding.
//
// Raw page text arrives full of noise: non-ASCII glyphs, email
// addresses, prices, dates, and symbol runs. None of it helps semantic
// similarity search, and email addresses should never be persisted at
// all. Clean reduces input to lowercase-insensitive word content with
// single-space separation so that identical pages always produce
// identical stored text.
package textclean
