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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/webdex/core"
)

// vectorSer serializes embedding vectors as length-prefixed float32 slices.
var vectorSer = ord.NewSliceSer[float32](varint.Float32)

// documentSer serializes core.Document in MUS format. Field order is
// part of the on-disk layout and must not change.
type documentSer struct{}

// DocumentMUS is the MUS serializer for core.Document.
var DocumentMUS = documentSer{}

var _ mus.Serializer[core.Document] = DocumentMUS

func (documentSer) Marshal(doc core.Document, bs []byte) (n int) {
	n = ord.String.Marshal(doc.URL, bs)
	n += ord.String.Marshal(doc.Text, bs[n:])
	n += vectorSer.Marshal(doc.Vector, bs[n:])
	n += raw.TimeUnixMicro.Marshal(doc.FetchedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(doc.UpdatedAt, bs[n:])
	return n
}

func (documentSer) Unmarshal(bs []byte) (doc core.Document, n int, err error) {
	var n1 int
	doc.URL, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	doc.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.Vector, n1, err = vectorSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.FetchedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	doc.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (documentSer) Size(doc core.Document) (size int) {
	size = ord.String.Size(doc.URL)
	size += ord.String.Size(doc.Text)
	size += vectorSer.Size(doc.Vector)
	size += raw.TimeUnixMicro.Size(doc.FetchedAt)
	size += raw.TimeUnixMicro.Size(doc.UpdatedAt)
	return size
}

func (documentSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorSer.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, DocumentMUS.Size(*doc))
	DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &doc, nil
}
