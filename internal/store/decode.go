package store

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"censusapi/internal/census"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeRecords parses a record file. The file is either an object keyed by
// arbitrary IDs, whose keys are discarded, or an array of records. Records
// are returned in file order.
func DecodeRecords(data []byte) ([]census.Record, error) {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	var out []census.Record
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		iter.ReadObjectCB(func(it *jsoniter.Iterator, _ string) bool {
			out = append(out, readRecord(it))
			return it.Error == nil
		})
	case jsoniter.ArrayValue:
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			out = append(out, readRecord(it))
			return it.Error == nil
		})
	default:
		return nil, errors.New("record file must hold a JSON object or array")
	}

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("decode records: %w", iter.Error)
	}
	return out, nil
}

// readRecord reads one {label, value} object. Numbers are kept as their
// literal text and null becomes the empty string; anything else that is not
// an object yields an empty record.
func readRecord(it *jsoniter.Iterator) census.Record {
	var rec census.Record
	if it.WhatIsNext() != jsoniter.ObjectValue {
		it.Skip()
		return rec
	}

	it.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		switch field {
		case "label":
			rec.Label = readScalar(it)
		case "value":
			rec.Value = readScalar(it)
		default:
			it.Skip()
		}
		return it.Error == nil
	})
	return rec
}

func readScalar(it *jsoniter.Iterator) string {
	switch it.WhatIsNext() {
	case jsoniter.StringValue:
		return it.ReadString()
	case jsoniter.NumberValue:
		return it.ReadNumber().String()
	case jsoniter.NilValue:
		it.ReadNil()
		return ""
	}
	it.Skip()
	return ""
}
