package api

import (
	"bytes"
	"encoding/json"
)

// JSONCodec replaces Connect's protojson codec so that plain structs can be
// used as messages. Numbers are decoded as json.Number to keep prices exact.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
