package utils

import (
	"io"

	gojson "github.com/goccy/go-json" //nolint:depguard
)

type JSONEncoder = gojson.Encoder

var encodeOptions = []gojson.EncodeOptionFunc{gojson.DisableHTMLEscape()}

func MarshalJSON(val any) ([]byte, error) {
	return gojson.MarshalWithOption(val, encodeOptions...)
}

func UnmarshalJSON(data []byte, val any) error {
	return gojson.UnmarshalWithOption(data, val)
}

// NewJSONEncoder encoder with HTML escaping disabled, matching MarshalJSON
func NewJSONEncoder(writer io.Writer) *JSONEncoder {
	encoder := gojson.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	return encoder
}

