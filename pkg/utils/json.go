package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa o valor com indentação de dois espaços.
// Se in já for []byte, apenas reindenta o conteúdo.
func PrettyJson(in any) ([]byte, error) {
	if raw, ok := in.([]byte); ok {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		in = v
	}

	return json.MarshalIndent(in, "", "  ")
}
