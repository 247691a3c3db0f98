package utils

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson formata qualquer valor (ou JSON bruto) com indentação
func PrettyJson(in any) (string, error) {
	if raw, ok := in.([]byte); ok {
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return "", err
		}
		in = value
	}

	indented, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}

	return string(indented), nil
}
