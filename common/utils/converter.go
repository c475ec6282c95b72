package utils

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// BytesToHex hex encodes b without a prefix
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// HexToBytes decodes a hex string, tolerating a 0x prefix and surrounding whitespace
func HexToBytes(str string) ([]byte, error) {
	str = strings.TrimSpace(str)
	if len(str) >= 2 && (str[0:2] == "0x" || str[0:2] == "0X") {
		str = str[2:]
	}
	b, err := hex.DecodeString(str)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string: %w", err)
	}
	return b, nil
}

// 직렬화 방식 상수
const (
	SerializationFormatJSON = iota
	SerializationFormatPrettyJSON
)

// SerializeData serializes data as compact or indented JSON
func SerializeData(data interface{}, format int) ([]byte, error) {
	switch format {
	case SerializationFormatJSON:
		return json.Marshal(data)
	case SerializationFormatPrettyJSON:
		return json.MarshalIndent(data, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported serialization format: %d", format)
	}
}

// DeserializeData decodes JSON produced by SerializeData in either format
func DeserializeData(data []byte, result interface{}) error {
	return json.Unmarshal(data, result)
}
