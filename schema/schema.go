package schema

import "encoding/json"

// Schema is message content interface
type Schema interface {
	String() string
}

// Stringify renders a schema as the text sent over the wire.
func Stringify(s Schema) string {
	if s == nil {
		return ""
	}
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes renders a schema as bytes.
func ToBytes(s Schema) []byte {
	if s == nil {
		return nil
	}
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
