// SPDX-License-Identifier: Apache-2.0

package minivec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the elements as a JSON array, in order. An empty vector
// encodes as [] rather than null.
func (v Vec[T]) MarshalJSON() ([]byte, error) {
	var buf Buffer
	defer buf.Release()

	enc := json.NewEncoder(&buf)
	_ = buf.WriteByte('[')
	for i, x := range v.Slice() {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		if err := enc.Encode(x); err != nil {
			return nil, err
		}
		// Encode terminates every value with a newline.
		buf.Truncate(buf.Len() - 1)
	}
	_ = buf.WriteByte(']')
	return bytes.Clone(buf.Bytes()), nil
}

// UnmarshalJSON replaces the contents of v with the elements of a JSON array.
// null leaves v empty. The previous elements are dropped first; on a decoding
// error v holds the elements decoded so far.
func (v *Vec[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		v.Clear()
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return &json.UnmarshalTypeError{
			Value:  jsonKind(tok),
			Type:   reflect.TypeFor[Vec[T]](),
			Offset: dec.InputOffset(),
		}
	}

	v.Clear()
	for dec.More() {
		var x T
		if err := dec.Decode(&x); err != nil {
			return err
		}
		v.Push(x)
	}
	// closing bracket
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func jsonKind(tok json.Token) string {
	switch tok.(type) {
	case json.Delim:
		return "object"
	case string:
		return "string"
	case bool:
		return "bool"
	default:
		return "number"
	}
}

// MarshalYAML encodes the elements as a YAML sequence.
func (v Vec[T]) MarshalYAML() (any, error) {
	s := v.Slice()
	if s == nil {
		return []T{}, nil
	}
	return s, nil
}

// UnmarshalYAML replaces the contents of v with the items of a YAML sequence.
// A null node leaves v empty.
func (v *Vec[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		v.Clear()
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot unmarshal %s into %v", node.Line, node.ShortTag(), reflect.TypeFor[Vec[T]]()),
		}}
	}

	v.Clear()
	v.Reserve(len(node.Content))
	for _, item := range node.Content {
		var x T
		if err := item.Decode(&x); err != nil {
			return err
		}
		v.Push(x)
	}
	return nil
}
