// Package mcputils carries shared helpers for MCP tool handlers.
package mcputils

import (
	"github.com/mitchellh/mapstructure"
)

// ArgumentGetter is the slice of an MCP request the binder needs.
type ArgumentGetter interface {
	GetArguments() map[string]interface{}
}

// CoerceBindArguments binds MCP request arguments to a target struct with
// type coercion, keyed by json tags. Some MCP clients send every parameter
// as a string, including booleans and numbers, so decoding is weakly typed:
// "true" binds a bool field, "3" binds an int field.
func CoerceBindArguments[T any](request ArgumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
		TagName:          "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(request.GetArguments())
}
