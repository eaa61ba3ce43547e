package sbam

import (
	"encoding/json"
	"fmt"
	"reflect"
)

var stringType = reflect.TypeOf("")

// encode returns the stored form of token: string-kinded values verbatim,
// everything else as JSON.
func encode[T any](token T) (string, error) {
	value := reflect.ValueOf(token)
	if value.IsValid() && value.Kind() == reflect.String {
		return value.String(), nil
	}
	data, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}
	return string(data), nil
}

// decode parses stored text as JSON, falling back to the raw text when T can
// hold a string.
func decode[T any](raw string) (T, bool) {
	var token T
	if err := json.Unmarshal([]byte(raw), &token); err == nil {
		return token, true
	}
	var fallback T
	target := reflect.ValueOf(&fallback).Elem()
	switch target.Kind() {
	case reflect.String:
		target.SetString(raw)
		return fallback, true
	case reflect.Interface:
		if stringType.AssignableTo(target.Type()) {
			target.Set(reflect.ValueOf(raw))
			return fallback, true
		}
	}
	return fallback, false
}
