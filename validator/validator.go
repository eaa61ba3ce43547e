package validator

import (
	"math"
	"reflect"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// NonZero reports whether v is present: nil, empty strings, zero numbers,
// false and nil pointers, maps, slices, funcs, chans and interfaces are
// rejected. Structs and non-nil containers are accepted even when empty.
func NonZero[T any](v T) bool {
	return present(reflect.ValueOf(v))
}

func present(value reflect.Value) bool {
	if !value.IsValid() {
		return false
	}
	switch value.Kind() {
	case reflect.Struct, reflect.Array:
		return true
	case reflect.Interface:
		if value.IsNil() {
			return false
		}
		return present(value.Elem())
	case reflect.Float32, reflect.Float64:
		f := value.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return !value.IsZero()
}

// JWT reports whether token has JWT structure with decodable header and
// claims. The signature is not verified.
func JWT(token string) bool {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return false
	}
	_, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	return err == nil
}

// OAuth2 reports whether token carries an access token.
func OAuth2(token *oauth2.Token) bool {
	return token != nil && token.AccessToken != ""
}
