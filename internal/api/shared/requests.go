package shared

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes bounds the size of a JSON request body. Notes are
// truncated long before this, so anything larger is not a real client.
const MaxRequestBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports fields by their JSON names so validation messages
// match what clients sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON reads at most MaxRequestBodyBytes from the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxRequestBodyBytes)).Decode(v)
}

// ValidateRequest runs v's own Validate method when it has one, and struct
// tag validation otherwise.
func ValidateRequest(v any) error {
	if self, ok := v.(interface{ Validate() error }); ok {
		return self.Validate()
	}
	return validate.Struct(v)
}
