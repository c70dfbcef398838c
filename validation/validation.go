// Package validation runs the declarative binding rules on request bodies and
// turns failures into field-level error lists.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule. Loc is the path to the field starting at
// "body", with list indexes as their own elements.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, strings.Join(fe.Loc, ".")+": "+fe.Msg)
	}
	return strings.Join(msgs, "; ")
}

type ginValidator struct {
	once     sync.Once
	validate *validator.Validate
}

var _ binding.StructValidator = (*ginValidator)(nil)

var installOnce sync.Once

// Install replaces gin's binding validator with one that names fields by
// their json tag. It is safe to call more than once.
func Install() {
	installOnce.Do(func() {
		binding.Validator = &ginValidator{}
	})
}

func (v *ginValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}
	return v.engine().Struct(obj)
}

func (v *ginValidator) Engine() any {
	return v.engine()
}

func (v *ginValidator) engine() *validator.Validate {
	v.once.Do(func() {
		v.validate = New()
	})
	return v.validate
}

// New returns a validator reading "binding" tags and reporting json names.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.SetTagName("binding")
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	_ = validate.RegisterValidation("integral", integral)
	return validate
}

// integral accepts whole numbers, including floats such as 2.0.
func integral(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return !math.IsInf(v, 0) && v == math.Trunc(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// FromBindError converts an error from gin's JSON binding into field errors.
// Decoding failures become a single error located at the body or the
// offending field. When body is given, type errors are located with their
// list indexes.
func FromBindError(err error, body []byte) FieldErrors {
	if err == nil {
		return nil
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(FieldErrors, 0, len(verrs))
		for _, e := range verrs {
			out = append(out, FieldError{
				Loc:  location(e.Namespace()),
				Msg:  message(e),
				Type: e.Tag(),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{"body"}
		if path := pathAtOffset(body, typeErr.Offset); path != nil {
			loc = append(loc, path...)
		} else if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return FieldErrors{{
			Loc:  loc,
			Msg:  fmt.Sprintf("value is not a valid %s", typeErr.Type),
			Type: "type_error",
		}}
	}

	return FieldErrors{{Loc: []string{"body"}, Msg: err.Error(), Type: "json_invalid"}}
}

// location turns "CreateOrderDTO.items[0].product_id" into
// ["body", "items", "0", "product_id"].
func location(namespace string) []string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	loc := []string{"body"}
	for _, p := range parts {
		for p != "" {
			i := strings.IndexByte(p, '[')
			if i < 0 {
				loc = append(loc, p)
				break
			}
			if i > 0 {
				loc = append(loc, p[:i])
			}
			j := strings.IndexByte(p[i:], ']')
			if j < 0 {
				loc = append(loc, p[i:])
				break
			}
			loc = append(loc, p[i+1:i+j])
			p = p[i+j+1:]
		}
	}
	return loc
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field required"
	case "gte":
		return "ensure this value is greater than or equal to " + e.Param()
	case "integral":
		return "value is not a valid integer"
	case "min":
		if e.Kind() == reflect.Slice {
			return "ensure this list has at least " + e.Param() + " items"
		}
		return "ensure this value is greater than or equal to " + e.Param()
	default:
		return fmt.Sprintf("failed on the '%s' rule", e.Tag())
	}
}

type frame struct {
	array     bool
	index     int
	key       string
	expectKey bool
}

// pathAtOffset walks the tokens of body and returns the path of the value
// that ends at offset, or nil if none does.
func pathAtOffset(body []byte, offset int64) []string {
	if len(body) == 0 || offset <= 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var stack []frame
	path := func() []string {
		out := make([]string, 0, len(stack))
		for _, f := range stack {
			if f.array {
				out = append(out, strconv.Itoa(f.index))
			} else {
				out = append(out, f.key)
			}
		}
		return out
	}
	// startValue records that a value begins in the innermost container.
	startValue := func() {
		if n := len(stack); n > 0 && stack[n-1].array {
			stack[n-1].index++
		}
	}
	endValue := func() {
		if n := len(stack); n > 0 && !stack[n-1].array {
			stack[n-1].expectKey = true
		}
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				startValue()
				if dec.InputOffset() >= offset {
					return path()
				}
				stack = append(stack, frame{array: d == '[', index: -1, expectKey: d == '{'})
			case '}', ']':
				stack = stack[:len(stack)-1]
				if dec.InputOffset() >= offset {
					return path()
				}
				endValue()
			}
			continue
		}
		if n := len(stack); n > 0 && !stack[n-1].array && stack[n-1].expectKey {
			key, _ := tok.(string)
			stack[n-1].key = key
			stack[n-1].expectKey = false
			continue
		}
		startValue()
		if dec.InputOffset() >= offset {
			return path()
		}
		endValue()
	}
}
