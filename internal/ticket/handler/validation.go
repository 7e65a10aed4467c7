package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of a 422 response body:
// {"detail":[{"type":"missing","loc":["body","title"],"msg":"Field required"}]}
type FieldError struct {
	Type string        `json:"type"`
	Loc  []interface{} `json:"loc"`
	Msg  string        `json:"msg"`
}

var tagNameOnce sync.Once

// useJSONFieldNames makes validator report json names ("title") instead of
// Go field names ("Title").
func useJSONFieldNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func abortValidation(c *gin.Context, details []FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
}

func pathIntError(name string) FieldError {
	return FieldError{
		Type: "int_parsing",
		Loc:  []interface{}{"path", name},
		Msg:  "Input should be a valid integer, unable to parse string as an integer",
	}
}

// bindErrors translates a ShouldBindJSON failure into 422 entries.
func bindErrors(err error) []FieldError {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.Is(err, io.EOF):
		return []FieldError{{Type: "missing", Loc: []interface{}{"body"}, Msg: "Field required"}}
	case errors.As(err, &verrs):
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				out = append(out, FieldError{Type: "missing", Loc: []interface{}{"body", fe.Field()}, Msg: "Field required"})
				continue
			}
			out = append(out, FieldError{Type: "value_error", Loc: []interface{}{"body", fe.Field()}, Msg: fe.Error()})
		}
		return out
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return []FieldError{{
				Type: "model_attributes_type",
				Loc:  []interface{}{"body"},
				Msg:  "Input should be a valid dictionary or object to extract fields from",
			}}
		}
		return []FieldError{{Type: "string_type", Loc: []interface{}{"body", typeErr.Field}, Msg: "Input should be a valid string"}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []FieldError{{Type: "json_invalid", Loc: []interface{}{"body"}, Msg: "JSON decode error"}}
	}
	return []FieldError{{Type: "value_error", Loc: []interface{}{"body"}, Msg: err.Error()}}
}
