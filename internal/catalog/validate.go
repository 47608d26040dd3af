package catalog

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match request bodies.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check validates an input struct. Absent or empty required values are
// Missing (400); any other constraint failure is Invalid (422).
func (s *Service) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newError(Invalid, MsgInvalid, err)
	}

	for _, fe := range verrs {
		if isMissing(fe) {
			return newError(Missing, fieldLabel(fe.Field())+" is required", err)
		}
	}
	return newError(Invalid, MsgInvalid, err)
}

func isMissing(fe validator.FieldError) bool {
	if fe.Tag() == "required" {
		return true
	}
	if fe.Kind() == reflect.Slice && fe.Tag() == "min" {
		return reflect.ValueOf(fe.Value()).Len() == 0
	}
	return false
}

// fieldLabels names request fields the way messages show them.
var fieldLabels = map[string]string{
	"name":        "Name",
	"label":       "Label",
	"imageUrl":    "Image",
	"value":       "Value",
	"billboardId": "Billboard Id",
	"categoryId":  "Category Id",
	"colorId":     "Color Id",
	"sizeId":      "Size Id",
	"price":       "Price",
	"images":      "Images",
	"url":         "Image",
}

func fieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return capitalize(field)
}
