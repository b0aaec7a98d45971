package common

import (
	"sort"

	"github.com/tryanzu/quorum/core/exceptions"
	"gopkg.in/go-playground/validator.v8"
)

var validate = validator.New(&validator.Config{TagName: "validate"})

// Validate checks a form against its validate tags. The first failing field
// (by name) becomes an invalid argument error.
func Validate(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return exceptions.Invalid("%s", err.Error())
	}
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	field := errs[names[0]]
	return exceptions.Invalid("%s failed on the %s rule", field.Field, field.Tag)
}
