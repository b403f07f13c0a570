package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/octypes"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire names so messages match the API documentation.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name[:1]) + fld.Name[1:]
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("validation: register notblank: %v", err))
	}

	return v
}

// Struct validates v against its validate tags and converts the first
// failure into a validation error for op.
func Struct(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.NewError(op, errors.ErrValidation).WithMessage(err.Error())
	}

	return errors.NewValidationError(op, message(fieldErrs[0]))
}

// message builds a readable description of a single field failure.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s cannot be empty", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "lte":
		if isWeight(fe) {
			return fmt.Sprintf("%s must be between 0 and 1", field)
		}
		if fe.Tag() == "gte" {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be an absolute URL", field)
	case "uuid":
		return fmt.Sprintf("%s must be a UUID", field)
	default:
		return fmt.Sprintf("%s failed the %q check", field, fe.Tag())
	}
}

// isWeight reports whether fe belongs to one of the [0,1] search weights.
func isWeight(fe validator.FieldError) bool {
	return fe.StructField() == "SemanticWeight" || fe.StructField() == "FullTextWeight"
}

// ValidateSearch applies defaults to in and validates it.
func ValidateSearch(in *octypes.SearchInput) error {
	if in.SemanticWeight == nil {
		in.SemanticWeight = octypes.Float64(octypes.DefaultSemanticWeight)
	}
	if in.FullTextWeight == nil {
		in.FullTextWeight = octypes.Float64(octypes.DefaultFullTextWeight)
	}
	if in.RRFK == 0 {
		in.RRFK = octypes.DefaultRRFK
	}
	if in.MetadataFilters == nil {
		in.MetadataFilters = map[string]any{}
	}
	return Struct("search", in)
}

// ValidateGetChunks applies defaults to in and validates it.
func ValidateGetChunks(in *octypes.GetChunksInput) error {
	if in.MetadataFilters == nil {
		in.MetadataFilters = map[string]any{}
	}
	return Struct("getChunks", in)
}

// ValidateListFiles applies defaults to in and validates it.
func ValidateListFiles(in *octypes.ListFilesInput) error {
	if in.Limit == 0 {
		in.Limit = octypes.DefaultListFilesLimit
	}
	if in.Sort == "" {
		in.Sort = octypes.DefaultListFilesSort
	}
	if in.MetadataFilters == nil {
		in.MetadataFilters = map[string]any{}
	}
	return Struct("listFiles", in)
}

// ValidateUploadFiles applies defaults to in and validates it, including every
// file descriptor.
func ValidateUploadFiles(in *octypes.UploadFilesInput) error {
	if in.MaxChunkSize == 0 {
		in.MaxChunkSize = octypes.DefaultMaxChunkSize
	}
	if err := Struct("uploadFiles", in); err != nil {
		return err
	}
	return ValidateFiles("uploadFiles", in.Files)
}

// ValidateUploadDirectory applies defaults to in and validates it.
func ValidateUploadDirectory(in *octypes.UploadDirectoryInput) error {
	if in.MaxChunkSize == 0 {
		in.MaxChunkSize = octypes.DefaultMaxChunkSize
	}
	return Struct("uploadDirectory", in)
}

// ValidateFiles checks that every descriptor is a complete path or content variant.
func ValidateFiles(op string, files []octypes.File) error {
	if len(files) == 0 {
		return errors.NewValidationError(op, "files must contain at least 1 item(s)")
	}

	for i, f := range files {
		switch f.Kind() {
		case octypes.FileKindPath:
			if strings.TrimSpace(f.Path()) == "" {
				return errors.NewValidationError(op, fmt.Sprintf("files[%d]: path cannot be empty", i))
			}
		case octypes.FileKindContent:
			if f.Reader() == nil {
				return errors.NewValidationError(op, fmt.Sprintf("files[%d]: content reader cannot be nil", i))
			}
		default:
			return errors.NewValidationError(op, fmt.Sprintf("files[%d]: must be a path or content file", i))
		}
	}

	return nil
}

// ValidatePresignResponse checks that the service returned exactly want slots
// and that each slot is usable.
func ValidatePresignResponse(slots []octypes.PresignedSlot, want int) error {
	const op = "uploadFiles"

	if len(slots) != want {
		return errors.NewError(op, errors.ErrInvalidServerResponse).
			WithMessage(fmt.Sprintf("expected %d presigned URLs, got %d", want, len(slots)))
	}

	for i := range slots {
		if err := validate.Struct(&slots[i]); err != nil {
			var fieldErrs validator.ValidationErrors
			msg := err.Error()
			if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
				msg = message(fieldErrs[0])
			}
			return errors.NewError(op, errors.ErrInvalidServerResponse).
				WithMessage(fmt.Sprintf("slot %d: %s", i, msg))
		}
	}

	return nil
}
