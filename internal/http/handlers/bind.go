package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/geocoder89/eventmanager/internal/domain/ticket"
	"github.com/geocoder89/eventmanager/internal/http/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	titleValidation = "Validation Failed"
	titleJSONSyntax = "Invalid JSON Syntax"
	titleJSONData   = "Invalid JSON Data"
	titleBadJSON    = "Bad JSON Request"
	titleBadRequest = "Bad Request"
	titleTooLarge   = "Payload Too Large"
)

// bindError is a decode or validation failure ready to be written.
type bindError struct {
	status  int
	title   string
	details []string
}

func BindJSON(ctx *gin.Context, out any) bool {
	configureBinding()

	err := ctx.ShouldBindJSON(out)

	if err != nil {
		be := parseBindError(err, out)
		RespondError(ctx, be.status, be.title, be.details...)

		return false
	}

	return true
}

// BindQuery binds and validates query parameters.
func BindQuery(ctx *gin.Context, out any) bool {
	configureBinding()

	err := ctx.ShouldBindQuery(out)

	if err != nil {
		be := parseBindError(err, out)
		if be.title == titleBadJSON {
			be = bindError{status: http.StatusBadRequest, title: titleBadRequest, details: be.details}
		}
		RespondError(ctx, be.status, be.title, be.details...)

		return false
	}

	return true
}

func parseBindError(err error, out any) bindError {
	rootType := baseStructType(out)

	// validator errors (struct bind tags and struct level rules)
	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		messages := make([]string, 0, len(validatorError))

		for _, fieldError := range validatorError {
			messages = append(messages, fieldMessage(rootType, fieldError))
		}

		return bindError{status: http.StatusUnprocessableEntity, title: titleValidation, details: messages}
	}

	if errors.Is(err, io.EOF) {
		return bindError{status: http.StatusBadRequest, title: titleBadJSON, details: []string{"Request body is empty."}}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return bindError{
			status:  http.StatusRequestEntityTooLarge,
			title:   titleTooLarge,
			details: []string{middlewares.BodyTooLargeMessage(tooLarge.Limit)},
		}
	}

	// in the event of bad json
	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return bindError{
			status:  http.StatusBadRequest,
			title:   titleJSONSyntax,
			details: []string{fmt.Sprintf("%s at offset %d", syntaxError.Error(), syntaxError.Offset)},
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return bindError{status: http.StatusBadRequest, title: titleJSONSyntax, details: []string{"unexpected end of JSON input"}}
	}

	// in the event of a type mismatch
	var unmatchedTypeError *json.UnmarshalTypeError

	if errors.As(err, &unmatchedTypeError) {
		field := jsonPathFromDotPath(rootType, unmatchedTypeError.Field)

		if field == "" {
			field = strings.TrimSpace(unmatchedTypeError.Field)
		}

		return bindError{
			status:  http.StatusUnprocessableEntity,
			title:   titleJSONData,
			details: []string{fmt.Sprintf("%s: must be of type %s", field, unmatchedTypeError.Type.String())},
		}
	}

	// encoding/json reports unknown fields as `json: unknown field "x"`
	if name, ok := unknownField(err); ok {
		return bindError{
			status:  http.StatusUnprocessableEntity,
			title:   titleJSONData,
			details: []string{fmt.Sprintf("Unknown field `%s`", name)},
		}
	}

	// query values that do not parse, e.g. page=abc
	var numError *strconv.NumError
	if errors.As(err, &numError) {
		return bindError{
			status:  http.StatusBadRequest,
			title:   titleBadRequest,
			details: []string{fmt.Sprintf("invalid number %q", numError.Num)},
		}
	}

	// final fallback if the error could not be deciphered
	return bindError{status: http.StatusBadRequest, title: titleBadJSON, details: []string{err.Error()}}
}

func unknownField(err error) (string, bool) {
	const prefix = "json: unknown field "

	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}

	name, uerr := strconv.Unquote(strings.TrimPrefix(msg, prefix))
	if uerr != nil {
		return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
	}

	return name, true
}

func fieldMessage(rootType reflect.Type, fieldError validator.FieldError) string {
	if fieldError.Tag() == exclusiveRefTag {
		return ticket.ExclusiveRefMessage
	}

	field := jsonPathFromValidatorError(rootType, fieldError)

	return field + ": " + validationMessage(fieldError.Tag(), fieldError.Param(), fieldError.Kind())
}

func baseStructType(v any) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

func jsonPathFromValidatorError(rootType reflect.Type, fieldError validator.FieldError) string {
	// Namespace format is usually "<StructName>.<Field>[.<NestedField>...]".
	namespace := fieldError.StructNamespace()
	if namespace == "" {
		namespace = fieldError.Namespace()
	}

	if namespace == "" {
		return fieldError.Field()
	}

	parts := strings.Split(namespace, ".")

	if rootType != nil && rootType.Name() != "" && parts[0] == rootType.Name() {
		parts = parts[1:]
	}

	path := mapStructPathToJSONPath(rootType, parts)
	if path != "" {
		return path
	}

	return fieldError.Field()
}

func jsonPathFromDotPath(rootType reflect.Type, dotPath string) string {
	dotPath = strings.TrimSpace(dotPath)
	if dotPath == "" {
		return ""
	}

	return mapStructPathToJSONPath(rootType, strings.Split(dotPath, "."))
}

// mapStructPathToJSONPath turns Go field names into wire names. Embedded
// structs contribute no segment, which keeps pagination errors flat.
func mapStructPathToJSONPath(rootType reflect.Type, parts []string) string {
	current := rootType
	out := make([]string, 0, len(parts))

	for _, rawPart := range parts {
		if rawPart == "" {
			continue
		}

		fieldName, indexSuffix := splitFieldIndex(rawPart)
		wireName := fieldName
		embedded := false

		nextType := reflect.Type(nil)
		if current != nil {
			for current.Kind() == reflect.Pointer {
				current = current.Elem()
			}

			if current.Kind() == reflect.Struct {
				if sf, ok := current.FieldByName(fieldName); ok {
					wireName = wireNameFromStructField(sf)
					nextType = sf.Type
					embedded = sf.Anonymous
				}
			}
		}

		if !embedded {
			out = append(out, wireName+indexSuffix)
		}

		if nextType != nil {
			current = unwindCollection(nextType)
		} else {
			current = nil
		}
	}

	return strings.Join(out, ".")
}

func splitFieldIndex(part string) (string, string) {
	idx := strings.Index(part, "[")
	if idx == -1 {
		return part, ""
	}

	return part[:idx], part[idx:]
}

func wireNameFromStructField(sf reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		tag := sf.Tag.Get(key)
		if tag == "" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return sf.Name
}

func unwindCollection(t reflect.Type) reflect.Type {
	for t != nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return t
		}
	}

	return nil
}

func validationMessage(rule, param string, kind reflect.Kind) string {
	unit := ""
	if kind == reflect.String {
		unit = " characters long"
	}

	switch rule {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param + unit
	case "max":
		return "must be at most " + param + unit
	case "len":
		return "must be exactly " + param + unit
	case "excludesall":
		return "must not contain any of " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
