package logger

import (
	"fmt"
	"time"
)

// Field keys shared by every component.
const (
	FieldComponent = "component"
	FieldChainID   = "chain_id"
	FieldGroup     = "group"
	FieldGroups    = "groups"
	FieldSteps     = "steps"
	FieldAxis      = "axis"
	FieldNaming    = "naming"
	FieldPath      = "path"
	FieldRows      = "rows"
	FieldColumns   = "columns"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields pairs up alternating keys and values. Keys that are not strings
// are formatted with fmt; a trailing key without a value is dropped.
//
//	log.Info("concat done", logger.Fields(logger.FieldGroups, 3, logger.FieldAxis, "columns"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 1; i < len(kvs); i += 2 {
		key, ok := kvs[i-1].(string)
		if !ok {
			key = fmt.Sprint(kvs[i-1])
		}
		m[key] = kvs[i]
	}
	return m
}

// ErrorFields describes a failed operation.
func ErrorFields(op string, err error) map[string]interface{} {
	return MergeWithError(Fields(FieldOperation, op), err)
}

// DurationFields describes a timed operation in milliseconds.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return Fields(FieldOperation, op, FieldDuration, d.Milliseconds())
}

// MergeWithError sets the error field on fields, allocating the map when
// it is nil. A nil err leaves fields untouched.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{}, 1)
	}
	if err != nil {
		fields[FieldError] = err.Error()
	}
	return fields
}
