// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package middleware

import (
	"reflect"
	"strings"

	"gitea.com/go-chi/binding"
)

// Form form binding interface
type Form interface {
	binding.Validator
}

// AssignForm assign form values back to the template data.
func AssignForm(form any, data ContextData) {
	if data == nil {
		return
	}
	typ := reflect.TypeOf(form)
	val := reflect.ValueOf(form)

	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
		val = val.Elem()
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		fieldName := field.Tag.Get("form")
		// Allow ignored fields in the struct
		if fieldName == "-" {
			continue
		} else if len(fieldName) == 0 {
			fieldName = toSnakeCase(field.Name)
		}

		data[fieldName] = val.Field(i).Interface()
	}
}

func toSnakeCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if 'A' <= r && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func getRuleBody(field reflect.StructField, prefix string) string {
	for _, rule := range strings.Split(field.Tag.Get("binding"), ";") {
		if strings.HasPrefix(rule, prefix) {
			return rule[len(prefix) : len(rule)-1]
		}
	}
	return ""
}

// GetMaxSize get max size in form tag
func GetMaxSize(field reflect.StructField) string {
	return getRuleBody(field, "MaxSize(")
}

// GetMinSize get minimal size in form tag
func GetMinSize(field reflect.StructField) string {
	return getRuleBody(field, "MinSize(")
}

// Validate populate the data with the first validation error, it is used by the forms' Validate methods
func Validate(errs binding.Errors, data ContextData, f any) binding.Errors {
	if errs.Len() == 0 || data == nil {
		return errs
	}

	data["HasError"] = true
	// If the field with name errs[0].FieldNames[0] is not found in form
	// somehow, some code later on will panic on Data["ErrorMsg"].(string).
	// So initialize it to some default.
	data["ErrorMsg"] = "Unknown error:"
	AssignForm(f, data)

	typ := reflect.TypeOf(f)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	if len(errs[0].FieldNames) == 0 {
		data["ErrorMsg"] = "Unknown error: " + errs[0].Classification
		return errs
	}
	field, ok := typ.FieldByName(errs[0].FieldNames[0])
	if !ok || field.Tag.Get("form") == "-" {
		return errs
	}

	data["Err_"+field.Name] = true
	trName := field.Tag.Get("locale")
	if trName == "" {
		trName = field.Name
	}

	switch errs[0].Classification {
	case binding.ERR_REQUIRED:
		data["ErrorMsg"] = trName + " cannot be empty."
	case binding.ERR_ALPHA_DASH:
		data["ErrorMsg"] = trName + " should contain only alphanumeric, dash ('-') and underscore ('_') characters."
	case binding.ERR_MIN_SIZE:
		data["ErrorMsg"] = trName + " must contain at least " + GetMinSize(field) + " characters."
	case binding.ERR_MAX_SIZE:
		data["ErrorMsg"] = trName + " must contain at most " + GetMaxSize(field) + " characters."
	default:
		data["ErrorMsg"] = "Unknown error: " + errs[0].Classification
	}
	return errs
}
