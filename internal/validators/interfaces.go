// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators enforces the registry's input rules before anything
// reaches storage.
//
// A [Validator] accepts a model value plus an optional list of field names;
// with no names it checks the model's default field set. Handlers and
// services receive a Validator by injection so the rules can be swapped in
// tests.
package validators

import "context"

// Validator validates the provided input and optionally restricts
// validation to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
