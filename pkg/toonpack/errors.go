// Copyright 2025 Redpanda Data, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package toonpack

import (
	"fmt"

	"github.com/shaders/toonpack/pkg/shortform"
)

// ValidationError reports a malformed Result or Options value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("toonpack: %s %s", e.Field, e.Reason)
}

// ConsistencyError reports a short-form map that is not injective.
type ConsistencyError = shortform.ConsistencyError
