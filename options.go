// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package editscript

import "znkr.io/editscript/internal/config"

// Option configures the behavior of the functions in this package.
type Option = config.Option

// Iterative builds scripts with an explicit work stack instead of recursion. The result is the
// same, but the call stack doesn't grow with the number of differences.
func Iterative() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Iterative = true
		return config.Iterative
	}
}

// Verify applies every script to x after it has been built and panics if the result is not y.
// This doubles the cost of [Script] for inputs with few differences and is mainly useful for
// testing.
func Verify() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Verify = true
		return config.Verify
	}
}
