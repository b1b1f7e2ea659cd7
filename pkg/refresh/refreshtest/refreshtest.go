/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package refreshtest wires a zap-backed logr.Logger for refresh.Builder's
// WithLogger option, the same way pkg/options.SetupLogging wires zap as the
// default logr backend for this stack's controllers and servers.
package refreshtest

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger wraps core in a zap.Logger and adapts it to logr.Logger via
// zapr, for passing to Builder.WithLogger.
func NewLogger(core zapcore.Core) logr.Logger {
	return zapr.NewLogger(zap.New(core))
}

// NewDevelopmentLogger builds a logr.Logger backed by zap's human-readable
// development encoder, for local debugging of a cache's default OnFailure
// log output.
func NewDevelopmentLogger() (logr.Logger, error) {
	zapLog, err := zap.NewDevelopment()
	if err != nil {
		return logr.Logger{}, err
	}

	return zapr.NewLogger(zapLog), nil
}
