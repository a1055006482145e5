// SPDX-License-Identifier: MIT

// Package meshlog adapts go.uber.org/zap to the narrow meshsubnet.Logger
// sink ("single log(level, fmt, ...) sink", spec §6), grounded on
// Cray-HPE/cray-site-init's use of zap for structured logging throughout
// its pkg/ tree.
package meshlog

import (
	"go.uber.org/zap"

	meshsubnet "github.com/meshvpn/subnettable"
)

// Zap wraps a *zap.SugaredLogger as a meshsubnet.Logger.
type Zap struct {
	S *zap.SugaredLogger
}

// New builds a Zap logger around a production zap.Logger configuration.
func New() (Zap, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return Zap{}, err
	}
	return Zap{S: l.Sugar()}, nil
}

func (z Zap) Logf(level meshsubnet.Level, format string, args ...any) {
	switch level {
	case meshsubnet.LevelDebug:
		z.S.Debugf(format, args...)
	case meshsubnet.LevelInfo:
		z.S.Infof(format, args...)
	case meshsubnet.LevelWarn:
		z.S.Warnf(format, args...)
	case meshsubnet.LevelError:
		z.S.Errorf(format, args...)
	default:
		z.S.Infof(format, args...)
	}
}

// Nop is a meshsubnet.Logger that discards everything, useful in tests
// and short-lived CLI invocations that don't want zap's production
// encoder overhead.
type Nop struct{}

func (Nop) Logf(meshsubnet.Level, string, ...any) {}
