package utils

import "go.uber.org/zap"

// NewLogger returns a zap logger. When debug is true it uses the development config
// (console encoding, debug level); otherwise the production config (JSON, info level).
func NewLogger(debug bool, opts ...zap.Option) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment(opts...)
	}
	return zap.NewProduction(opts...)
}
