package logger

import "go.uber.org/zap"

// New builds the process logger: production encoding for prod envs,
// human-readable development output otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "production" || env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
