package logger

import "github.com/rs/zerolog"

// RetryAdapter adapts a zerolog logger to the retryablehttp LeveledLogger
// interface. Retry chatter is only interesting while debugging, so every
// message goes to debug level.
//
//	retryClient := retryablehttp.NewClient()
//	retryClient.Logger = logger.NewRetryAdapter(log.Logger)
type RetryAdapter struct {
	logger zerolog.Logger
}

func NewRetryAdapter(logger zerolog.Logger) *RetryAdapter {
	return &RetryAdapter{logger}
}

func (z *RetryAdapter) Error(msg string, keysAndValues ...interface{}) {
	z.logger.Debug().Fields(convertToFields(keysAndValues...)).Msg(msg)
}

func (z *RetryAdapter) Info(msg string, keysAndValues ...interface{}) {
	z.logger.Debug().Fields(convertToFields(keysAndValues...)).Msg(msg)
}

func (z *RetryAdapter) Debug(msg string, keysAndValues ...interface{}) {
	z.logger.Debug().Fields(convertToFields(keysAndValues...)).Msg(msg)
}

func (z *RetryAdapter) Warn(msg string, keysAndValues ...interface{}) {
	z.logger.Debug().Fields(convertToFields(keysAndValues...)).Msg(msg)
}

func convertToFields(keysAndValues ...interface{}) map[string]interface{} {
	fields := make(map[string]interface{})
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
