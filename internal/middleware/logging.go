package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// updateKind names the kind of update for logs
func updateKind(c tele.Context) string {
	switch {
	case c.Callback() != nil:
		return "callback"
	case c.Message() != nil && c.Message().Document != nil:
		return "document"
	case c.Message() != nil && c.Message().Text != "":
		return "text"
	default:
		return "other"
	}
}

// LoggingMiddleware logs every update and how long its handler took
func LoggingMiddleware(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			fields := []zap.Field{zap.String("kind", updateKind(c))}
			if chat := c.Chat(); chat != nil {
				fields = append(fields, zap.Int64("chat_id", chat.ID))
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}

			start := time.Now()
			err := next(c)
			fields = append(fields, zap.Duration("duration", time.Since(start)))

			if err != nil {
				logger.Error("Update handling failed", append(fields, zap.Error(err))...)
				return err
			}

			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}
