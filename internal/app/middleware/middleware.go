package middleware

import (
	"errors"

	"go.uber.org/zap"
	"gopkg.in/telebot.v4"
)

// Logger возвращает middleware, которое логирует входящие обновления Telegram.
func Logger(log *zap.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			if sender := c.Sender(); sender != nil {
				log.Debug("telegram update",
					zap.Int64("user_id", sender.ID),
					zap.String("username", sender.Username),
					zap.String("text", c.Text()))
			}
			return next(c)
		}
	}
}

// Recover возвращает middleware, которое перехватывает панику в обработчике,
// логирует её и возвращает как обычную ошибку.
func Recover(log *zap.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					var e error
					switch x := r.(type) {
					case error:
						e = x
					case string:
						e = errors.New(x)
					default:
						e = errors.New("unknown panic")
					}
					log.Error("recovered from panic", zap.Error(e))
					err = e
				}
			}()
			return next(c)
		}
	}
}
