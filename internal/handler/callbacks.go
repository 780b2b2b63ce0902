package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// editOrSend replaces the confirmation message with text when called from a button,
// falling back to a new message if the edit fails
func (h *Handler) editOrSend(c tele.Context, text string) error {
	if c.Callback() == nil {
		return c.Send(text)
	}

	if err := c.Edit(text); err != nil {
		// If message is not modified, it was already edited by another callback
		if strings.Contains(err.Error(), "message is not modified") {
			h.logger.Debug("Message already modified by another callback, acknowledging",
				zap.Int64("chat_id", c.Chat().ID),
				zap.String("callback_id", c.Callback().ID),
			)
			return c.Respond()
		}

		h.logger.Warn("Failed to edit message, sending new",
			zap.Error(err),
			zap.Int64("chat_id", c.Chat().ID),
		)
		if ackErr := c.Respond(); ackErr != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
		}
		return c.Send(text)
	}
	return c.Respond()
}

// handleCancel dismisses a confirmation without doing anything
func (h *Handler) handleCancel(c tele.Context) error {
	return h.editOrSend(c, "Operação cancelada.")
}
