package handler

import (
	"fmt"
	"time"

	"techtranslator/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// historyMarkup builds a load button per shown entry plus the clear button
func historyMarkup(records []domain.TranslationRecord) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for i, record := range records {
		if i == historyPageSize {
			break
		}
		btn := markup.Data(fmt.Sprintf("⬅️ Carregar %d", i+1), btnLoad.Unique, record.ID)
		rows = append(rows, markup.Row(btn))
	}
	if len(records) > 0 {
		rows = append(rows, markup.Row(btnClearHistory))
	}

	markup.Inline(rows...)
	return markup
}

// handleHistory shows the most recent translations
func (h *Handler) handleHistory(c tele.Context) error {
	chatID := c.Chat().ID
	records := h.session(chatID).controller.History().List(h.ctx)

	text := renderHistory(records, time.Local)
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return c.Send(text, historyMarkup(records))
}

// handleLoad shows a translation from history by its id
func (h *Handler) handleLoad(c tele.Context) error {
	chatID := c.Chat().ID
	id := cleanCallbackData(c.Data())
	session := h.session(chatID)

	record, found := session.controller.History().FindByID(h.ctx, id)
	if !found {
		h.logger.Info("History record not found", zap.Int64("chat_id", chatID), zap.String("record_id", id))
		return c.Respond(&tele.CallbackResponse{
			Text:      "Tradução não encontrada no histórico",
			ShowAlert: true,
		})
	}

	display := session.controller.LoadFromHistory(record)
	session.controller.ShowOnDisplay(display)
	h.UpdateSettings(chatID, func(s *ChatSettings) {
		s.SourceLang = display.SourceLang
		s.TargetLang = display.TargetLang
	})

	if err := c.Respond(&tele.CallbackResponse{Text: "Tradução carregada do histórico!"}); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	if err := h.sendLong(c, "📄 Original:\n\n"+display.Original, nil); err != nil {
		return err
	}
	return h.sendLong(c, renderDisplay(display), nil)
}

// handleClearHistoryAsk asks for confirmation before clearing the history
func (h *Handler) handleClearHistoryAsk(c tele.Context) error {
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return c.Send("Tem certeza que deseja limpar todo o histórico de traduções?", confirmMarkup(btnClearHistoryYes))
}

// handleClearHistoryConfirm clears the history after confirmation
func (h *Handler) handleClearHistoryConfirm(c tele.Context) error {
	chatID := c.Chat().ID
	h.session(chatID).controller.History().Clear(h.ctx)

	h.logger.Info("History cleared by user", zap.Int64("chat_id", chatID))
	return h.editOrSend(c, "Histórico limpo com sucesso!")
}
