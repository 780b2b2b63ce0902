package handler

import (
	"errors"
	"strings"
	"time"

	"techtranslator/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText translates any plain text message
func (h *Handler) handleText(c tele.Context) error {
	text := c.Text()

	// Ignore commands (starting with /)
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return nil
	}

	return h.translate(c, text)
}

// translate submits text in the chat's session and renders the outcome
func (h *Handler) translate(c tele.Context, text string) error {
	chatID := c.Chat().ID
	session := h.session(chatID)
	settings := h.Settings(chatID)

	if strings.TrimSpace(text) != "" {
		if err := c.Notify(tele.Typing); err != nil {
			h.logger.Debug("Failed to send typing action", zap.Error(err))
		}
	}

	state, err := session.controller.Submit(h.ctx, text, settings.SourceLang, settings.TargetLang, settings.PreserveFormatting)
	if errors.Is(err, domain.ErrSessionBusy) {
		return c.Send("⏳ Uma tradução já está em andamento. Aguarde o resultado.")
	}
	if err != nil {
		h.logger.Error("Unexpected submit error", zap.Error(err), zap.Int64("chat_id", chatID))
		return c.Send("Ocorreu um erro. Tente novamente mais tarde.")
	}

	switch state.Phase {
	case domain.PhaseSucceeded:
		h.logger.Info("Translation delivered",
			zap.Int64("chat_id", chatID),
			zap.String("record_id", state.Record.ID),
		)
		return h.sendLong(c, renderDisplay(state.Record.Display()), resultMarkup())

	case domain.PhaseFailed:
		if errors.Is(state.Err, domain.ErrEmptyInput) {
			return c.Send("Por favor, insira um texto para traduzir.")
		}
		return c.Send("❌ Erro na tradução: " + state.Message())
	}

	return nil
}

// sendLong sends text split into several messages if needed.
// The markup is attached to the last message.
func (h *Handler) sendLong(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	chunks := splitMessage(text, maxMessageLength)
	for i, chunk := range chunks {
		var err error
		if i == len(chunks)-1 && markup != nil {
			err = c.Send(chunk, markup)
		} else {
			err = c.Send(chunk)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// handleDownload sends the translation on display as a text file
func (h *Handler) handleDownload(c tele.Context) error {
	display := h.session(c.Chat().ID).controller.Display()
	if strings.TrimSpace(display.Translated) == "" {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Nenhum texto traduzido para download."})
		}
		return c.Send("Nenhum texto traduzido para download.")
	}

	doc := &tele.Document{
		File:     tele.FromReader(strings.NewReader(display.Translated)),
		FileName: downloadFileName(time.Now()),
		MIME:     "text/plain",
	}
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return c.Send(doc)
}

// handleLanguages lists supported languages, falling back to the built-in table
func (h *Handler) handleLanguages(c tele.Context) error {
	languages, err := h.languages.Languages(h.ctx)
	if err != nil || len(languages) == 0 {
		h.logger.Warn("Failed to fetch languages from service, using built-in list", zap.Error(err))
		languages = domain.Languages
	}
	return c.Send(renderLanguages(languages))
}

// handleClearAsk asks for confirmation before clearing the texts
func (h *Handler) handleClearAsk(c tele.Context) error {
	text := "Tem certeza que deseja limpar todos os textos?"
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return c.Send(text, confirmMarkup(btnClearYes))
}

// handleClearConfirm clears the texts after confirmation
func (h *Handler) handleClearConfirm(c tele.Context) error {
	chatID := c.Chat().ID
	h.session(chatID).controller.ClearWorkingText(true)

	h.logger.Info("Working text cleared", zap.Int64("chat_id", chatID))
	return h.editOrSend(c, "Textos limpos com sucesso!")
}
