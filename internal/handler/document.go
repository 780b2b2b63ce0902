package handler

import (
	"errors"

	"techtranslator/internal/domain"
	"techtranslator/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleDocument reads an uploaded text file and translates its content
func (h *Handler) handleDocument(c tele.Context) error {
	doc := c.Message().Document
	if doc == nil {
		return nil
	}

	log := h.logger.With(
		zap.Int64("chat_id", c.Chat().ID),
		zap.String("file_name", doc.FileName),
		zap.String("mime", doc.MIME),
	)

	if !service.IsSupportedDocument(doc.FileName, doc.MIME) {
		log.Info("Unsupported document uploaded")
		return c.Send("Formato de arquivo não suportado. Envie um arquivo .txt ou .md.")
	}
	if doc.FileSize > service.MaxDocumentSize {
		return c.Send("Arquivo muito grande.")
	}

	reader, err := h.bot.File(&doc.File)
	if err != nil {
		log.Error("Failed to download document", zap.Error(err))
		return c.Send("Erro ao processar arquivo.")
	}
	defer reader.Close()

	text, err := service.ReadDocument(doc.FileName, doc.MIME, reader)
	if err != nil {
		var ufe *domain.UnsupportedFormatError
		if errors.As(err, &ufe) {
			return c.Send("Formato de arquivo não suportado. Envie um arquivo .txt ou .md.")
		}
		log.Error("Failed to read document", zap.Error(err))
		return c.Send("Erro ao processar arquivo.")
	}

	log.Info("Document loaded", zap.Int("chars", len(text)))
	if err := c.Send("Arquivo carregado com sucesso!"); err != nil {
		return err
	}
	return h.translate(c, text)
}
