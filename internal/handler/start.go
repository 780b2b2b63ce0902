package handler

import (
	"strings"

	"techtranslator/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const helpText = `Envie um texto e eu traduzo.

/from <código> — idioma de origem (ou auto)
/to <código> — idioma de destino
/swap — inverter idiomas
/formatting on|off — preservar formatação
/languages — idiomas suportados
/history — histórico de traduções
/download — baixar a última tradução
/clear — limpar os textos

Também aceito arquivos .txt e .md.`

// handleStart handles /start and /help commands
func (h *Handler) handleStart(c tele.Context) error {
	chatID := c.Chat().ID

	h.logger.Info("User started bot",
		zap.Int64("chat_id", chatID),
		zap.String("username", c.Sender().Username),
	)

	var b strings.Builder
	if warning := h.warning(); warning != "" {
		b.WriteString("⚠️ " + warning + "\n\n")
	}
	b.WriteString(helpText)
	b.WriteString("\n\n")
	b.WriteString(renderSettings(h.Settings(chatID)))

	return c.Send(b.String())
}

// handleFrom sets the source language
func (h *Handler) handleFrom(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Uso: /from <código>, por exemplo /from en ou /from auto")
	}

	code, ok := parseLanguageCode(args[0], true)
	if !ok {
		return c.Send("Código de idioma inválido: " + args[0])
	}

	settings := h.UpdateSettings(c.Chat().ID, func(s *ChatSettings) { s.SourceLang = code })
	return c.Send(renderSettings(settings))
}

// handleTo sets the target language
func (h *Handler) handleTo(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Uso: /to <código>, por exemplo /to pt")
	}

	code, ok := parseLanguageCode(args[0], false)
	if !ok {
		return c.Send("Código de idioma inválido: " + args[0])
	}

	settings := h.UpdateSettings(c.Chat().ID, func(s *ChatSettings) { s.TargetLang = code })
	return c.Send(renderSettings(settings))
}

// handleSwap swaps source and target languages
func (h *Handler) handleSwap(c tele.Context) error {
	chatID := c.Chat().ID
	if h.Settings(chatID).SourceLang == domain.AutoDetect {
		return c.Send("Não é possível inverter com detecção automática. Defina o idioma de origem com /from.")
	}

	settings := h.UpdateSettings(chatID, func(s *ChatSettings) {
		s.SourceLang, s.TargetLang = s.TargetLang, s.SourceLang
	})
	return c.Send(renderSettings(settings))
}

// handleFormatting toggles formatting preservation
func (h *Handler) handleFormatting(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Uso: /formatting on|off")
	}

	var preserve bool
	switch strings.ToLower(args[0]) {
	case "on", "sim", "true":
		preserve = true
	case "off", "nao", "não", "false":
		preserve = false
	default:
		return c.Send("Uso: /formatting on|off")
	}

	settings := h.UpdateSettings(c.Chat().ID, func(s *ChatSettings) { s.PreserveFormatting = preserve })
	return c.Send(renderSettings(settings))
}
