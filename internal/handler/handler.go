package handler

import (
	"context"
	"fmt"
	"sync"

	"techtranslator/internal/config"
	"techtranslator/internal/repository"
	"techtranslator/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// LanguageSource lists the languages the translation service supports
type LanguageSource interface {
	Languages(ctx context.Context) (map[string]string, error)
}

// ChatSettings are the per-chat translation options
type ChatSettings struct {
	SourceLang         string
	TargetLang         string
	PreserveFormatting bool
}

// chatSession is everything one chat owns: its controller and its options
type chatSession struct {
	controller *service.SessionController
	settings   ChatSettings
}

// Handler binds Telegram updates to translation sessions.
// Every chat gets its own SessionController and history key.
type Handler struct {
	ctx        context.Context
	bot        *tele.Bot
	translator service.Translator
	languages  LanguageSource
	kv         repository.KVStore
	historyKey string
	defaults   config.TranslationConfig
	logger     *zap.Logger

	serviceWarning string

	sessions   map[int64]*chatSession
	sessionMux sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	ctx context.Context,
	bot *tele.Bot,
	translator service.Translator,
	languages LanguageSource,
	kv repository.KVStore,
	historyKey string,
	defaults config.TranslationConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		ctx:        ctx,
		bot:        bot,
		translator: translator,
		languages:  languages,
		kv:         kv,
		historyKey: historyKey,
		defaults:   defaults,
		logger:     logger,
		sessions:   make(map[int64]*chatSession),
	}
}

// SetServiceWarning sets a warning shown to users on /start
func (h *Handler) SetServiceWarning(warning string) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	h.serviceWarning = warning
}

func (h *Handler) warning() string {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	return h.serviceWarning
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleStart)
	h.bot.Handle("/from", h.handleFrom)
	h.bot.Handle("/to", h.handleTo)
	h.bot.Handle("/swap", h.handleSwap)
	h.bot.Handle("/formatting", h.handleFormatting)
	h.bot.Handle("/languages", h.handleLanguages)
	h.bot.Handle("/history", h.handleHistory)
	h.bot.Handle("/clear", h.handleClearAsk)
	h.bot.Handle("/download", h.handleDownload)

	// Text and files
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnDocument, h.handleDocument)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnDownload, h.handleDownload)
	h.bot.Handle(&btnHistory, h.handleHistory)
	h.bot.Handle(&btnLoad, h.handleLoad)
	h.bot.Handle(&btnClear, h.handleClearAsk)
	h.bot.Handle(&btnClearYes, h.handleClearConfirm)
	h.bot.Handle(&btnClearHistory, h.handleClearHistoryAsk)
	h.bot.Handle(&btnClearHistoryYes, h.handleClearHistoryConfirm)
	h.bot.Handle(&btnCancel, h.handleCancel)
}

// HistoryKey returns the storage key of a chat's history
func HistoryKey(base string, chatID int64) string {
	return fmt.Sprintf("%s:%d", base, chatID)
}

// session returns the chat's session, creating it on first use
func (h *Handler) session(chatID int64) *chatSession {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	s, exists := h.sessions[chatID]
	if !exists {
		history := service.NewHistoryStore(h.kv, HistoryKey(h.historyKey, chatID), h.logger)
		s = &chatSession{
			controller: service.NewSessionController(h.translator, history, h.logger),
			settings: ChatSettings{
				SourceLang:         h.defaults.DefaultSourceLanguage,
				TargetLang:         h.defaults.DefaultTargetLanguage,
				PreserveFormatting: h.defaults.PreserveFormatting,
			},
		}
		h.sessions[chatID] = s
	}
	return s
}

// Settings returns a copy of the chat's settings
func (h *Handler) Settings(chatID int64) ChatSettings {
	s := h.session(chatID)

	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	return s.settings
}

// UpdateSettings applies fn to the chat's settings and returns the result
func (h *Handler) UpdateSettings(chatID int64, fn func(*ChatSettings)) ChatSettings {
	s := h.session(chatID)

	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	fn(&s.settings)
	return s.settings
}

// Inline keyboard buttons
var (
	btnDownload = tele.Btn{
		Unique: "download",
		Text:   "⬇️ Baixar",
	}
	btnHistory = tele.Btn{
		Unique: "history",
		Text:   "🕘 Histórico",
	}
	btnLoad = tele.Btn{
		Unique: "load",
	}
	btnClear = tele.Btn{
		Unique: "clear",
		Text:   "🧹 Limpar",
	}
	btnClearYes = tele.Btn{
		Unique: "clear_yes",
		Text:   "✅ Sim, limpar",
	}
	btnClearHistory = tele.Btn{
		Unique: "clear_history",
		Text:   "🗑 Limpar histórico",
	}
	btnClearHistoryYes = tele.Btn{
		Unique: "clear_history_yes",
		Text:   "✅ Sim, limpar histórico",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancelar",
	}
)

// resultMarkup returns the keyboard shown under a translation
func resultMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnDownload, btnClear),
		menu.Row(btnHistory),
	)
	return menu
}

// confirmMarkup returns a yes/no keyboard
func confirmMarkup(yes tele.Btn) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(yes, btnCancel))
	return menu
}
