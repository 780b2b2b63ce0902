package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"techtranslator/internal/domain"
	"techtranslator/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestController(translator Translator) (*SessionController, *HistoryStore) {
	history, _ := newMemoryHistory()
	controller := NewSessionController(translator, history, testutil.NewTestLogger())
	controller.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	controller.newID = func() string { return "fixed-id" }
	return controller, history
}

func TestSessionController_InitialState(t *testing.T) {
	controller, _ := newTestController(new(testutil.MockTranslator))

	assert.Equal(t, domain.PhaseIdle, controller.State().Phase)
	assert.True(t, controller.Display().IsEmpty())
}

func TestSessionController_Submit_EmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "spaces", text: "   "},
		{name: "mixed whitespace", text: "\n\t  \r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translator := new(testutil.MockTranslator)
			controller, history := newTestController(translator)

			state, err := controller.Submit(context.Background(), tt.text, "auto", "en", false)

			require.NoError(t, err)
			assert.Equal(t, domain.PhaseFailed, state.Phase)
			assert.True(t, errors.Is(state.Err, domain.ErrEmptyInput))
			assert.Equal(t, domain.PhaseIdle, controller.State().Phase)
			assert.Empty(t, history.List(context.Background()))
			translator.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything)
		})
	}
}

func TestSessionController_Submit_Success(t *testing.T) {
	ctx := context.Background()
	translator := new(testutil.MockTranslator)
	translator.On("Translate", mock.Anything, domain.TranslationRequest{
		Text:               "hello",
		SourceLang:         "auto",
		TargetLang:         "en",
		PreserveFormatting: false,
	}).Return(&domain.TranslationResult{TranslatedText: "olá", ElapsedSeconds: 0.42}, nil)

	controller, history := newTestController(translator)

	state, err := controller.Submit(ctx, "  hello\n", "auto", "en", false)

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSucceeded, state.Phase)
	require.NotNil(t, state.Result)
	assert.Equal(t, "olá", state.Result.TranslatedText)
	require.NotNil(t, state.Record)
	assert.Equal(t, "fixed-id", state.Record.ID)

	records := history.List(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, domain.TranslationRecord{
		ID:             "fixed-id",
		Original:       "hello",
		Translated:     "olá",
		SourceLang:     "auto",
		TargetLang:     "en",
		Timestamp:      time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC),
		ElapsedSeconds: 0.42,
	}, records[0])

	assert.Equal(t, domain.PhaseSucceeded, controller.State().Phase)
	assert.Equal(t, "olá", controller.Display().Translated)
	assert.Equal(t, "hello", controller.Display().Original)
	translator.AssertExpectations(t)
}

func TestSessionController_Submit_Failure(t *testing.T) {
	tests := []struct {
		name            string
		mockError       error
		expectedMessage string
	}{
		{
			name:            "service error",
			mockError:       &domain.TranslationError{Message: "quota exceeded", StatusCode: 500},
			expectedMessage: "quota exceeded",
		},
		{
			name:            "plain error is wrapped",
			mockError:       fmt.Errorf("boom"),
			expectedMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			translator := new(testutil.MockTranslator)
			translator.On("Translate", mock.Anything, mock.Anything).Return(nil, tt.mockError)

			controller, history := newTestController(translator)
			history.Append(ctx, testutil.NewTestRecord("existing", "a", "b"))

			state, err := controller.Submit(ctx, "hello", "auto", "en", false)

			require.NoError(t, err)
			assert.Equal(t, domain.PhaseFailed, state.Phase)
			assert.Equal(t, tt.expectedMessage, state.Message())
			var te *domain.TranslationError
			assert.True(t, errors.As(state.Err, &te))

			records := history.List(ctx)
			require.Len(t, records, 1)
			assert.Equal(t, "existing", records[0].ID)
			assert.True(t, controller.Display().IsEmpty())
			translator.AssertExpectations(t)
		})
	}
}

func TestSessionController_Submit_NilResult(t *testing.T) {
	translator := new(testutil.MockTranslator)
	translator.On("Translate", mock.Anything, mock.Anything).Return(nil, nil)

	controller, history := newTestController(translator)

	state, err := controller.Submit(context.Background(), "hello", "en", "pt", true)

	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, state.Phase)
	assert.Empty(t, history.List(context.Background()))
}

func TestSessionController_Submit_RecoversAfterFailure(t *testing.T) {
	ctx := context.Background()
	translator := new(testutil.MockTranslator)
	translator.On("Translate", mock.Anything, mock.Anything).
		Return(nil, &domain.TranslationError{Message: "unreachable"}).Once()
	translator.On("Translate", mock.Anything, mock.Anything).
		Return(&domain.TranslationResult{TranslatedText: "olá"}, nil).Once()

	controller, history := newTestController(translator)

	state, err := controller.Submit(ctx, "hello", "en", "pt", true)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseFailed, state.Phase)

	state, err = controller.Submit(ctx, "hello", "en", "pt", true)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSucceeded, state.Phase)
	assert.Len(t, history.List(ctx), 1)
	translator.AssertExpectations(t)
}

func TestSessionController_Submit_RejectsWhileTranslating(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	translator := new(testutil.MockTranslator)
	translator.On("Translate", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.TranslationResult{TranslatedText: "olá"}, nil).Once()

	controller, history := newTestController(translator)

	done := make(chan domain.SessionState)
	go func() {
		state, _ := controller.Submit(ctx, "hello", "en", "pt", false)
		done <- state
	}()

	<-started
	assert.Equal(t, domain.PhaseTranslating, controller.State().Phase)

	_, err := controller.Submit(ctx, "second", "en", "pt", false)
	assert.ErrorIs(t, err, domain.ErrSessionBusy)

	close(release)
	state := <-done
	assert.Equal(t, domain.PhaseSucceeded, state.Phase)
	assert.Len(t, history.List(ctx), 1)
	translator.AssertNumberOfCalls(t, "Translate", 1)
}

func TestSessionController_ClearWorkingText(t *testing.T) {
	ctx := context.Background()
	translator := new(testutil.MockTranslator)
	translator.On("Translate", mock.Anything, mock.Anything).
		Return(&domain.TranslationResult{TranslatedText: "olá"}, nil)

	controller, history := newTestController(translator)
	_, err := controller.Submit(ctx, "hello", "en", "pt", false)
	require.NoError(t, err)

	assert.False(t, controller.ClearWorkingText(false))
	assert.Equal(t, "olá", controller.Display().Translated)

	assert.True(t, controller.ClearWorkingText(true))
	assert.True(t, controller.Display().IsEmpty())
	assert.Len(t, history.List(ctx), 1)
}

func TestSessionController_LoadFromHistory(t *testing.T) {
	ctx := context.Background()
	translator := new(testutil.MockTranslator)
	controller, history := newTestController(translator)

	stored := testutil.NewTestRecord("id-1", "hello world", "olá mundo")
	history.Append(ctx, stored)

	record, found := history.FindByID(ctx, "id-1")
	require.True(t, found)

	display := controller.LoadFromHistory(record)

	assert.Equal(t, stored.Original, display.Original)
	assert.Equal(t, stored.Translated, display.Translated)
	assert.Equal(t, stored.SourceLang, display.SourceLang)
	assert.Equal(t, stored.TargetLang, display.TargetLang)
	assert.Equal(t, stored.ElapsedSeconds, display.ElapsedSeconds)

	assert.Equal(t, domain.PhaseIdle, controller.State().Phase)
	assert.True(t, controller.Display().IsEmpty())
	assert.Len(t, history.List(ctx), 1)
}

func TestSessionController_ShowOnDisplay(t *testing.T) {
	controller, _ := newTestController(new(testutil.MockTranslator))
	record := testutil.NewTestRecord("id-1", "hello", "olá")

	controller.ShowOnDisplay(controller.LoadFromHistory(record))

	assert.Equal(t, "olá", controller.Display().Translated)
	assert.Equal(t, domain.PhaseIdle, controller.State().Phase)

	controller.ClearWorkingText(true)
	assert.True(t, controller.Display().IsEmpty())
}
