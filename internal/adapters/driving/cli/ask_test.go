package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_Short(t *testing.T) {
	assert.Equal(t, "Ask a question about indexed documents", askCmd.Short)
}

func TestAskCmd_Long(t *testing.T) {
	assert.Contains(t, askCmd.Long, "summarize")
	assert.Contains(t, askCmd.Long, "translate:<language>")
}

func TestAskCmd_PrintsAnswerWithSources(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what are the payment terms?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Payment is due within thirty days.")
	assert.Contains(t, buf.String(), "Sources:")
	assert.Contains(t, buf.String(), "Service Contract")
}

func TestAskCmd_PassesQuestionThrough(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock, ok := answerService.(*mockAnswerService)
	require.True(t, ok)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "summarize"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "summarize", mock.lastAsk)
}

func TestAskCmd_NoSourcesOmitsSection(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock, ok := answerService.(*mockAnswerService)
	require.True(t, ok)
	mock.answer.Sources = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "hello"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "Sources:")
}

func TestAskCmd_ErrorsWithoutService(t *testing.T) {
	old := answerService
	answerService = nil
	defer func() { answerService = old }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "answer service not configured")
}

func TestAskCmd_PropagatesFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock, ok := answerService.(*mockAnswerService)
	require.True(t, ok)
	mock.err = errMockFailure

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to answer")
}
