package cleaner

import (
	"context"
	"errors"
	"testing"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_InstructionsListsOnlyEnabledRules(t *testing.T) {
	opts := Options{SmartQuotes: true, FixGrammar: true}

	got := opts.Instructions()

	assert.Contains(t, got, "quotation marks")
	assert.Contains(t, got, "grammatical errors")
	assert.NotContains(t, got, "markdown")
	assert.NotContains(t, got, "em dashes")
}

func TestOptions_InstructionsAllDisabled(t *testing.T) {
	got := Options{}.Instructions()

	assert.Equal(t, "Return the text unchanged.", got)
}

// countingCleaner records how often the inner cleaner is invoked.
type countingCleaner struct {
	calls  int
	result string
	err    error
}

func (c *countingCleaner) Clean(_ context.Context, _ string, _ Options) (string, error) {
	c.calls++
	return c.result, c.err
}

func TestCaching_SecondIdenticalRequestHitsCache(t *testing.T) {
	inner := &countingCleaner{result: "clean"}
	c := NewCaching(inner, time.Minute)

	opts := DefaultOptions()
	first, err := c.Clean(context.Background(), "dirty", opts)
	require.NoError(t, err)
	second, err := c.Clean(context.Background(), "dirty", opts)
	require.NoError(t, err)

	assert.Equal(t, "clean", first)
	assert.Equal(t, "clean", second)
	assert.Equal(t, 1, inner.calls)
}

func TestCaching_ChangedOptionMissesCache(t *testing.T) {
	inner := &countingCleaner{result: "clean"}
	c := NewCaching(inner, time.Minute)

	opts := DefaultOptions()
	_, err := c.Clean(context.Background(), "dirty", opts)
	require.NoError(t, err)

	opts.FixGrammar = true
	_, err = c.Clean(context.Background(), "dirty", opts)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "different options snapshot must reach the service")
}

func TestCaching_FailuresAreNotCached(t *testing.T) {
	inner := &countingCleaner{err: errors.New("service unavailable")}
	c := NewCaching(inner, time.Minute)

	_, err := c.Clean(context.Background(), "dirty", DefaultOptions())
	require.Error(t, err)

	inner.err = nil
	inner.result = "clean"
	got, err := c.Clean(context.Background(), "dirty", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "clean", got)
	assert.Equal(t, 2, inner.calls)
}

// scriptedMessages returns canned Anthropic responses.
type scriptedMessages struct {
	resp   *anthropic.Message
	err    error
	gotSys string
}

func (s *scriptedMessages) New(_ context.Context, body anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	if len(body.System) > 0 {
		s.gotSys = body.System[0].Text
	}
	return s.resp, s.err
}

func TestAnthropic_CleanExtractsTextBlocks(t *testing.T) {
	client := &scriptedMessages{
		resp: &anthropic.Message{
			Content: []anthropic.ContentBlockUnion{
				{Type: "text", Text: "cleaned text"},
			},
		},
	}
	a := newAnthropicWithClient(client, defaultModel)

	got, err := a.Clean(context.Background(), "dirty — text", Options{Dashes: true})
	require.NoError(t, err)

	assert.Equal(t, "cleaned text", got)
	assert.Contains(t, client.gotSys, "em dashes", "option instructions travel as the system prompt")
}

func TestAnthropic_CleanWrapsServiceError(t *testing.T) {
	client := &scriptedMessages{err: errors.New("overloaded")}
	a := newAnthropicWithClient(client, defaultModel)

	_, err := a.Clean(context.Background(), "dirty", DefaultOptions())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleaning request")
}

func TestAnthropic_CleanRejectsEmptyResponse(t *testing.T) {
	client := &scriptedMessages{
		resp: &anthropic.Message{Content: []anthropic.ContentBlockUnion{}},
	}
	a := newAnthropicWithClient(client, defaultModel)

	_, err := a.Clean(context.Background(), "dirty", DefaultOptions())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestNewAnthropic_MissingAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := NewAnthropic(AnthropicConfig{})

	require.ErrorIs(t, err, ErrMissingAPIKey)
}
