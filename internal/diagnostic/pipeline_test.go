package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineDescriptorIdentity(t *testing.T) {
	p := NewPipelineDescriptor("examples/greet.rem", "typecheck", "remlc", []string{"remlc", "check", "examples/greet.rem"})

	meta := p.BaseMetadata()
	assert.Equal(t, "dsl://examples/greet.rem", meta["pipeline.id"])
	assert.Equal(t, "greet", meta["pipeline.dsl_id"])
	assert.Equal(t, "greet.rem", meta["pipeline.node"])
	assert.NotEmpty(t, meta["pipeline.run_id"])
	assert.Equal(t, SchemaVersion, meta["schema.version"])
}

func TestStartedEventValidates(t *testing.T) {
	p := NewPipelineDescriptor("a.rem", "parse", "remlc", nil)
	ev := p.StartedEvent(1700000000)
	require.NoError(t, ev.Validate())
	assert.Equal(t, EventPipelineStarted, ev.Kind)
}

func TestCompletedEventAddsOutcomeAndCount(t *testing.T) {
	p := NewPipelineDescriptor("a.rem", "typecheck", "remlc", nil)
	ev := p.CompletedEvent(1700000001, "ok", 3)
	require.NoError(t, ev.Validate())
	assert.Equal(t, "ok", ev.Envelope.Metadata["pipeline.outcome"])
	assert.Equal(t, 3, ev.Envelope.Metadata["pipeline.count"])
}

func TestFailedEventCarriesErrorTriple(t *testing.T) {
	p := NewPipelineDescriptor("a.rem", "typecheck", "remlc", nil)
	ev := p.FailedEvent(1700000002, "typeck.mismatch.arrow", "type mismatch", SeverityError)
	require.NoError(t, ev.Validate())
	assert.Equal(t, "typeck.mismatch.arrow", ev.Envelope.Metadata["error.code"])
	assert.Equal(t, string(SeverityError), ev.Envelope.Metadata["error.severity"])
}
