package diagnostic

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SchemaVersion is the stamped schema version for every pipeline-run
// audit envelope this package produces.
const SchemaVersion = "remlc.audit.v1"

// PipelineDescriptor identifies one compiler pipeline run: the source
// file driving it, which phase is executing, and the command line that
// launched it. BaseMetadata turns this into the key set every
// pipeline_started/pipeline_completed/pipeline_failed event shares.
type PipelineDescriptor struct {
	SourcePath    string
	Phase         string
	ProgramName   string
	CommandLine   []string
	RunID         string
	AuditChannel  string
	PolicyVersion string
}

// NewPipelineDescriptor returns a descriptor with a freshly generated
// run id, deriving the dsl id and node name from sourcePath the same
// way a dsl://<path> identifier is constructed: the node is the file
// name, the dsl id is the file name without its extension.
func NewPipelineDescriptor(sourcePath, phase, programName string, commandLine []string) PipelineDescriptor {
	return PipelineDescriptor{
		SourcePath:    sourcePath,
		Phase:         phase,
		ProgramName:   programName,
		CommandLine:   append([]string(nil), commandLine...),
		RunID:         uuid.NewString(),
		AuditChannel:  "pipeline",
		PolicyVersion: "1",
	}
}

func (p PipelineDescriptor) id() string {
	return fmt.Sprintf("dsl://%s", p.SourcePath)
}

func (p PipelineDescriptor) dslID() string {
	base := filepath.Base(p.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (p PipelineDescriptor) node() string {
	return filepath.Base(p.SourcePath)
}

// BaseMetadata returns the key/value pairs every pipeline event built
// from this descriptor carries, regardless of which pipeline_* kind it
// becomes: identity (pipeline.id/dsl_id/node), provenance
// (pipeline.run_id/command/program, cli.command_line), the schema
// version, and the audit channel/policy-version pair.
func (p PipelineDescriptor) BaseMetadata() map[string]any {
	return map[string]any{
		"pipeline.id":          p.id(),
		"pipeline.dsl_id":      p.dslID(),
		"pipeline.node":        p.node(),
		"pipeline.run_id":      p.RunID,
		"pipeline.command":     p.Phase,
		"pipeline.program":     p.ProgramName,
		"cli.command_line":     append([]string(nil), p.CommandLine...),
		"schema.version":       SchemaVersion,
		"audit.channel":        p.AuditChannel,
		"audit.policy.version": p.PolicyVersion,
	}
}

// StartedEvent builds the pipeline_started event for this run.
func (p PipelineDescriptor) StartedEvent(timestampSecs int64) Event {
	ev := NewEvent(EventPipelineStarted, timestampSecs)
	for k, v := range p.BaseMetadata() {
		ev.Envelope.InsertMetadata(k, v)
	}
	ev.Envelope.InsertMetadata("timestamp", timestampSecs)
	return ev
}

// CompletedEvent builds the pipeline_completed event, adding the
// outcome tag and item count on top of the shared base metadata.
func (p PipelineDescriptor) CompletedEvent(timestampSecs int64, outcome string, count int) Event {
	ev := p.StartedEvent(timestampSecs)
	ev.Kind = EventPipelineCompleted
	ev.Envelope.InsertMetadata(eventKindKey, string(EventPipelineCompleted))
	ev.Envelope.InsertMetadata("pipeline.outcome", outcome)
	ev.Envelope.InsertMetadata("pipeline.count", count)
	return ev
}

// FailedEvent builds the pipeline_failed event from a diagnostic code,
// message, and severity, on top of the shared base metadata.
func (p PipelineDescriptor) FailedEvent(timestampSecs int64, code, message string, severity Severity) Event {
	ev := p.StartedEvent(timestampSecs)
	ev.Kind = EventPipelineFailed
	ev.Envelope.InsertMetadata(eventKindKey, string(EventPipelineFailed))
	ev.Envelope.InsertMetadata("error.code", code)
	ev.Envelope.InsertMetadata("error.message", message)
	ev.Envelope.InsertMetadata("error.severity", string(severity))
	return ev
}
