package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remlc/remlc/internal/ast"
	"github.com/remlc/remlc/internal/errors"
)

func TestToReportCarriesCodePhaseAndMetadata(t *testing.T) {
	span := ast.Span{Start: ast.Pos{Offset: 3}, End: ast.Pos{Offset: 7}}
	d := New("capreg.stage.mismatch", DomainEffect, SeverityError, "capability not at required stage").
		WithPrimarySpan(span).
		WithAuditMetadata("effect.capability", "io.fs.read").
		Build()

	r := d.ToReport()
	assert.Equal(t, "capreg.stage.mismatch", r.Code)
	assert.Equal(t, "effect", r.Phase)
	assert.Equal(t, "capability not at required stage", r.Message)
	assert.Equal(t, "io.fs.read", r.Data["effect.capability"])
	require.NotNil(t, r.Span)
	assert.Equal(t, 3, r.Span.Start.Offset)
}

func TestAsReportErrorSurvivesUnwrap(t *testing.T) {
	d := New("typeck.mismatch.arrow", DomainTypeck, SeverityError, "type mismatch").Build()

	err := d.AsReportError()
	require.Error(t, err)

	got, ok := errors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, "typeck.mismatch.arrow", got.Code)
}
