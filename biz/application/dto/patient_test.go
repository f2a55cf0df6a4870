package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSeverity(t *testing.T) {
	assert.Equal(t, SeverityMild, NormalizeSeverity("轻度"))
	assert.Equal(t, SeveritySevere, NormalizeSeverity("重度"))
	assert.Equal(t, SeverityModerate, NormalizeSeverity(""))
	assert.Equal(t, SeverityModerate, NormalizeSeverity("极重"))
}

func TestNormalizeOmission(t *testing.T) {
	assert.Equal(t, OmissionDeny, NormalizeOmission("deny"))
	assert.Equal(t, OmissionNone, NormalizeOmission("no"))
	assert.Equal(t, OmissionVague, NormalizeOmission(""))
	assert.Equal(t, OmissionVague, NormalizeOmission("refuse"))
}
