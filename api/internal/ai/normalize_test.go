package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDiagnosisStrictJSON(t *testing.T) {
	raw := `{
		"condition": "Tension Headache",
		"confidence": 82,
		"description": "A common headache caused by muscle tension.",
		"naturalRemedies": ["Rest in a dark room"],
		"foods": ["Water", "Bananas"],
		"medications": ["Paracetamol"],
		"administration": ["Take with food"],
		"warning": "See a doctor if it persists."
	}`
	d := DecodeDiagnosis(raw)

	assert.Equal(t, "Tension Headache", d.Condition)
	assert.Equal(t, 82, d.Confidence)
	assert.Equal(t, []string{"Water", "Bananas"}, d.Foods)
	assert.Equal(t, []string{"Paracetamol"}, d.Medications)
}

func TestDecodeDiagnosisStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"condition\":\"Flu\",\"confidence\":70,\"description\":\"x\"}\n```"
	d := DecodeDiagnosis(raw)
	assert.Equal(t, "Flu", d.Condition)
}

func TestDecodeDiagnosisProseFallback(t *testing.T) {
	d := DecodeDiagnosis("Take rest and drink water")

	assert.Equal(t, "AI-Generated Diagnosis", d.Condition)
	assert.Contains(t, d.Description, "Take rest and drink water")
	assert.NotEmpty(t, d.NaturalRemedies)
	assert.NotEmpty(t, d.Foods)
	assert.NotEmpty(t, d.Medications)
	assert.NotEmpty(t, d.Administration)
	assert.NotEmpty(t, d.Warning)
}

// Every list must come back non-nil regardless of what the provider sent,
// including valid JSON with fields missing entirely.
func TestDecodeDiagnosisListsNeverNil(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"partial object", `{"condition":"Flu","confidence":70}`},
		{"prose", "try sleeping more"},
		{"empty string", ""},
		{"json array", `[1,2,3]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := DecodeDiagnosis(tc.raw)
			require.NotNil(t, d.NaturalRemedies)
			require.NotNil(t, d.Foods)
			require.NotNil(t, d.Medications)
			require.NotNil(t, d.Administration)
		})
	}
}

func TestDecodeDiagnosisClampsConfidence(t *testing.T) {
	assert.Equal(t, 100, DecodeDiagnosis(`{"confidence": 250}`).Confidence)
	assert.Equal(t, 0, DecodeDiagnosis(`{"confidence": -5}`).Confidence)
}

func TestDecodeDiagnosisSymptomVariantDropsPhotoFields(t *testing.T) {
	raw := `{"condition":"Flu","severity":"severe","anomalyDetected":true,
	         "treatmentPlan":{"phase1":"a","phase2":"b","phase3":"c"}}`
	d := DecodeDiagnosis(raw)
	assert.Empty(t, d.Severity)
	assert.False(t, d.AnomalyDetected)
	assert.Nil(t, d.TreatmentPlan)
}

func TestDecodePhotoDiagnosis(t *testing.T) {
	t.Run("valid severity kept", func(t *testing.T) {
		d := DecodePhotoDiagnosis(`{"condition":"Dermatitis","severity":"severe"}`)
		assert.Equal(t, SeveritySevere, d.Severity)
	})
	t.Run("unknown severity defaults to moderate", func(t *testing.T) {
		d := DecodePhotoDiagnosis(`{"condition":"Dermatitis","severity":"catastrophic"}`)
		assert.Equal(t, SeverityModerate, d.Severity)
	})
	t.Run("prose fallback fills photo fields", func(t *testing.T) {
		d := DecodePhotoDiagnosis("looks like a mild rash to me")
		assert.Equal(t, "AI-Generated Photo Diagnosis", d.Condition)
		assert.Equal(t, SeverityModerate, d.Severity)
		assert.True(t, d.AnomalyDetected)
		require.NotNil(t, d.TreatmentPlan)
		assert.NotEmpty(t, d.TreatmentPlan.Phase1)
		assert.NotEmpty(t, d.Exercises)
		assert.NotEmpty(t, d.Prevention)
	})
}

func TestDecodeTreatmentPlan(t *testing.T) {
	t.Run("strict JSON", func(t *testing.T) {
		p := DecodeTreatmentPlan(`{
			"lifecyclePhases": {"phase1":"rest","phase2":"treat","phase3":"recover"},
			"naturalRemedies": ["tea"],
			"dailySchedule": [{"time":"08:00","activity":"meds","type":"medication"}]
		}`)
		assert.Equal(t, "rest", p.LifecyclePhases.Phase1)
		assert.Equal(t, []string{"tea"}, p.NaturalRemedies)
		require.Len(t, p.DailySchedule, 1)
		assert.Equal(t, "medication", p.DailySchedule[0].Type)
		// Missing lists are present and empty.
		assert.NotNil(t, p.Foods)
		assert.NotNil(t, p.Exercises)
	})
	t.Run("prose fallback", func(t *testing.T) {
		p := DecodeTreatmentPlan("phase one: rest. phase two: medicate.")
		assert.NotEmpty(t, p.LifecyclePhases.Phase1)
		assert.Len(t, p.DailySchedule, 4)
		assert.NotEmpty(t, p.PossibleCauses)
	})
}

func TestDecodeArticle(t *testing.T) {
	a := DecodeArticle("migraines are caused by many things", "Migraines")
	assert.Equal(t, "Understanding Migraines: A Comprehensive Guide", a.Title)
	assert.Contains(t, a.Overview, "migraines")
	assert.NotEmpty(t, a.KeyPoints)
}
