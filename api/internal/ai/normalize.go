package ai

import (
	"encoding/json"

	"medassist/api/internal/util"
)

// The decode layer converges every provider reply into a fully-populated
// record. Two shapes come back in practice: the strict JSON the prompt asks
// for, and free prose when the model drifts. Prose is not an error; it turns
// into a canned record that carries the first part of the reply as the
// description. Nothing here ever fails.

const descriptionLimit = 200

// DecodeDiagnosis parses the symptom-variant reply.
func DecodeDiagnosis(raw string) Diagnosis {
	out := util.StripCodeFences(raw)
	var d Diagnosis
	if err := json.Unmarshal([]byte(out), &d); err != nil {
		d = fallbackDiagnosis(out)
	}
	sanitizeDiagnosis(&d, false)
	return d
}

// DecodePhotoDiagnosis parses the photo-variant reply, which additionally
// carries severity, anomaly flag and treatment phases.
func DecodePhotoDiagnosis(raw string) Diagnosis {
	out := util.StripCodeFences(raw)
	var d Diagnosis
	if err := json.Unmarshal([]byte(out), &d); err != nil {
		d = fallbackPhotoDiagnosis(out)
	}
	sanitizeDiagnosis(&d, true)
	return d
}

// DecodeTreatmentPlan parses the treatment-plan reply.
func DecodeTreatmentPlan(raw string) TreatmentPlan {
	out := util.StripCodeFences(raw)
	var p TreatmentPlan
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		p = fallbackTreatmentPlan()
	}
	sanitizeTreatmentPlan(&p)
	return p
}

// DecodeArticle parses the health-article reply.
func DecodeArticle(raw, topic string) Article {
	out := util.StripCodeFences(raw)
	var a Article
	if err := json.Unmarshal([]byte(out), &a); err != nil {
		a = fallbackArticle(out, topic)
	}
	sanitizeArticle(&a)
	return a
}

func fallbackDiagnosis(text string) Diagnosis {
	return Diagnosis{
		Condition:   "AI-Generated Diagnosis",
		Confidence:  75,
		Description: util.Truncate(text, descriptionLimit),
		NaturalRemedies: []string{
			"Rest and adequate sleep",
			"Stay hydrated with water",
			"Apply warm or cold compress",
			"Practice stress reduction",
			"Maintain healthy diet",
		},
		Foods: []string{
			"Fresh fruits and vegetables",
			"Lean proteins",
			"Whole grains",
			"Anti-inflammatory foods",
			"Plenty of fluids",
		},
		Medications: []string{
			"Over-the-counter pain relievers as needed",
			"Consult pharmacist for recommendations",
			"Follow package instructions",
		},
		Administration: []string{
			"Take medications with food",
			"Follow recommended dosages",
			"Monitor symptoms closely",
			"Seek medical attention if worsening",
		},
		Warning: "Consult a healthcare professional if symptoms persist or worsen.",
	}
}

func fallbackPhotoDiagnosis(text string) Diagnosis {
	return Diagnosis{
		Condition:       "AI-Generated Photo Diagnosis",
		Confidence:      78,
		Description:     util.Truncate(text, descriptionLimit),
		Severity:        SeverityModerate,
		AnomalyDetected: true,
		NaturalRemedies: []string{
			"Apply cool compresses to affected area",
			"Use natural anti-inflammatory remedies",
			"Maintain proper hygiene",
			"Get adequate rest",
			"Stay hydrated",
		},
		Foods: []string{
			"Anti-inflammatory foods",
			"Fresh fruits and vegetables",
			"Lean proteins",
			"Whole grains",
			"Healthy fats",
		},
		Medications: []string{
			"Over-the-counter pain relief",
			"Topical treatments",
			"Anti-inflammatory medications",
		},
		Exercises: []string{
			"Gentle stretching",
			"Light walking",
			"Breathing exercises",
			"Range of motion activities",
		},
		Administration: []string{
			"Take medications with food",
			"Apply treatments as directed",
			"Monitor symptoms closely",
			"Follow up with healthcare provider",
		},
		Prevention: []string{
			"Maintain good hygiene",
			"Avoid known triggers",
			"Regular health checkups",
			"Healthy lifestyle habits",
		},
		Warning: "Seek immediate medical attention if symptoms worsen or persist.",
		TreatmentPlan: &Phases{
			Phase1: "Immediate relief and symptom management (Days 1-3)",
			Phase2: "Active treatment and healing phase (Days 4-7)",
			Phase3: "Recovery and prevention phase (Week 2+)",
		},
	}
}

func fallbackTreatmentPlan() TreatmentPlan {
	return TreatmentPlan{
		LifecyclePhases: Phases{
			Phase1: "Immediate relief and symptom management",
			Phase2: "Active treatment and healing",
			Phase3: "Recovery and prevention",
		},
		NaturalRemedies: []string{
			"Rest and adequate sleep",
			"Stress reduction techniques",
			"Natural anti-inflammatory foods",
			"Gentle exercise as tolerated",
			"Hydration therapy",
			"Herbal remedies as appropriate",
		},
		Foods: []string{
			"Anti-inflammatory foods",
			"Fresh fruits and vegetables",
			"Lean proteins",
			"Whole grains",
			"Healthy fats",
			"Adequate hydration",
		},
		Medications: []string{
			"Over-the-counter pain relief",
			"Anti-inflammatory medications",
			"Topical treatments",
			"Supplements as recommended",
		},
		Exercises: []string{
			"Gentle stretching",
			"Light walking",
			"Breathing exercises",
			"Range of motion activities",
			"Gradual activity increase",
		},
		DailySchedule: []ScheduleEntry{
			{Time: "08:00", Activity: "Morning medication and breakfast", Type: "medication"},
			{Time: "12:00", Activity: "Healthy lunch and light exercise", Type: "nutrition"},
			{Time: "18:00", Activity: "Evening medication", Type: "medication"},
			{Time: "21:00", Activity: "Relaxation and preparation for sleep", Type: "wellness"},
		},
		PreventionTips: []string{
			"Maintain healthy lifestyle",
			"Regular exercise routine",
			"Stress management",
			"Adequate sleep",
		},
		PossibleCauses: []string{
			"Lifestyle factors",
			"Environmental triggers",
			"Genetic predisposition",
			"Previous injuries or conditions",
		},
	}
}

func fallbackArticle(text, topic string) Article {
	return Article{
		Title:    "Understanding " + topic + ": A Comprehensive Guide",
		Overview: util.Truncate(text, 300),
		KeyPoints: []string{
			"Understanding the condition",
			"Recognizing symptoms early",
			"Lifestyle modifications",
			"Treatment options",
			"Prevention strategies",
			"Long-term management",
		},
		NaturalTreatments: []string{
			"Dietary modifications",
			"Herbal remedies",
			"Physical therapy",
			"Stress management",
			"Sleep optimization",
		},
		Evidence:   "Recent research supports the effectiveness of natural treatments combined with conventional medicine.",
		Prevention: []string{"Regular health screenings", "Healthy diet and exercise", "Stress management", "Adequate sleep"},
		SeekHelp:   "Seek immediate medical attention if symptoms are severe, persistent, or worsening.",
	}
}
