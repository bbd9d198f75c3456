package ai

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Diagnosis is the normalized result of a symptom or photo analysis. After
// normalization every list field is non-nil, so consumers never null-check.
type Diagnosis struct {
	Condition   string `json:"condition"`
	Confidence  int    `json:"confidence"` // 0..100
	Description string `json:"description"`

	// Photo variant only; empty/false for the symptom variant.
	Severity        Severity `json:"severity,omitempty"`
	AnomalyDetected bool     `json:"anomalyDetected,omitempty"`

	NaturalRemedies []string `json:"naturalRemedies"`
	Foods           []string `json:"foods"`
	Medications     []string `json:"medications"`
	Exercises       []string `json:"exercises,omitempty"`
	Administration  []string `json:"administration"`
	Prevention      []string `json:"prevention,omitempty"`

	Warning       string  `json:"warning"`
	TreatmentPlan *Phases `json:"treatmentPlan,omitempty"`
}

type Phases struct {
	Phase1 string `json:"phase1"`
	Phase2 string `json:"phase2"`
	Phase3 string `json:"phase3"`
}

type ScheduleEntry struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Type     string `json:"type"` // "medication" | "nutrition" | "wellness"
}

// TreatmentPlan is the normalized phased-care plan for a known condition.
type TreatmentPlan struct {
	LifecyclePhases Phases          `json:"lifecyclePhases"`
	NaturalRemedies []string        `json:"naturalRemedies"`
	Foods           []string        `json:"foods"`
	Medications     []string        `json:"medications"`
	Exercises       []string        `json:"exercises"`
	DailySchedule   []ScheduleEntry `json:"dailySchedule"`
	PreventionTips  []string        `json:"preventionTips"`
	PossibleCauses  []string        `json:"possibleCauses"`
}

// Article is a generated health-education article.
type Article struct {
	Title             string   `json:"title"`
	Overview          string   `json:"overview"`
	KeyPoints         []string `json:"keyPoints"`
	NaturalTreatments []string `json:"naturalTreatments"`
	Evidence          string   `json:"evidence"`
	Prevention        []string `json:"prevention"`
	SeekHelp          string   `json:"seekHelp"`
}

// SymptomQuery is the input for a symptom analysis.
type SymptomQuery struct {
	Symptoms  string   `json:"symptoms"`
	BodyParts []string `json:"bodyParts"`
	Severity  string   `json:"severity"`
	Duration  string   `json:"duration"`
}

// PhotoQuery is the input for a photo analysis. Image is raw bytes; MIME may
// be empty, in which case it is sniffed.
type PhotoQuery struct {
	Image     []byte
	MIME      string
	ImageType string
	BodyPart  string
}
