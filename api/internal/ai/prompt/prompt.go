// Package prompt holds the instruction templates sent to the AI providers.
// Every template demands strict JSON output; the decode layer still treats
// the reply as untrusted text and falls back when the model drifts.
package prompt

import (
	"fmt"
	"strings"
)

const System = "You are a medical AI assistant. Provide helpful, accurate medical information while emphasizing the importance of consulting healthcare professionals."

const symptomTemplate = `As a medical AI assistant, analyze the following symptoms and provide a comprehensive diagnosis and treatment plan:

Symptoms: %s
Affected body parts: %s
Severity: %s
Duration: %s

Please provide a structured response with:
1. Most likely condition name
2. Confidence percentage (0-100)
3. Brief description of the condition
4. 5 natural remedies with specific instructions
5. 5 healing foods and dietary recommendations
6. 3 recommended medications (over-the-counter)
7. 4 administration instructions
8. Important warning signs to watch for

Format the response as a JSON object with the following structure:
{
  "condition": "condition name",
  "confidence": number,
  "description": "description",
  "naturalRemedies": ["remedy1", "remedy2", ...],
  "foods": ["food1", "food2", ...],
  "medications": ["med1", "med2", ...],
  "administration": ["instruction1", "instruction2", ...],
  "warning": "warning text"
}
Return only JSON. Any text outside the JSON object is an error.`

func SymptomDiagnosis(symptoms string, bodyParts []string, severity, duration string) string {
	return fmt.Sprintf(symptomTemplate, symptoms, strings.Join(bodyParts, ", "), severity, duration)
}

const treatmentTemplate = `Create a comprehensive treatment plan for: %s (%s severity)

Provide a detailed treatment plan with:
1. Lifecycle phases (3 phases with descriptions)
2. 6 natural remedies with specific instructions
3. 6 healing foods and dietary recommendations
4. 4 recommended medications
5. 5 recommended exercises
6. Daily schedule with 4 time-based activities
7. 4 prevention tips for future occurrences
8. Possible causes (3-4 causes)

Format as JSON:
{
  "lifecyclePhases": {
    "phase1": "description",
    "phase2": "description",
    "phase3": "description"
  },
  "naturalRemedies": ["remedy1", ...],
  "foods": ["food1", ...],
  "medications": ["med1", ...],
  "exercises": ["exercise1", ...],
  "dailySchedule": [
    {"time": "08:00", "activity": "activity", "type": "medication"},
    ...
  ],
  "preventionTips": ["tip1", ...],
  "possibleCauses": ["cause1", ...]
}
Return only JSON. Any text outside the JSON object is an error.`

func TreatmentPlan(condition, severity string) string {
	return fmt.Sprintf(treatmentTemplate, condition, severity)
}

const photoTemplate = `As a medical AI assistant, analyze this medical image and provide a comprehensive diagnosis:

Image Type: %s
Body Part: %s

Please provide a structured response with:
1. Condition name and confidence percentage (0-100)
2. Brief description of findings
3. Severity level (mild, moderate, severe)
4. Whether anomaly is detected (true/false)
5. 5 natural remedies with specific instructions
6. 5 healing foods and dietary recommendations
7. 3 recommended medications with dosages
8. 4 exercises suitable for this condition
9. 4 administration instructions
10. Prevention strategies
11. Warning signs to watch for
12. Treatment plan phases

Format the response as a JSON object with the following structure:
{
  "condition": "condition name",
  "confidence": number,
  "description": "description",
  "severity": "mild|moderate|severe",
  "anomalyDetected": boolean,
  "naturalRemedies": ["remedy1", "remedy2", ...],
  "foods": ["food1", "food2", ...],
  "medications": ["med1", "med2", ...],
  "exercises": ["exercise1", "exercise2", ...],
  "administration": ["instruction1", "instruction2", ...],
  "prevention": ["strategy1", "strategy2", ...],
  "warning": "warning text",
  "treatmentPlan": {
    "phase1": "description",
    "phase2": "description",
    "phase3": "description"
  }
}
Return only JSON. Any text outside the JSON object is an error.`

func PhotoAnalysis(imageType, bodyPart string) string {
	return fmt.Sprintf(photoTemplate, imageType, bodyPart)
}

const articleTemplate = `Write a comprehensive health education article about: %s

Include:
1. Detailed overview (2-3 paragraphs)
2. 6 key points with actionable advice
3. 5 natural treatments with specific instructions
4. Scientific evidence and recent research
5. Prevention strategies
6. When to seek medical attention

Format as JSON:
{
  "title": "article title",
  "overview": "detailed overview text",
  "keyPoints": ["point1", "point2", ...],
  "naturalTreatments": ["treatment1", ...],
  "evidence": "scientific evidence text",
  "prevention": ["strategy1", ...],
  "seekHelp": "when to seek medical attention"
}
Return only JSON. Any text outside the JSON object is an error.`

func HealthArticle(topic string) string {
	return fmt.Sprintf(articleTemplate, topic)
}
