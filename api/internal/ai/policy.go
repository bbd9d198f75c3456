package ai

// Server-side guards on decoded records. The providers are untrusted: valid
// JSON may still carry out-of-range numbers, unknown enum values or missing
// lists. Downstream code (item extraction, UI) relies on every list being
// non-nil and every enum being one of the known values.

func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func sanitizeDiagnosis(d *Diagnosis, photo bool) {
	d.Confidence = clampConfidence(d.Confidence)
	d.NaturalRemedies = nonNil(d.NaturalRemedies)
	d.Foods = nonNil(d.Foods)
	d.Medications = nonNil(d.Medications)
	d.Administration = nonNil(d.Administration)
	if photo {
		d.Exercises = nonNil(d.Exercises)
		d.Prevention = nonNil(d.Prevention)
		switch d.Severity {
		case SeverityMild, SeverityModerate, SeveritySevere:
		default:
			d.Severity = SeverityModerate
		}
	} else {
		// Symptom variant carries no severity or anomaly flag.
		d.Severity = ""
		d.AnomalyDetected = false
		d.TreatmentPlan = nil
	}
}

func sanitizeTreatmentPlan(p *TreatmentPlan) {
	p.NaturalRemedies = nonNil(p.NaturalRemedies)
	p.Foods = nonNil(p.Foods)
	p.Medications = nonNil(p.Medications)
	p.Exercises = nonNil(p.Exercises)
	p.PreventionTips = nonNil(p.PreventionTips)
	p.PossibleCauses = nonNil(p.PossibleCauses)
	if p.DailySchedule == nil {
		p.DailySchedule = []ScheduleEntry{}
	}
}

func sanitizeArticle(a *Article) {
	a.KeyPoints = nonNil(a.KeyPoints)
	a.NaturalTreatments = nonNil(a.NaturalTreatments)
	a.Prevention = nonNil(a.Prevention)
}
