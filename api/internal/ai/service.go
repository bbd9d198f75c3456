package ai

import (
	"context"

	"medassist/api/internal/ai/prompt"
	"medassist/api/internal/util"
)

// Service is the response normalizer: it selects an engine for the session,
// issues one provider call and converges the reply into a strict record.
//
// Failure policy: a missing key surfaces as ErrNotConfigured and a failed
// call surfaces as the provider error, both uncaught here; a reply that is
// not the JSON we asked for is absorbed by the decode layer and never fails.
type Service struct {
	engines *Manager
}

func NewService(engines *Manager) *Service {
	return &Service{engines: engines}
}

func (s *Service) Engines() *Manager { return s.engines }

// Configured reports whether a live provider call can be attempted for the
// session. Callers choose between live and demo mode on this.
func (s *Service) Configured(session string) bool {
	return s.engines.Configured(session)
}

func (s *Service) GenerateSymptomDiagnosis(ctx context.Context, session string, q SymptomQuery) (Diagnosis, error) {
	raw, err := s.engines.Get(session).Complete(ctx, CompletionInput{
		System: prompt.System,
		Prompt: prompt.SymptomDiagnosis(q.Symptoms, q.BodyParts, q.Severity, q.Duration),
	})
	if err != nil {
		return Diagnosis{}, err
	}
	return DecodeDiagnosis(raw), nil
}

func (s *Service) GenerateTreatmentPlan(ctx context.Context, session, condition, severity string) (TreatmentPlan, error) {
	raw, err := s.engines.Get(session).Complete(ctx, CompletionInput{
		System: prompt.System,
		Prompt: prompt.TreatmentPlan(condition, severity),
	})
	if err != nil {
		return TreatmentPlan{}, err
	}
	return DecodeTreatmentPlan(raw), nil
}

func (s *Service) AnalyzePhoto(ctx context.Context, session string, q PhotoQuery) (Diagnosis, error) {
	mime := util.PickMIME(q.MIME, "", q.Image)
	raw, err := s.engines.Get(session).Complete(ctx, CompletionInput{
		System: prompt.System,
		Prompt: prompt.PhotoAnalysis(q.ImageType, q.BodyPart),
		Image:  q.Image,
		MIME:   mime,
	})
	if err != nil {
		return Diagnosis{}, err
	}
	return DecodePhotoDiagnosis(raw), nil
}

func (s *Service) GenerateHealthArticle(ctx context.Context, session, topic string) (Article, error) {
	raw, err := s.engines.Get(session).Complete(ctx, CompletionInput{
		System: prompt.System,
		Prompt: prompt.HealthArticle(topic),
	})
	if err != nil {
		return Article{}, err
	}
	return DecodeArticle(raw, topic), nil
}
