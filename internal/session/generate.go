package session

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"imgstudio/config"
	"imgstudio/internal/generation"
	"imgstudio/internal/openai"
	"imgstudio/internal/presets"
)

// Request is a user generation request. Params.Prompt is the prompt as typed;
// Style names a style preset applied before dispatch.
type Request struct {
	Params generation.Params
	Style  string
}

// Generate runs one generation for the active profile. Successful outcomes
// are recorded in history with the user's original prompt. It returns
// ErrGenerationInProgress when another generation is running and
// ErrProfileNotValidated when the active profile has not passed validation.
func (s *Session) Generate(ctx context.Context, d *generation.Dispatcher, client *openai.Client, req Request) (generation.Outcome, *HistoryEntry, error) {
	profile := s.ActiveProfile()
	if !profile.Validated {
		return generation.Outcome{}, nil, fmt.Errorf("%w: %s", ErrProfileNotValidated, profile.Name)
	}
	if err := s.BeginGeneration(); err != nil {
		return generation.Outcome{}, nil, err
	}
	defer s.EndGeneration()

	params := req.Params
	params.Count = generation.ClampCount(params.Count, config.MaxBatchSize)
	if params.Model == "" {
		params.Model = s.SelectedModel()
	}
	params.Prompt = presets.ApplyStyle(req.Params.Prompt, req.Style)

	log.WithFields(log.Fields{
		"profile":  profile.Name,
		"provider": profile.Provider,
		"model":    params.Model,
		"count":    params.Count,
	}).Info("generating images")

	outcome := d.Generate(ctx, client, profile, params)
	if !outcome.OK {
		return outcome, nil, nil
	}

	modelName := params.Model
	if desc, ok := s.Models().Get(params.Model); ok {
		modelName = desc.Name
	}
	entry := s.AddHistory(req.Params.Prompt, params.NegativePrompt, params.Model, outcome.Result.Payloads(), Metadata{
		Size:      params.Size,
		Provider:  profile.Provider,
		Style:     req.Style,
		Count:     params.Count,
		ModelName: modelName,
		Options:   params.Options,
	})
	return outcome, &entry, nil
}
