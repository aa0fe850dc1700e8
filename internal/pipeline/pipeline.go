// Package pipeline wires the full translation flow: indentation
// normalization, parsing, analysis, instrumented translation, blueprint
// generation, combination and validation.
package pipeline

import (
	"pyviz/internal/analyzer"
	"pyviz/internal/blueprint"
	"pyviz/internal/combiner"
	"pyviz/internal/config"
	"pyviz/internal/models"
	"pyviz/internal/pysrc"
	"pyviz/internal/translator"
)

type Pipeline struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Pipeline{cfg: cfg}
}

// Run translates one source unit end to end. A parse failure yields a
// result whose summary carries the error; it is not a Go error because
// downstream consumers render it like any other outcome.
func (p *Pipeline) Run(src string) *models.TranslationResult {
	if p.cfg.Pipeline.NormalizeIndentation {
		src = pysrc.NormalizeIndentation(src)
	}

	mod, err := pysrc.Parse(src)
	if err != nil {
		return &models.TranslationResult{
			Summary: models.NewErrorSummary(err.Error()),
		}
	}

	a := analyzer.NewAnalyzer()
	a.VisitModule(mod)
	summary := a.Summarize()

	algorithm := translator.Translate(mod, summary)

	result := &models.TranslationResult{
		Summary:   summary,
		Algorithm: algorithm,
	}

	if p.cfg.Pipeline.GenerateBlueprint {
		result.Blueprint = blueprint.Generate(summary)

		if p.cfg.Pipeline.Combine {
			result.Combined = combiner.Combine(result.Blueprint, algorithm)

			if p.cfg.Pipeline.Validate {
				result.Checks = combiner.Validate(result.Combined)
			}
		}
	}

	return result
}

// Analyze runs only the analysis stage.
func (p *Pipeline) Analyze(src string) *models.AnalysisSummary {
	if p.cfg.Pipeline.NormalizeIndentation {
		src = pysrc.NormalizeIndentation(src)
	}
	return analyzer.AnalyzeSource(src)
}
