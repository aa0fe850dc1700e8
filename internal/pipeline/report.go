package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"pyviz/internal/config"
	"pyviz/internal/models"

	"github.com/fatih/color"
)

// ReportGenerator formats translation results for display.
type ReportGenerator struct {
	format string
	config *config.Config
}

func NewReportGenerator(format string) *ReportGenerator {
	return &ReportGenerator{
		format: format,
		config: config.DefaultConfig(),
	}
}

func NewReportGeneratorWithConfig(cfg *config.Config) *ReportGenerator {
	return &ReportGenerator{
		format: cfg.Output.Format,
		config: cfg,
	}
}

// Generate renders one result in the configured format.
func (r *ReportGenerator) Generate(result *models.TranslationResult) string {
	switch r.format {
	case "json":
		return r.generateJSON(result)
	case "js":
		return r.generateJS(result)
	default:
		return r.generateConsole(result)
	}
}

func (r *ReportGenerator) generateJSON(result *models.TranslationResult) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error generating JSON report: %v", err)
	}
	return string(data)
}

// generateJS emits only the generated script, combined when available.
func (r *ReportGenerator) generateJS(result *models.TranslationResult) string {
	if result.Combined != "" {
		return result.Combined
	}
	return result.Algorithm
}

func (r *ReportGenerator) generateConsole(result *models.TranslationResult) string {
	var report strings.Builder

	useColors := true
	verbose := false
	if r.config != nil {
		useColors = r.config.Output.Colors
		verbose = r.config.Output.Verbose
	}

	if useColors {
		report.WriteString(color.CyanString("PyViz Translation Report\n"))
		report.WriteString(color.WhiteString("═══════════════════════════════════════\n\n"))
	} else {
		report.WriteString("PyViz Translation Report\n")
		report.WriteString("=======================================\n\n")
	}

	s := result.Summary

	if s.Error != "" {
		if useColors {
			report.WriteString(color.RedString("Error: %s\n", s.Error))
		} else {
			report.WriteString(fmt.Sprintf("Error: %s\n", s.Error))
		}
		return report.String()
	}

	r.writeSummary(&report, s, useColors)

	if verbose {
		r.writeDetails(&report, s, useColors)
	}

	if result.Checks != nil {
		r.writeChecks(&report, result.Checks, useColors)
	}

	if result.Combined != "" {
		report.WriteString("\n")
		report.WriteString(result.Combined)
		report.WriteString("\n")
	} else if result.Algorithm != "" {
		report.WriteString("\n")
		report.WriteString(result.Algorithm)
		report.WriteString("\n")
	}

	return report.String()
}

func (r *ReportGenerator) writeSummary(report *strings.Builder, s *models.AnalysisSummary, useColors bool) {
	if useColors {
		report.WriteString(color.WhiteString("Detected structures:\n"))
	} else {
		report.WriteString("Detected structures:\n")
	}

	writeVars := func(label string, vars []string) {
		if len(vars) == 0 {
			return
		}
		if useColors {
			report.WriteString(fmt.Sprintf("   %s: %s\n", label, color.CyanString(strings.Join(vars, ", "))))
		} else {
			report.WriteString(fmt.Sprintf("   %s: %s\n", label, strings.Join(vars, ", ")))
		}
	}

	writeVars("1D arrays", s.Vars1D)
	writeVars("2D arrays", s.Vars2D)
	writeVars("Stacks", s.StackVars)
	writeVars("Queues", s.QueueVars)
	writeVars("Heaps", s.HeapVars)
	writeVars("Graphs", s.GraphVars)
	writeVars("Trees", s.TreeVars)
	writeVars("Sets", s.SetVars)
	writeVars("Dicts", s.DictVars)

	if useColors {
		report.WriteString(fmt.Sprintf("   Visualization: %s\n", color.GreenString(string(s.VizType))))
	} else {
		report.WriteString(fmt.Sprintf("   Visualization: %s\n", s.VizType))
	}
	if len(s.KeyVars) > 0 {
		writeVars("Key variables", s.KeyVars)
	}
	report.WriteString("\n")
}

func (r *ReportGenerator) writeDetails(report *strings.Builder, s *models.AnalysisSummary, useColors bool) {
	var flags []string
	if s.Sorting {
		flags = append(flags, "sorting")
	}
	if s.Searching {
		flags = append(flags, "searching")
	}
	if s.GraphTraversal {
		flags = append(flags, "graph traversal")
	}
	if s.DynamicProg {
		flags = append(flags, "dynamic programming")
	}
	if s.Backtracking {
		flags = append(flags, "backtracking")
	}
	if s.Heap {
		flags = append(flags, "heap")
	}

	if len(flags) > 0 {
		if useColors {
			report.WriteString(fmt.Sprintf("Patterns: %s\n", color.YellowString(strings.Join(flags, ", "))))
		} else {
			report.WriteString(fmt.Sprintf("Patterns: %s\n", strings.Join(flags, ", ")))
		}
	}
	report.WriteString(fmt.Sprintf("Comparison points: %d\n", len(s.ComparisonPoints)))
	report.WriteString(fmt.Sprintf("Update points: %d\n", len(s.UpdatePoints)))
	report.WriteString("\n")
}

func (r *ReportGenerator) writeChecks(report *strings.Builder, checks *models.ValidationReport, useColors bool) {
	status := "FAILED"
	if checks.OK() {
		status = "passed"
	}
	if useColors {
		if checks.OK() {
			report.WriteString(color.GreenString("Output checks: %s\n", status))
		} else {
			report.WriteString(color.RedString("Output checks: %s\n", status))
		}
	} else {
		report.WriteString(fmt.Sprintf("Output checks: %s\n", status))
	}

	if !checks.OK() {
		writeCheck := func(label string, ok bool) {
			mark := "ok"
			if !ok {
				mark = "MISSING"
			}
			report.WriteString(fmt.Sprintf("   %s: %s\n", label, mark))
		}
		writeCheck("imports", checks.HasImports)
		writeCheck("layout", checks.HasLayout)
		writeCheck("logger", checks.HasLogger)
		writeCheck("tracer delay", checks.HasTracerDelay)
		writeCheck("functions", checks.HasFunctions)
		writeCheck("balanced syntax", checks.BalancedSyntax)
	}
}
