// Package generation produces per-field application content from company and
// program context via the completion service, with batched category calls,
// an individual retry pass, and deterministic fallback templates.
package generation

import (
	"context"
	"log"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/daehyun/grant-agent/internal/llm"
	"github.com/daehyun/grant-agent/internal/types"
)

// Confidence tiers. Heuristic constants carried over from operational tuning;
// kept configurable rather than hard-coded invariants.
type Confidence struct {
	Batched   float64 // field filled from a batched category response
	TextSplit float64 // field recovered by the line-oriented parser
	Retry     float64 // field filled by an individual retry call
	Fallback  float64 // field filled from a deterministic template
}

// DefaultConfidence returns the standard tier values.
func DefaultConfidence() Confidence {
	return Confidence{Batched: 0.8, TextSplit: 0.7, Retry: 0.75, Fallback: 0.3}
}

// Thresholds map mean confidence to a coarse quality label.
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds returns the standard quality cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.7, Medium: 0.5}
}

// maxConcurrentCategories bounds parallel category calls. Categories are
// independent, so they may run concurrently; the cap keeps us under provider
// rate limits.
const maxConcurrentCategories = 3

// otherCategory buckets fields without a category label.
const otherCategory = "other"

// Generator orchestrates one content generation run per request.
type Generator struct {
	client     llm.Client
	confidence Confidence
	thresholds Thresholds
}

// NewGenerator creates a Generator over an LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{
		client:     client,
		confidence: DefaultConfidence(),
		thresholds: DefaultThresholds(),
	}
}

// Result is the outcome of one generation run.
type Result struct {
	TotalFields     int                  `json:"totalFields"`
	GeneratedFields int                  `json:"generatedFields"`
	FailedFields    int                  `json:"failedFields"`
	Contents        []types.FieldContent `json:"contents"`
	Summary         Summary              `json:"summary"`
}

// Summary aggregates quality metrics over a run's contents.
type Summary struct {
	TotalWords           int            `json:"totalWords"`
	AverageConfidence    float64        `json:"averageConfidence"`
	CategoryDistribution map[string]int `json:"categoryDistribution"`
	QualityScore         string         `json:"qualityScore"`
}

// categoryGroup keeps fields in request order within their category.
type categoryGroup struct {
	name   string
	fields []types.FieldSpec
}

// Generate returns exactly one FieldContent per requested field. Category
// and retry failures demote fields to cheaper paths; they never abort the
// run or drop a field.
func (g *Generator) Generate(ctx context.Context, req *types.GenerationRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log.Printf("[GENERATE] starting: company=%s program=%s fields=%d",
		req.CompanyInfo.CompanyName, req.ProgramInfo.Name, len(req.Fields))

	groups := groupByCategory(req.Fields)

	// Batched category calls, bounded parallelism. Each goroutine owns its
	// own slot; a failed category only demotes its fields to the retry pass.
	batched := make([]map[string]types.FieldContent, len(groups))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentCategories)
	for i, group := range groups {
		i, group := i, group
		eg.Go(func() error {
			contents, err := g.generateCategory(egCtx, group, req)
			if err != nil {
				log.Printf("[GENERATE] category %s failed: %v", group.name, err)
				return nil
			}
			batched[i] = contents
			return nil
		})
	}
	_ = eg.Wait()

	byField := make(map[string]types.FieldContent, len(req.Fields))
	for _, contents := range batched {
		for id, content := range contents {
			if content.Content != "" {
				byField[id] = content
			}
		}
	}

	// Individual retry pass for everything the batched stage left empty.
	var failed []types.FieldSpec
	for _, field := range req.Fields {
		if _, ok := byField[field.ID]; !ok {
			failed = append(failed, field)
		}
	}

	rateLimited := false
	if len(failed) > 0 {
		log.Printf("[GENERATE] retrying %d fields individually", len(failed))
	}
	for _, field := range failed {
		if rateLimited {
			byField[field.ID] = g.fallbackContent(field, &req.CompanyInfo)
			continue
		}
		content, err := g.generateSingleField(ctx, field, req)
		if err != nil {
			if llm.IsRateLimit(err) {
				// Stop hammering the provider; the rest of the queue goes
				// straight to fallback templates.
				log.Printf("[GENERATE] rate limited, falling back for remaining fields")
				rateLimited = true
			} else {
				log.Printf("[GENERATE] field %s retry failed: %v", field.ID, err)
			}
			byField[field.ID] = g.fallbackContent(field, &req.CompanyInfo)
			continue
		}
		byField[field.ID] = content
	}

	// One entry per requested field, in request order.
	contents := make([]types.FieldContent, 0, len(req.Fields))
	for _, field := range req.Fields {
		content, ok := byField[field.ID]
		if !ok {
			content = g.fallbackContent(field, &req.CompanyInfo)
		}
		contents = append(contents, content)
	}

	result := &Result{
		TotalFields:     len(req.Fields),
		GeneratedFields: len(contents),
		FailedFields:    len(failed),
		Contents:        contents,
		Summary:         g.summarize(contents, req.Fields),
	}

	log.Printf("[GENERATE] done: %d fields, quality=%s", len(contents), result.Summary.QualityScore)
	return result, nil
}

// generateCategory performs one batched completion call for a category group.
func (g *Generator) generateCategory(ctx context.Context, group categoryGroup, req *types.GenerationRequest) (map[string]types.FieldContent, error) {
	prompt := buildCategoryPrompt(group.name, group.fields, req)

	// The batched prompt asks for a JSON object keyed by field id, so
	// request the JSON response MIME type outright.
	resultText, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	return g.parseCategoryResponse(resultText, group.fields), nil
}

// generateSingleField performs one small completion call for a single field,
// on the cheaper tier with a lower token budget.
func (g *Generator) generateSingleField(ctx context.Context, field types.FieldSpec, req *types.GenerationRequest) (types.FieldContent, error) {
	prompt := buildSingleFieldPrompt(field, req)

	content, err := g.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return types.FieldContent{}, err
	}

	return newFieldContent(field.ID, content, g.confidence.Retry), nil
}

// groupByCategory partitions fields by category, preserving first-seen
// category order and request order within each group.
func groupByCategory(fields []types.FieldSpec) []categoryGroup {
	index := make(map[string]int)
	var groups []categoryGroup
	for _, field := range fields {
		category := field.Category
		if category == "" {
			category = otherCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, categoryGroup{name: category})
		}
		groups[i].fields = append(groups[i].fields, field)
	}
	return groups
}

// summarize computes run-level quality metrics.
func (g *Generator) summarize(contents []types.FieldContent, fields []types.FieldSpec) Summary {
	categoryByID := make(map[string]string, len(fields))
	for _, f := range fields {
		category := f.Category
		if category == "" {
			category = otherCategory
		}
		categoryByID[f.ID] = category
	}

	var totalWords int
	var confidenceSum float64
	distribution := make(map[string]int)
	for _, c := range contents {
		totalWords += c.WordCount
		confidenceSum += c.Confidence
		distribution[categoryByID[c.FieldID]]++
	}

	avg := 0.0
	if len(contents) > 0 {
		avg = math.Round(confidenceSum/float64(len(contents))*100) / 100
	}

	quality := "low"
	switch {
	case avg > g.thresholds.High:
		quality = "high"
	case avg > g.thresholds.Medium:
		quality = "medium"
	}

	return Summary{
		TotalWords:           totalWords,
		AverageConfidence:    avg,
		CategoryDistribution: distribution,
		QualityScore:         quality,
	}
}
