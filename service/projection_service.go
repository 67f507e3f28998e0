package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"mortgage-agent/domain"
	"mortgage-agent/repository"
)

// Engine runs one scenario to completion.
type Engine func(ScenarioParams) (domain.ScenarioResult, error)

// ProjectionSettings are the process-wide values applied to every run.
type ProjectionSettings struct {
	ProcessingFee   float64
	DividendTaxRate float64 // fraction
	CacheTTL        time.Duration
}

// DefaultProjectionSettings returns the standard fee and tax rate.
func DefaultProjectionSettings() ProjectionSettings {
	return ProjectionSettings{
		ProcessingFee:   DefaultProcessingFee,
		DividendTaxRate: DefaultDividendTaxRate,
		CacheTTL:        time.Hour,
	}
}

type ProjectionService struct {
	repo     repository.ProjectionRepository
	cache    repository.CacheRepository
	ai       *AIService
	settings ProjectionSettings
	engines  map[domain.ScenarioKind]Engine
	tracer   trace.Tracer
	now      func() time.Time
}

// NewProjectionService creates a ProjectionService. cache and ai may be nil.
func NewProjectionService(
	repo repository.ProjectionRepository,
	cache repository.CacheRepository,
	ai *AIService,
	settings ProjectionSettings,
) *ProjectionService {
	if ai == nil {
		ai = NewAIService("")
	}
	return &ProjectionService{
		repo:     repo,
		cache:    cache,
		ai:       ai,
		settings: settings,
		engines: map[domain.ScenarioKind]Engine{
			domain.ScenarioExtraPayment:    RunExtraPayment,
			domain.ScenarioParallelETF:     RunParallelETF,
			domain.ScenarioDividendPaydown: RunDividendPaydown,
		},
		tracer: otel.Tracer("mortgage-agent/service"),
		now:    time.Now,
	}
}

// Run validates the input, runs the selected scenarios and archives the result.
// A validation error aborts the whole run; an engine failure only marks its
// own scenario as failed.
func (s *ProjectionService) Run(
	ctx context.Context,
	input domain.ProjectionInput,
) (domain.ProjectionResult, error) {

	ctx, span := s.tracer.Start(ctx, "projection.run")
	defer span.End()

	kinds, err := validateProjection(input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.ProjectionResult{}, err
	}
	input.Scenarios = kinds

	loan, warnings := s.deriveLoan(input)

	key := s.cacheKey(input)
	result, hit := s.fromCache(ctx, key)
	if !hit {
		result = domain.ProjectionResult{
			Input:      input,
			LoanAmount: loan,
			Warnings:   warnings,
			Scenarios:  s.runScenarios(ctx, input, loan),
		}
		result.Comparison = compareScenarios(result.Scenarios)
		result.Explanation = s.ai.ExplainProjection(ctx, result)
		s.toCache(ctx, key, result)
	}
	span.SetAttributes(attribute.Bool("projection.cache_hit", hit))

	result.RunID = uuid.NewString()
	result.CreatedAt = s.now().UTC()

	// Archive failures are not fatal for the caller.
	if err := s.repo.Save(ctx, result); err != nil {
		log.Printf("Warning: failed to archive projection %s: %v", result.RunID, err)
	}

	return result, nil
}

// Get returns an archived projection.
func (s *ProjectionService) Get(ctx context.Context, runID string) (domain.ProjectionResult, error) {
	result, err := s.repo.Get(ctx, runID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ProjectionResult{}, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return domain.ProjectionResult{}, err
	}
	return result, nil
}

func (s *ProjectionService) deriveLoan(input domain.ProjectionInput) (float64, []string) {
	loan := input.PropertyValue - input.OwnContribution - s.settings.ProcessingFee
	if loan >= 0 {
		return loan, nil
	}
	msg := fmt.Sprintf("derived loan amount %.2f is negative, using 0", loan)
	log.Printf("Warning: %s", msg)
	return 0, []string{msg}
}

func (s *ProjectionService) params(input domain.ProjectionInput, loan float64, kind domain.ScenarioKind) ScenarioParams {
	p := ScenarioParams{
		PropertyValue:          input.PropertyValue,
		PropertyGrowthRate:     input.PropertyGrowthRate,
		LoanAmount:             loan,
		AdditionalContribution: input.AdditionalContribution,
		TermYears:              input.TermYears,
		InterestRate:           input.InterestRate,
		ETFInitialValue:        input.ETFInitialValue,
		DividendYield:          input.DividendYield,
		DividendTaxRate:        s.settings.DividendTaxRate,
	}
	switch kind {
	case domain.ScenarioParallelETF:
		p.ETFGrowthRate = input.ETFGrowthRateParallel
	case domain.ScenarioDividendPaydown:
		p.ETFGrowthRate = input.ETFGrowthRatePaydown
	}
	return p
}

// runScenarios runs every selected engine in its own goroutine. Outcomes keep
// the order of input.Scenarios.
func (s *ProjectionService) runScenarios(
	ctx context.Context,
	input domain.ProjectionInput,
	loan float64,
) []domain.ScenarioOutcome {

	outcomes := make([]domain.ScenarioOutcome, len(input.Scenarios))
	var g errgroup.Group
	for i, kind := range input.Scenarios {
		g.Go(func() error {
			outcomes[i] = s.runScenario(ctx, kind, s.params(input, loan, kind))
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (s *ProjectionService) runScenario(
	ctx context.Context,
	kind domain.ScenarioKind,
	params ScenarioParams,
) domain.ScenarioOutcome {

	_, span := s.tracer.Start(ctx, "projection.scenario", trace.WithAttributes(
		attribute.String("scenario", kind.String()),
		attribute.Int("term_years", params.TermYears),
	))
	defer span.End()

	outcome := domain.ScenarioOutcome{Scenario: kind, Name: kind.String()}
	res, err := s.engines[kind](params)
	if err != nil {
		log.Printf("Warning: scenario %s failed: %v", kind, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Result = &res
	return outcome
}

func (s *ProjectionService) cacheKey(input domain.ProjectionInput) string {
	payload, _ := json.Marshal(struct {
		Input           domain.ProjectionInput
		ProcessingFee   float64
		DividendTaxRate float64
	}{input, s.settings.ProcessingFee, s.settings.DividendTaxRate})
	return fmt.Sprintf("projection:%016x", xxhash.Sum64(payload))
}

func (s *ProjectionService) fromCache(ctx context.Context, key string) (domain.ProjectionResult, bool) {
	if s.cache == nil {
		return domain.ProjectionResult{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.ProjectionResult{}, false
	}
	var result domain.ProjectionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("Warning: discarding cache entry %s: %v", key, err)
		return domain.ProjectionResult{}, false
	}
	return result, true
}

func (s *ProjectionService) toCache(ctx context.Context, key string, result domain.ProjectionResult) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("Warning: failed to encode projection for cache: %v", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.settings.CacheTTL); err != nil {
		log.Printf("Warning: failed to cache projection: %v", err)
	}
}

// compareScenarios ranks successful scenarios by final net equity, highest first.
func compareScenarios(outcomes []domain.ScenarioOutcome) *domain.Comparison {
	ranking := []domain.RankedScenario{}
	for _, o := range outcomes {
		if o.Failed() {
			continue
		}
		final, ok := o.Result.Final()
		if !ok {
			continue
		}
		ranking = append(ranking, domain.RankedScenario{
			Scenario:       o.Scenario,
			Name:           o.Name,
			FinalNetEquity: roundTo2Decimals(final.NetEquity),
			TotalInterest:  roundTo2Decimals(o.Result.TotalInterest),
		})
	}
	if len(ranking) == 0 {
		return nil
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].FinalNetEquity > ranking[j].FinalNetEquity
	})
	return &domain.Comparison{Best: ranking[0].Scenario, Ranking: ranking}
}

// validateProjection checks the input and returns the selected scenarios in
// presentation order.
func validateProjection(input domain.ProjectionInput) ([]domain.ScenarioKind, error) {
	numbers := []struct {
		field string
		value float64
	}{
		{"PropertyValue", input.PropertyValue},
		{"PropertyGrowthRate", input.PropertyGrowthRate},
		{"OwnContribution", input.OwnContribution},
		{"AdditionalContribution", input.AdditionalContribution},
		{"InterestRate", input.InterestRate},
		{"ETFInitialValue", input.ETFInitialValue},
		{"ETFGrowthRateParallel", input.ETFGrowthRateParallel},
		{"ETFGrowthRatePaydown", input.ETFGrowthRatePaydown},
		{"DividendYield", input.DividendYield},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			return nil, invalid(n.field, "must be a finite number")
		}
	}

	if input.PropertyValue <= 0 {
		return nil, invalid("PropertyValue", "must be positive")
	}
	if input.PropertyValue > MaxPropertyValue {
		return nil, invalid("PropertyValue", "exceeds the maximum of %.2f", MaxPropertyValue)
	}
	if input.OwnContribution < 0 {
		return nil, invalid("OwnContribution", "must not be negative")
	}
	if input.AdditionalContribution < 0 {
		return nil, invalid("AdditionalContribution", "must not be negative")
	}
	if err := validateTerm(input.TermYears); err != nil {
		return nil, err
	}
	if err := validateRate(input.InterestRate); err != nil {
		return nil, err
	}
	if input.ETFInitialValue < 0 {
		return nil, invalid("ETFInitialValue", "must not be negative")
	}
	if input.ETFGrowthRateParallel < MinGrowthRate {
		return nil, invalid("ETFGrowthRateParallel", "must be at least %.0f%%", MinGrowthRate)
	}
	if input.ETFGrowthRatePaydown < MinGrowthRate {
		return nil, invalid("ETFGrowthRatePaydown", "must be at least %.0f%%", MinGrowthRate)
	}
	if input.DividendYield < 0 {
		return nil, invalid("DividendYield", "must not be negative")
	}

	if len(input.Scenarios) == 0 {
		return append([]domain.ScenarioKind(nil), domain.AllScenarios...), nil
	}
	selected := make(map[domain.ScenarioKind]bool)
	for _, k := range input.Scenarios {
		if !k.Valid() {
			return nil, invalid("Scenarios", "unknown scenario %d", int(k))
		}
		selected[k] = true
	}
	kinds := make([]domain.ScenarioKind, 0, len(selected))
	for _, k := range domain.AllScenarios {
		if selected[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}
