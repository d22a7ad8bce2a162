package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mkt-tools/pulse-report/pkg/models/domain"
)

// MissingInputValue is bound where a planned section requires an input
// the run could not provide. Generators see it instead of a nil, so the
// prompt states the absence explicitly.
type MissingInputValue struct{}

func (MissingInputValue) String() string { return "<missing input>" }

func (MissingInputValue) MarshalJSON() ([]byte, error) {
	return []byte(`"<missing input>"`), nil
}

// MissingInput is the shared sentinel for absent bindings.
var MissingInput = MissingInputValue{}

// Assemble runs every planned section concurrently and collects the
// results under the section names. A section that fails, for any reason,
// lands in the report as a SectionError; one bad slide never takes down
// the run.
func Assemble(ctx context.Context, plan domain.SlidePlan, generators Registry, bindings map[domain.InputKey]any) domain.Report {
	report := make(domain.Report, len(plan))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, spec := range plan {
		wg.Add(1)
		go func(spec domain.SlideSpec) {
			defer wg.Done()
			result := runSection(ctx, spec, generators, bindings)
			mu.Lock()
			report[spec.Section] = result
			mu.Unlock()
		}(spec)
	}
	wg.Wait()

	return report
}

func runSection(ctx context.Context, spec domain.SlideSpec, generators Registry, bindings map[domain.InputKey]any) (result any) {
	defer func() {
		if r := recover(); r != nil {
			zerolog.Ctx(ctx).Error().
				Str("section", string(spec.Section)).
				Interface("panic", r).
				Msg("section generator panicked")
			result = domain.SectionError{Error: fmt.Sprintf("panic: %v", r)}
		}
	}()

	gen, ok := generators[spec.Section]
	if !ok {
		return domain.SectionError{Error: fmt.Sprintf("no generator registered for section %q", spec.Section)}
	}

	inputs := make(map[domain.InputKey]any, len(spec.Requires))
	for _, key := range spec.Requires {
		value, ok := bindings[key]
		if !ok || value == nil {
			zerolog.Ctx(ctx).Warn().
				Str("section", string(spec.Section)).
				Str("input", string(key)).
				Msg("required input missing, binding sentinel")
			value = MissingInput
		}
		inputs[key] = value
	}

	payload, err := gen(ctx, inputs)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("section", string(spec.Section)).
			Msg("section generation failed")
		return domain.SectionError{Error: err.Error()}
	}
	return payload
}
