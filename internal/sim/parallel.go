package sim

import (
	"context"
	"sync"

	"github.com/StendArts/Astronomic-Objects/internal/dynamo"
)

// Ensemble runs independent simulations of the same system concurrently,
// one per config. Options are built per run so metrics and observers are
// never shared between goroutines.
type Ensemble struct {
	sys     *dynamo.System
	options func() []Option
}

func NewEnsemble(sys *dynamo.System, options func() []Option) *Ensemble {
	if options == nil {
		options = func() []Option { return nil }
	}
	return &Ensemble{sys: sys, options: options}
}

// Run returns histories in cfgs order, or the first error.
func (e *Ensemble) Run(ctx context.Context, cfgs []dynamo.Config) ([]*dynamo.History, error) {
	results := make([]*dynamo.History, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s := New(e.sys, e.options()...)
			results[idx], errs[idx] = s.Run(ctx, cfgs[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
