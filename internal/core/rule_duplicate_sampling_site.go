package core

import (
	"context"
	"fmt"

	"manuscriptdna/pkg/domain"
)

// NewDuplicateSamplingSiteRule returns the warning rule flagging two samples
// taken from the same sheet at identical coordinates. Resampling a site is
// legitimate, so the violation warns without blocking the commit.
func NewDuplicateSamplingSiteRule() domain.Rule {
	return duplicateSamplingSiteRule{}
}

type duplicateSamplingSiteRule struct{}

func (duplicateSamplingSiteRule) Name() string { return "duplicate_sampling_site" }

func (duplicateSamplingSiteRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntitySample || change.Action == domain.ActionDelete {
			continue
		}
		sample, ok := change.After.(domain.Sample)
		if !ok {
			continue
		}
		for _, other := range view.ListSamples() {
			if other.ID == sample.ID {
				continue
			}
			if other.SheetID == sample.SheetID && other.X == sample.X && other.Y == sample.Y {
				res.Violations = append(res.Violations, domain.Violation{
					Rule:     "duplicate_sampling_site",
					Severity: domain.SeverityWarn,
					Message:  fmt.Sprintf("sheet %s already sampled at (%d, %d) by sample %s", sample.SheetID, sample.X, sample.Y, other.ID),
					Entity:   domain.EntitySample,
					EntityID: sample.ID,
				})
				break
			}
		}
	}
	return res, nil
}
