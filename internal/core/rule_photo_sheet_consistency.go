package core

import (
	"context"
	"fmt"

	"manuscriptdna/pkg/domain"
)

// NewPhotoSheetConsistencyRule returns the blocking rule requiring that a
// sample citing a photograph sits on the photographed sheet.
func NewPhotoSheetConsistencyRule() domain.Rule {
	return photoSheetConsistencyRule{}
}

type photoSheetConsistencyRule struct{}

func (photoSheetConsistencyRule) Name() string { return "photo_sheet_consistency" }

func (photoSheetConsistencyRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntitySample || change.Action == domain.ActionDelete {
			continue
		}
		sample, ok := change.After.(domain.Sample)
		if !ok || sample.PhotoID == nil {
			continue
		}
		photo, ok := view.FindPhoto(*sample.PhotoID)
		if !ok {
			continue
		}
		if photo.SheetID != sample.SheetID {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "photo_sheet_consistency",
				Severity: domain.SeverityBlock,
				Message:  fmt.Sprintf("sample cites photo %s of sheet %s but was collected from sheet %s", photo.ID, photo.SheetID, sample.SheetID),
				Entity:   domain.EntitySample,
				EntityID: sample.ID,
			})
		}
	}
	return res, nil
}
