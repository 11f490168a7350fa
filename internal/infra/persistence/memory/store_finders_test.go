package memory

import (
	"context"
	"testing"

	"cloud.google.com/go/civil"

	"manuscriptdna/pkg/domain"
)

func TestFindersCoverSuccessAndFailure(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	var sheetID, photoID, sessionID, sampleID, plateID, primerID, wellID, runID, resultID string

	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		sheet, err := tx.CreateSheet(domain.Sheet{Name: "AM 377"})
		if err != nil {
			return err
		}
		sheetID = sheet.ID
		photo, err := tx.CreatePhoto(domain.Photo{SheetID: sheetID, FileKey: "manuscript-dna/photos/p/verso.jpg"})
		if err != nil {
			return err
		}
		photoID = photo.ID
		session, err := tx.CreateSession(domain.Session{Date: civil.Date{Year: 2023, Month: 11, Day: 5}})
		if err != nil {
			return err
		}
		sessionID = session.ID
		sample, err := tx.CreateSample(domain.Sample{SheetID: sheetID, SessionID: sessionID})
		if err != nil {
			return err
		}
		sampleID = sample.ID
		plate, err := tx.CreatePlate(domain.Plate{Name: "P7"})
		if err != nil {
			return err
		}
		plateID = plate.ID
		primer, err := tx.CreatePrimer(domain.Primer{Name: "04"})
		if err != nil {
			return err
		}
		primerID = primer.ID
		well, err := tx.CreateWell(domain.Well{PlateID: plateID, Name: "E09", SampleID: sampleID, PrimerID: primerID})
		if err != nil {
			return err
		}
		wellID = well.ID
		run, err := tx.CreateSequencing(domain.Sequencing{WellID: wellID})
		if err != nil {
			return err
		}
		runID = run.ID
		result, err := tx.CreateSequencingResult(domain.SequencingResult{WellID: wellID})
		if err != nil {
			return err
		}
		resultID = result.ID
		return nil
	}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	if err := store.View(ctx, func(view domain.TransactionView) error {
		for _, probe := range []struct {
			name  string
			found func(id string) bool
			id    string
		}{
			{"sheet", func(id string) bool { _, ok := view.FindSheet(id); return ok }, sheetID},
			{"photo", func(id string) bool { _, ok := view.FindPhoto(id); return ok }, photoID},
			{"session", func(id string) bool { _, ok := view.FindSession(id); return ok }, sessionID},
			{"sample", func(id string) bool { _, ok := view.FindSample(id); return ok }, sampleID},
			{"plate", func(id string) bool { _, ok := view.FindPlate(id); return ok }, plateID},
			{"primer", func(id string) bool { _, ok := view.FindPrimer(id); return ok }, primerID},
			{"well", func(id string) bool { _, ok := view.FindWell(id); return ok }, wellID},
			{"sequencing", func(id string) bool { _, ok := view.FindSequencing(id); return ok }, runID},
			{"result", func(id string) bool { _, ok := view.FindSequencingResult(id); return ok }, resultID},
		} {
			if !probe.found(probe.id) {
				t.Fatalf("expected stored %s lookup to succeed", probe.name)
			}
			if probe.found("missing") {
				t.Fatalf("expected missing %s lookup to fail", probe.name)
			}
		}

		if _, ok := view.FindSessionByDate(civil.Date{Year: 2023, Month: 11, Day: 5}); !ok {
			t.Fatalf("expected session date lookup to succeed")
		}
		if _, ok := view.FindSessionByDate(civil.Date{Year: 1999, Month: 1, Day: 1}); ok {
			t.Fatalf("expected missing session date lookup to fail")
		}
		if _, ok := view.FindWellByPosition(plateID, "E09"); !ok {
			t.Fatalf("expected well position lookup to succeed")
		}
		if _, ok := view.FindWellByPosition("missing-plate", "E09"); ok {
			t.Fatalf("expected well lookup on unknown plate to fail")
		}
		return nil
	}); err != nil {
		t.Fatalf("view validation: %v", err)
	}
}

func TestViewMutationsDoNotLeak(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	var sheetID string
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		sheet, err := tx.CreateSheet(domain.Sheet{Name: "Original", Comments: strRef("untouched")})
		if err != nil {
			return err
		}
		sheetID = sheet.ID
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := store.View(ctx, func(view domain.TransactionView) error {
		sheet, _ := view.FindSheet(sheetID)
		sheet.Name = "Mutated"
		*sheet.Comments = "scribbled"
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}

	stored, _ := store.GetSheet(sheetID)
	if stored.Name != "Original" {
		t.Fatalf("view mutation leaked into state: %q", stored.Name)
	}
	if stored.Comments == nil || *stored.Comments != "untouched" {
		t.Fatalf("pointer field mutation leaked into state")
	}
}
