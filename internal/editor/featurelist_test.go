package editor

import (
	"errors"
	"testing"

	"aman-backend/internal/models"
)

func entry(icon, nameEn string, order int) models.FeatureEntry {
	return models.FeatureEntry{
		Icon:  icon,
		Name:  models.BilingualText{En: nameEn, Ar: nameEn + "-ar"},
		Order: order,
	}
}

func names(entries []models.FeatureEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name.En
	}
	return out
}

func TestList_MoveKeepsPermutation(t *testing.T) {
	list := NewList([]models.FeatureEntry{
		entry("shield", "A", 0),
		entry("lock", "B", 1),
		entry("eye", "C", 2),
		entry("key", "D", 3),
	}, Config{})

	moves := []struct {
		index int
		dir   Direction
	}{
		{0, MoveDown}, {3, MoveUp}, {1, MoveUp}, {2, MoveDown}, {0, MoveUp}, {3, MoveDown},
	}
	for _, m := range moves {
		if err := list.Move(m.index, m.dir); err != nil {
			t.Fatalf("Move(%d, %s) returned error: %v", m.index, m.dir, err)
		}
	}

	got := list.Entries()
	if len(got) != 4 {
		t.Fatalf("expected 4 entries after moves, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, e := range got {
		seen[e.Name.En] = true
	}
	for _, want := range []string{"A", "B", "C", "D"} {
		if !seen[want] {
			t.Fatalf("entry %s lost after moves, have %v", want, names(got))
		}
	}
}

func TestList_MoveAtBoundaryIsNoop(t *testing.T) {
	list := NewList([]models.FeatureEntry{entry("a", "A", 0), entry("b", "B", 1)}, Config{})

	if err := list.Move(0, MoveUp); err != nil {
		t.Fatalf("boundary move returned error: %v", err)
	}
	if err := list.Move(1, MoveDown); err != nil {
		t.Fatalf("boundary move returned error: %v", err)
	}

	got := names(list.Entries())
	if got[0] != "A" || got[1] != "B" {
		t.Fatalf("boundary moves changed order: %v", got)
	}
}

func TestList_MoveIsLocalTransposition(t *testing.T) {
	list := NewList([]models.FeatureEntry{
		entry("a", "A", 0), entry("b", "B", 1), entry("c", "C", 2),
	}, Config{})

	if err := list.Move(0, MoveDown); err != nil {
		t.Fatalf("Move down: %v", err)
	}
	// A ended up at rank 1; move it back up.
	if err := list.Move(1, MoveUp); err != nil {
		t.Fatalf("Move up: %v", err)
	}

	got := names(list.Entries())
	want := []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transposition not restored, got %v", got)
		}
	}
}

func TestList_MoveSwapsSparseOrderValues(t *testing.T) {
	// Orders 0, 2, 5: moving B (rank 1) up must exchange A's and B's order
	// values and leave C untouched.
	list := NewList([]models.FeatureEntry{
		entry("a", "A", 0), entry("b", "B", 2), entry("c", "C", 5),
	}, Config{})

	if err := list.Move(1, MoveUp); err != nil {
		t.Fatalf("Move: %v", err)
	}

	got := list.Entries()
	if names(got)[0] != "B" || names(got)[1] != "A" || names(got)[2] != "C" {
		t.Fatalf("expected sequence B,A,C, got %v", names(got))
	}
	if got[0].Order != 0 {
		t.Fatalf("B should take A's old order 0, got %d", got[0].Order)
	}
	if got[1].Order != 2 {
		t.Fatalf("A should take B's old order 2, got %d", got[1].Order)
	}
	if got[2].Order != 5 {
		t.Fatalf("C's order must stay 5, got %d", got[2].Order)
	}
}

func TestList_EmptyDraftCommitIsNoop(t *testing.T) {
	list := NewList([]models.FeatureEntry{entry("a", "A", 0)}, Config{})

	if err := list.StartDraft(); err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if err := list.CommitDraft(); err != nil {
		t.Fatalf("CommitDraft: %v", err)
	}

	if list.Len() != 1 {
		t.Fatalf("empty draft commit must not append, have %d entries", list.Len())
	}
	if list.Draft() != nil {
		t.Fatal("draft slot should be cleared after commit")
	}
}

func TestList_CommitPreservesPartialDraft(t *testing.T) {
	list := NewList(nil, Config{})

	if err := list.StartDraft(); err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if err := list.UpdateDraftField(FieldNameEn, "X"); err != nil {
		t.Fatalf("UpdateDraftField: %v", err)
	}
	if err := list.CommitDraft(); err != nil {
		t.Fatalf("CommitDraft: %v", err)
	}

	got := list.Entries()
	if len(got) != 1 {
		t.Fatalf("expected one committed entry, got %d", len(got))
	}
	if got[0].Name.En != "X" {
		t.Fatalf("expected name.en preserved, got %q", got[0].Name.En)
	}
	if got[0].Icon != "" || got[0].Name.Ar != "" || !got[0].Description.Empty() {
		t.Fatalf("other fields must stay at defaults: %+v", got[0])
	}
}

func TestList_StartDraftUsesNextOrder(t *testing.T) {
	list := NewList([]models.FeatureEntry{entry("a", "A", 3), entry("b", "B", 7)}, Config{})

	if err := list.StartDraft(); err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if draft := list.Draft(); draft.Order != 8 {
		t.Fatalf("draft order should be max+1 (8), got %d", draft.Order)
	}

	empty := NewList(nil, Config{})
	if err := empty.StartDraft(); err != nil {
		t.Fatalf("StartDraft on empty list: %v", err)
	}
	if draft := empty.Draft(); draft.Order != 0 {
		t.Fatalf("draft order on empty list should be 0, got %d", draft.Order)
	}
}

func TestList_StartDraftRespectsMaxEntries(t *testing.T) {
	list := NewList([]models.FeatureEntry{
		entry("a", "A", 0), entry("b", "B", 1), entry("c", "C", 2), entry("d", "D", 3),
	}, Config{MaxEntries: 4})

	err := list.StartDraft()
	if !errors.Is(err, ErrListFull) {
		t.Fatalf("expected ErrListFull, got %v", err)
	}
	if list.Draft() != nil {
		t.Fatal("failed StartDraft must not leave a draft behind")
	}
	if list.Len() != 4 {
		t.Fatalf("state must be unchanged, have %d entries", list.Len())
	}
}

func TestList_DraftAndActiveAreExclusive(t *testing.T) {
	list := NewList([]models.FeatureEntry{entry("a", "A", 0), entry("b", "B", 1)}, Config{})

	if err := list.SelectActive(1); err != nil {
		t.Fatalf("SelectActive: %v", err)
	}
	if err := list.StartDraft(); err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if list.Active() != -1 {
		t.Fatalf("starting a draft must clear the active selection, got %d", list.Active())
	}

	if err := list.SelectActive(0); err != nil {
		t.Fatalf("SelectActive: %v", err)
	}
	if list.Draft() != nil {
		t.Fatal("selecting an entry must discard the draft")
	}

	// Selecting the active entry again toggles it closed.
	if err := list.SelectActive(0); err != nil {
		t.Fatalf("SelectActive toggle: %v", err)
	}
	if list.Active() != -1 {
		t.Fatalf("expected toggle to clear selection, got %d", list.Active())
	}
}

func TestList_RemoveAdjustsActiveSelection(t *testing.T) {
	list := NewList([]models.FeatureEntry{
		entry("a", "A", 0), entry("b", "B", 1), entry("c", "C", 2),
	}, Config{})

	if err := list.SelectActive(2); err != nil {
		t.Fatalf("SelectActive: %v", err)
	}
	if err := list.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if list.Active() != 1 {
		t.Fatalf("active should slide down to keep pointing at C, got %d", list.Active())
	}

	if err := list.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if list.Active() != -1 {
		t.Fatalf("removing the active entry must clear selection, got %d", list.Active())
	}
}

func TestList_RemoveLeavesOrderGaps(t *testing.T) {
	list := NewList([]models.FeatureEntry{
		entry("a", "A", 0), entry("b", "B", 1), entry("c", "C", 2),
	}, Config{})

	if err := list.Remove(1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got := list.Entries()
	if got[0].Order != 0 || got[1].Order != 2 {
		t.Fatalf("no renumbering expected on remove, got orders %d,%d", got[0].Order, got[1].Order)
	}
}

func TestList_SerializeForSave(t *testing.T) {
	list := NewList([]models.FeatureEntry{
		{Icon: " shield ", Name: models.BilingualText{En: " Firewall ", Ar: " جدار ناري "}, Order: 1},
		{Icon: "lock", Name: models.BilingualText{En: "English only"}, Order: 4},
		{Icon: "", Name: models.BilingualText{En: "No icon", Ar: "بلا أيقونة"}, Order: 9},
	}, Config{RequireBilingual: true})

	// A pending draft must never be serialized.
	if err := list.StartDraft(); err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if err := list.UpdateDraftField(FieldIcon, "ghost"); err != nil {
		t.Fatalf("UpdateDraftField: %v", err)
	}

	got := list.SerializeForSave()
	if len(got) != 1 {
		t.Fatalf("expected only the complete bilingual entry, got %d: %v", len(got), got)
	}
	if got[0].Icon != "shield" || got[0].Name.En != "Firewall" || got[0].Name.Ar != "جدار ناري" {
		t.Fatalf("expected trimmed fields, got %+v", got[0])
	}
	if got[0].Order != 0 {
		t.Fatalf("orders must be renumbered densely from 0, got %d", got[0].Order)
	}
}

func TestList_SerializeWithoutBilingualRequirementKeepsPartials(t *testing.T) {
	list := NewList([]models.FeatureEntry{
		{Icon: "5", Name: models.BilingualText{En: "Great work"}, Order: 2},
		{Icon: "90", Order: 7},
	}, Config{})

	got := list.SerializeForSave()
	if len(got) != 2 {
		t.Fatalf("partial entries must survive when bilingual is not required, got %d", len(got))
	}
	if got[0].Order != 0 || got[1].Order != 1 {
		t.Fatalf("expected dense renumbering, got %d,%d", got[0].Order, got[1].Order)
	}
}
