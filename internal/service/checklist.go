package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vcscsvcscs/wellness-companion/internal/audit"
	"github.com/vcscsvcscs/wellness-companion/pkg/model"
	"go.uber.org/zap"
)

// AddChecklistItem appends a new item dated today. Only Label, Category and
// Completed are taken from draft.
func (s *WellnessService) AddChecklistItem(ctx context.Context, draft model.ChecklistItem) (model.ChecklistItem, error) {
	if strings.TrimSpace(draft.Label) == "" {
		return model.ChecklistItem{}, fmt.Errorf("%w: checklist label is required", ErrInvalidInput)
	}
	if !draft.Category.Valid() {
		return model.ChecklistItem{}, fmt.Errorf("%w: unknown checklist category %q", ErrInvalidInput, draft.Category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := model.ChecklistItem{
		ID:        s.newID(),
		Label:     draft.Label,
		Completed: draft.Completed,
		Category:  draft.Category,
		Date:      s.today(),
	}

	s.checklist = append(s.checklist, item)
	s.save(ctx, KeyChecklist, s.checklist)
	s.record(ctx, audit.OperationCreate, audit.ResourceChecklistItem, item.ID)

	s.logger.Info("checklist item added",
		zap.String("item_id", item.ID),
		zap.String("category", string(item.Category)),
	)

	return item, nil
}

// ToggleChecklistItem flips the completed flag. Unknown ids are ignored.
func (s *WellnessService) ToggleChecklistItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.checklist {
		if s.checklist[i].ID == id {
			s.checklist[i].Completed = !s.checklist[i].Completed
			s.save(ctx, KeyChecklist, s.checklist)
			s.record(ctx, audit.OperationUpdate, audit.ResourceChecklistItem, id)
			return
		}
	}

	s.logger.Debug("toggle ignored, checklist item not found", zap.String("item_id", id))
}

// DeleteChecklistItem removes an item. Unknown ids are ignored.
func (s *WellnessService) DeleteChecklistItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept, removed := removeByID(s.checklist, id, func(c model.ChecklistItem) string { return c.ID })
	if removed == 0 {
		s.logger.Debug("delete ignored, checklist item not found", zap.String("item_id", id))
		return
	}

	s.checklist = kept
	s.save(ctx, KeyChecklist, s.checklist)
	s.record(ctx, audit.OperationDelete, audit.ResourceChecklistItem, id)
}

// removeByID returns the elements whose id differs from id and the number
// of elements dropped. The result is never nil.
func removeByID[E any](in []E, id string, idOf func(E) string) ([]E, int) {
	out := make([]E, 0, len(in))
	for _, e := range in {
		if idOf(e) != id {
			out = append(out, e)
		}
	}
	return out, len(in) - len(out)
}
