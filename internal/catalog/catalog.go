// Package catalog answers which spaces exist and which slot templates they offer.
// A catalog is immutable once built; per-date booking state lives in the reservation store.
package catalog

import (
	"fmt"
	"sort"

	catalogerrors "spacebook/internal/catalog/errors"
	"spacebook/internal/catalog/validator"
	"spacebook/pkg/model"
	"spacebook/pkg/sanitizer"
)

type Catalog interface {
	GetSpace(spaceID string) (*model.Space, error)
	GetSlot(spaceID string, slotID string) (model.TimeSlot, error)
	ListSpaces() []model.Space
}

type staticCatalog struct {
	spaces map[string]model.Space
	order  []string
}

// New validates every space and returns a read-only catalog over copies of them.
func New(spaces []model.Space, v *validator.SpaceValidator) (Catalog, error) {
	c := &staticCatalog{
		spaces: make(map[string]model.Space, len(spaces)),
		order:  make([]string, 0, len(spaces)),
	}

	for i := range spaces {
		space := cloneSpace(spaces[i])
		space.Name = sanitizer.NormalizeName(space.Name)
		space.Category = sanitizer.NormalizeLabel(space.Category)

		if err := v.Validate(&space); err != nil {
			return nil, fmt.Errorf("%w: space %q: %v", catalogerrors.ErrInvalidCatalog, space.ID, err)
		}
		if _, dup := c.spaces[space.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate space id %q", catalogerrors.ErrInvalidCatalog, space.ID)
		}

		c.spaces[space.ID] = space
		c.order = append(c.order, space.ID)
	}

	sort.Strings(c.order)
	return c, nil
}

func (c *staticCatalog) GetSpace(spaceID string) (*model.Space, error) {
	space, ok := c.spaces[spaceID]
	if !ok {
		return nil, catalogerrors.ErrSpaceNotFound
	}
	out := cloneSpace(space)
	return &out, nil
}

func (c *staticCatalog) GetSlot(spaceID string, slotID string) (model.TimeSlot, error) {
	space, ok := c.spaces[spaceID]
	if !ok {
		return model.TimeSlot{}, catalogerrors.ErrSpaceNotFound
	}
	slot, ok := space.Slot(slotID)
	if !ok {
		return model.TimeSlot{}, catalogerrors.ErrSlotNotFound
	}
	return slot, nil
}

func (c *staticCatalog) ListSpaces() []model.Space {
	out := make([]model.Space, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, cloneSpace(c.spaces[id]))
	}
	return out
}

func cloneSpace(s model.Space) model.Space {
	s.Slots = append([]model.TimeSlot(nil), s.Slots...)
	return s
}
