package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
)

const (
	MinSelected = 2
	MaxSelected = 3
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type selection struct {
	ShiftIDs []string `validate:"min=2,max=3,unique,dive,required"`
}

// ValidateSelection checks a comparison selection: two or three distinct,
// non-empty shift IDs.
func ValidateSelection(ids []string) error {
	if err := validate.Struct(selection{ShiftIDs: ids}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidSelection, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("select at least %d shifts to compare", MinSelected)
	case "max":
		return fmt.Sprintf("compare up to %d shifts at a time", MaxSelected)
	case "unique":
		return "shifts must be distinct"
	default:
		return "shift ids must not be empty"
	}
}

type View string

const (
	ViewMonths     View = "months"
	ViewShifts     View = "shifts"
	ViewOverview   View = "overview"
	ViewShift      View = "shift"
	ViewComparison View = "comparison"
)

type Level string

const (
	LevelHome  Level = "home"
	LevelMonth Level = "month"
	LevelView  Level = "view"
)

type Breadcrumb struct {
	Level Level          `json:"level"`
	Month calendar.Month `json:"month,omitempty"`
	View  string         `json:"view,omitempty"`
}

// Session is one user's navigation state. The zero value starts on the
// month list.
type Session struct {
	Month     calendar.Month
	ShiftID   string
	Comparing bool
	Selected  []string

	view View
}

func (s *Session) View() View {
	if s.view == "" {
		return ViewMonths
	}
	return s.view
}

// SelectMonth opens a month's shift list and drops any shift or comparison
// state from the previous month.
func (s *Session) SelectMonth(m calendar.Month) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMonth, int(m))
	}
	s.Month = m
	s.ShiftID = ""
	s.StopComparison()
	s.view = ViewShifts
	return nil
}

func (s *Session) ShowOverview() error {
	if !s.Month.Valid() {
		return fmt.Errorf("%w: no month selected", ErrInvalidSelection)
	}
	s.view = ViewOverview
	return nil
}

// SelectShift opens the shift's detail, or toggles it in the selection
// while comparing.
func (s *Session) SelectShift(id string) error {
	if !s.Month.Valid() {
		return fmt.Errorf("%w: no month selected", ErrInvalidSelection)
	}
	if s.Comparing {
		return s.Toggle(id)
	}
	s.ShiftID = id
	s.view = ViewShift
	return nil
}

func (s *Session) StartComparison() {
	s.Comparing = true
	s.Selected = nil
}

func (s *Session) StopComparison() {
	s.Comparing = false
	s.Selected = nil
}

// Toggle adds or removes id from the comparison selection. Adding beyond
// MaxSelected is rejected and leaves the selection unchanged.
func (s *Session) Toggle(id string) error {
	if !s.Comparing {
		return fmt.Errorf("%w: not comparing", ErrInvalidSelection)
	}
	if i := slices.Index(s.Selected, id); i >= 0 {
		s.Selected = slices.Delete(s.Selected, i, i+1)
		return nil
	}
	if len(s.Selected) >= MaxSelected {
		return fmt.Errorf("%w: compare up to %d shifts at a time", ErrInvalidSelection, MaxSelected)
	}
	s.Selected = append(s.Selected, id)
	return nil
}

// CanCompare reports whether enough shifts are selected.
func (s *Session) CanCompare() bool {
	return s.Comparing && len(s.Selected) >= MinSelected
}

// Compare switches to the comparison view and returns the selection.
func (s *Session) Compare() ([]string, error) {
	if !s.Comparing {
		return nil, fmt.Errorf("%w: not comparing", ErrInvalidSelection)
	}
	if err := ValidateSelection(s.Selected); err != nil {
		return nil, err
	}
	s.view = ViewComparison
	return slices.Clone(s.Selected), nil
}

// Back moves one level up: from a view to the month's shifts, and from the
// shifts to the month list.
func (s *Session) Back() {
	switch s.View() {
	case ViewOverview, ViewShift, ViewComparison:
		s.ShiftID = ""
		s.StopComparison()
		s.view = ViewShifts
	default:
		*s = Session{}
	}
}

// Breadcrumb describes the navigation trail. Shift names come from ds when
// given, falling back to the IDs.
func (s *Session) Breadcrumb(ds *dataset.Dataset) Breadcrumb {
	name := func(id string) string {
		if ds != nil {
			if shift, ok := ds.Shift(id); ok {
				return shift.Name
			}
		}
		return id
	}

	switch s.View() {
	case ViewShifts:
		return Breadcrumb{Level: LevelMonth, Month: s.Month}
	case ViewOverview:
		return Breadcrumb{Level: LevelView, Month: s.Month, View: "Month Overview"}
	case ViewShift:
		return Breadcrumb{Level: LevelView, Month: s.Month, View: name(s.ShiftID)}
	case ViewComparison:
		names := make([]string, 0, len(s.Selected))
		for _, id := range s.Selected {
			names = append(names, name(id))
		}
		return Breadcrumb{Level: LevelView, Month: s.Month, View: "Comparison: " + strings.Join(names, " vs ")}
	default:
		return Breadcrumb{Level: LevelHome}
	}
}
