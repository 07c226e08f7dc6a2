package core

// Settings is the persisted view/filter state: read at startup, patched on
// every interaction, written back after every mutation. ClosingDates lives
// here because it is a single month-keyed dictionary, not a collection.
type Settings struct {
	SelectedMonth  string            `json:"selectedMonth,omitempty"`
	SelectedPerson string            `json:"selectedPerson,omitempty"`
	SelectedCard   string            `json:"selectedCard,omitempty"`
	Query          string            `json:"query,omitempty"`
	View           string            `json:"view,omitempty"`
	BaseAllMonths  bool              `json:"baseAllMonths,omitempty"`
	PeopleMonth    string            `json:"peopleMonth,omitempty"`
	PeoplePerson   string            `json:"peoplePerson,omitempty"`
	Theme          string            `json:"theme,omitempty"`
	ClosingDates   map[string]string `json:"closingDates,omitempty"`
}

// SettingsPatch carries the fields a single interaction wants to change.
// Nil pointers leave the current value alone.
type SettingsPatch struct {
	SelectedMonth  *string
	SelectedPerson *string
	SelectedCard   *string
	Query          *string
	View           *string
	BaseAllMonths  *bool
	PeopleMonth    *string
	PeoplePerson   *string
	Theme          *string
}

// Apply shallow-merges a patch over the settings and returns the result.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.SelectedMonth != nil {
		s.SelectedMonth = *p.SelectedMonth
	}
	if p.SelectedPerson != nil {
		s.SelectedPerson = *p.SelectedPerson
	}
	if p.SelectedCard != nil {
		s.SelectedCard = *p.SelectedCard
	}
	if p.Query != nil {
		s.Query = *p.Query
	}
	if p.View != nil {
		s.View = *p.View
	}
	if p.BaseAllMonths != nil {
		s.BaseAllMonths = *p.BaseAllMonths
	}
	if p.PeopleMonth != nil {
		s.PeopleMonth = *p.PeopleMonth
	}
	if p.PeoplePerson != nil {
		s.PeoplePerson = *p.PeoplePerson
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	return s
}

// SetClosingDate upserts the closing-date label for a month.
func (s *Settings) SetClosingDate(month, label string) {
	if s.ClosingDates == nil {
		s.ClosingDates = make(map[string]string)
	}
	s.ClosingDates[month] = label
}
