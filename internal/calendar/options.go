package calendar

// HeaderToolbar lays out the grid's header: navigation, title, view switches.
type HeaderToolbar struct {
	Left   string `yaml:"left" json:"left"`
	Center string `yaml:"center" json:"center"`
	Right  string `yaml:"right" json:"right"`
}

// TimeFormat mirrors the widget's formatter options for time labels.
type TimeFormat struct {
	Hour     string `yaml:"hour" json:"hour,omitempty"`
	Minute   string `yaml:"minute" json:"minute,omitempty"`
	Meridiem string `yaml:"meridiem" json:"meridiem,omitempty"`
}

// GridOptions is the rendering configuration handed to the calendar widget.
// Field names serialize to the widget's option names; callbacks and the event
// source are attached by the page script.
type GridOptions struct {
	Plugins         []string      `yaml:"plugins" json:"plugins"`
	HeaderToolbar   HeaderToolbar `yaml:"header_toolbar" json:"headerToolbar"`
	InitialView     string        `yaml:"initial_view" json:"initialView"`
	Editable        bool          `yaml:"editable" json:"editable"`
	Selectable      bool          `yaml:"selectable" json:"selectable"`
	SelectMirror    bool          `yaml:"select_mirror" json:"selectMirror"`
	DayMaxEvents    bool          `yaml:"day_max_events" json:"dayMaxEvents"`
	SlotLabelFormat TimeFormat    `yaml:"slot_label_format" json:"slotLabelFormat"`
	TimeZone        string        `yaml:"time_zone" json:"timeZone"`
}

// DefaultGridOptions returns the week-view layout with month/week/day
// switches, selection and editing enabled.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Plugins: []string{"dayGrid", "timeGrid", "list", "interaction"},
		HeaderToolbar: HeaderToolbar{
			Left:   "prev,next today",
			Center: "title",
			Right:  "timeGridWeek,timeGridDay,dayGridMonth",
		},
		InitialView:  "timeGridWeek",
		Editable:     true,
		Selectable:   true,
		SelectMirror: true,
		DayMaxEvents: true,
		SlotLabelFormat: TimeFormat{
			Hour:     "2-digit",
			Minute:   "2-digit",
			Meridiem: "short",
		},
		TimeZone: "UTC",
	}
}
