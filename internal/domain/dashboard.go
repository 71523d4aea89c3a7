package domain

import "time"

// Dashboard é o layout vertical com as figuras na ordem de exibição
type Dashboard struct {
	Title   string    `json:"title"`
	BuildID string    `json:"build_id"`
	BuiltAt time.Time `json:"built_at"`
	Source  string    `json:"source"`
	Rows    int       `json:"rows"`
	Debug   bool      `json:"debug"`
	Figures []*Figure `json:"figures"`
}

// Summaries retorna a lista resumida das figuras, na ordem do layout
func (d *Dashboard) Summaries() []Summary {
	summaries := make([]Summary, 0, len(d.Figures))
	for _, f := range d.Figures {
		summaries = append(summaries, f.Summary())
	}
	return summaries
}

// Figure busca uma figura pelo ID
func (d *Dashboard) Figure(id string) (*Figure, bool) {
	for _, f := range d.Figures {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}
