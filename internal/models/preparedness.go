package models

type ItemStatus string

const (
	ItemComplete   ItemStatus = "complete"
	ItemIncomplete ItemStatus = "incomplete"
)

// Toggled возвращает противоположный статус
func (s ItemStatus) Toggled() ItemStatus {
	if s == ItemComplete {
		return ItemIncomplete
	}
	return ItemComplete
}

type PreparednessItem struct {
	ID          string     `json:"id"`
	Category    string     `json:"category"`
	Name        string     `json:"name"`
	Status      ItemStatus `json:"status"`
	Description string     `json:"description"`
}

type PreparednessPlan struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Items []PreparednessItem `json:"items"`
}

// Clone копирует список пунктов
func (p PreparednessPlan) Clone() PreparednessPlan {
	out := p
	out.Items = make([]PreparednessItem, len(p.Items))
	copy(out.Items, p.Items)
	return out
}

// Score - округленный процент выполненных пунктов
func (p PreparednessPlan) Score() int {
	if len(p.Items) == 0 {
		return 0
	}
	done := 0
	for _, it := range p.Items {
		if it.Status == ItemComplete {
			done++
		}
	}
	return (done*100 + len(p.Items)/2) / len(p.Items)
}
