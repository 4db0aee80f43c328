package inquiries

var (
	EventTypes = []string{
		"Birthday Party",
		"Wedding",
		"Anniversary",
		"Graduation",
		"Corporate Event",
		"Baby Shower",
		"Retirement",
		"Holiday Celebration",
		"Other",
	}

	CakeTypes = []string{
		"Tiered Cake",
		"Sheet Cake",
		"Cupcake Tower",
		"Specialty Shaped Cake",
		"Dessert Table",
		"Wedding Cake",
		"Other",
	}

	ServingSizes = []string{
		"10-15 people",
		"20-30 people",
		"40-50 people",
		"60-75 people",
		"100+ people",
	}

	BudgetRanges = []string{
		"Under $100",
		"$100 - $250",
		"$250 - $500",
		"$500 - $1000",
		"$1000+",
	}
)

// Options lists the accepted values for the custom order form's select fields.
type Options struct {
	EventTypes   []string `json:"event_types"`
	CakeTypes    []string `json:"cake_types"`
	ServingSizes []string `json:"serving_sizes"`
	BudgetRanges []string `json:"budget_ranges"`
}

func FormOptions() Options {
	return Options{
		EventTypes:   append([]string(nil), EventTypes...),
		CakeTypes:    append([]string(nil), CakeTypes...),
		ServingSizes: append([]string(nil), ServingSizes...),
		BudgetRanges: append([]string(nil), BudgetRanges...),
	}
}

func oneOf(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
