package kb

// Condition is a knowledge-base entry: a health topic with the symptom
// phrases that describe it and the advice given for it.
type Condition struct {
	Symptoms []string `json:"symptoms"`
	Advice   []string `json:"advice"`
}

// Entry pairs a condition with its lowercase name. The order of entries
// mirrors the order of the persisted document, which is also the order the
// dialogue engine scans in.
type Entry struct {
	Name      string `json:"name"`
	Condition Condition
}

// DefaultConditions seeds a fresh knowledge-base document.
var DefaultConditions = []Entry{
	{Name: "fever", Condition: Condition{
		Symptoms: []string{"high temperature", "chills", "sweating"},
		Advice:   []string{"Drink plenty of fluids.", "Rest as much as possible.", "Take paracetamol if the temperature stays high."},
	}},
	{Name: "cold", Condition: Condition{
		Symptoms: []string{"runny nose", "sneezing", "sore throat"},
		Advice:   []string{"Stay warm and rest.", "Drink warm fluids like soup or tea.", "Use steam inhalation to ease congestion."},
	}},
	{Name: "cough", Condition: Condition{
		Symptoms: []string{"dry throat", "chest irritation"},
		Advice:   []string{"Sip warm water with honey.", "Avoid cold drinks.", "See a doctor if the cough lasts more than two weeks."},
	}},
	{Name: "headache", Condition: Condition{
		Symptoms: []string{"head pain", "sensitivity to light"},
		Advice:   []string{"Rest in a quiet, dark room.", "Stay hydrated.", "Limit screen time."},
	}},
	{Name: "stomach ache", Condition: Condition{
		Symptoms: []string{"abdominal pain", "bloating"},
		Advice:   []string{"Eat light, bland food.", "Avoid spicy and oily meals.", "Sip warm water through the day."},
	}},
}
