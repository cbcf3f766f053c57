// Static helpline directory.
//
// Entries are compiled in and used verbatim in crisis replies; they are not
// configurable per request so a misconfigured deployment can never drop
// them. Keep numbers current when editing.
package safety

// Helpline is one crisis support contact.
type Helpline struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Hours     string `json:"hours"`
	Languages string `json:"languages"`
}

var helplines = []Helpline{
	{Name: "iCall", Phone: "+91 9152987821", Hours: "Mon-Sat 10:00-20:00 IST", Languages: "English, Hindi"},
	{Name: "AASRA", Phone: "+91 9820466726", Hours: "24x7", Languages: "English, Hindi"},
	{Name: "Vandrevala Foundation", Phone: "1860 266 2345", Hours: "24x7", Languages: "English, Hindi, regional"},
}

// Helplines returns the compiled-in directory. The slice is freshly
// allocated so callers may not mutate shared state.
func Helplines() []Helpline {
	out := make([]Helpline, len(helplines))
	copy(out, helplines)
	return out
}
