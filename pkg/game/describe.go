package game

import "strings"

// DescribeRoom renders the current room description. A leading '*' in
// the stored text marks a verbatim description; anything else gets the
// classic "You are in a" prefix. Darkness without a lit light source
// hides everything.
func (a *Adventure) DescribeRoom() string {
	if a.state.IsReallyDark() {
		return a.tr("You can't see. It is too dark!\n")
	}
	desc := a.db.Rooms[a.state.Room()].Description
	if strings.HasPrefix(desc, "*") {
		return desc[1:] + "\n"
	}
	return a.tr("You are in a ") + desc + "\n"
}

// DescribeExits lists the obvious exits from the current room, the
// first element being the heading. Returns nil in the dark.
func (a *Adventure) DescribeExits() []string {
	if a.state.IsReallyDark() {
		return nil
	}
	out := []string{a.tr("Obvious exits: ")}
	for dir := 1; dir <= 6; dir++ {
		if a.db.Rooms[a.state.Room()].Exit(dir) != 0 {
			out = append(out, a.tr(directionNames[dir-1]))
		}
	}
	if len(out) == 1 {
		out = append(out, a.tr("none"))
	}
	return out
}

var directionNames = []string{"North", "South", "East", "West", "Up", "Down"}

// DescribeItems lists the visible items in the current room, the first
// element being the heading. Returns nil in the dark or when the room
// is empty.
func (a *Adventure) DescribeItems() []string {
	if a.state.IsReallyDark() {
		return nil
	}
	var out []string
	for i := range a.db.Items {
		if a.state.ItemInRoom(i) {
			if out == nil {
				out = []string{a.tr("You can also see: ")}
			}
			out = append(out, a.db.Items[i].Description)
		}
	}
	return out
}
