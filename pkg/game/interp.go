package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pforhan/scottFree2025/pkg/gamedb"
)

// evalLine evaluates the five condition slots of action line n against
// the current state, short-circuiting on the first failure. Code 0 is a
// pass-through slot whose parameter belongs to the action codes.
func (a *Adventure) evalLine(n int) bool {
	line := &a.db.Actions[n]
	st := a.state

	for i := 0; i < 5; i++ {
		p := line.CondParam[i]
		failed := false

		switch line.Condition[i] {
		case 0:
		case 1: // item carried
			failed = !st.ItemCarried(p)
		case 2: // item in current room
			failed = !st.ItemInRoom(p)
		case 3: // item carried or in room
			failed = !st.ItemHere(p)
		case 4: // player in room p
			failed = st.Room() != p
		case 5: // item not in current room
			failed = st.ItemInRoom(p)
		case 6: // item not carried
			failed = st.ItemCarried(p)
		case 7: // player not in room p
			failed = st.Room() == p
		case 8: // flag set
			failed = !st.Flag(p)
		case 9: // flag clear
			failed = st.Flag(p)
		case 10: // anything carried
			failed = st.CountCarried() == 0
		case 11: // nothing carried
			failed = st.CountCarried() != 0
		case 12: // item neither carried nor in room
			failed = st.ItemHere(p)
		case 13: // item destroyed
			failed = st.ItemDestroyed(p)
		case 14: // item not destroyed
			failed = !st.ItemDestroyed(p)
		case 15: // counter <= p
			failed = st.Counter() > p
		case 16: // counter > p
			failed = st.Counter() <= p
		case 17: // item in its original room
			failed = st.ItemLocation(p) != st.OriginalLocation(p)
		case 18: // item away from its original room
			failed = st.ItemLocation(p) == st.OriginalLocation(p)
		case 19: // counter == p
			failed = st.Counter() != p
		}

		if failed {
			return false
		}
	}
	return true
}

// printMessage prints scripted message n followed by a newline.
func (a *Adventure) printMessage(n int) {
	if n < 0 || n >= len(a.db.Messages) {
		return
	}
	a.print(a.db.Messages[n] + a.tr("\n"))
}

// interpretLine runs action line n if its conditions hold, consuming
// pass-through parameters left to right. Continuation lines (verb and
// noun both zero, immediately following a line that executed the
// continuation marker) run in recursive mode so they cannot chain
// further. Returns whether the line ran.
func (a *Adventure) interpretLine(n int, recursive bool) bool {
	if a.state.Ended() || !a.evalLine(n) {
		return false
	}

	line := &a.db.Actions[n]
	st := a.state
	continuation := false
	pnum := 0

	for i := 0; i < 4; i++ {
		code := line.Act[i]
		if code >= 1 && code <= 51 {
			a.printMessage(code)
			continue
		}
		if code > 101 {
			a.printMessage(code - 50)
			continue
		}

		switch code {
		case 0: // no-op
		case 52: // get item
			if !st.CanCarryMore() {
				a.print(a.tr("You are carrying too much.\n"))
			} else {
				st.CarryItem(line.Param(pnum))
				pnum++
			}
		case 53: // move item into current room
			st.MoveItemHere(line.Param(pnum))
		case 54: // goto room
			st.SetRoom(line.Param(pnum))
			pnum++
		case 55: // destroy item
			st.DestroyItem(line.Param(pnum))
			pnum++
		case 56: // night falls
			st.SetDark()
		case 57: // day breaks
			st.ClearDark()
		case 58: // set flag
			st.SetFlag(line.Param(pnum))
			pnum++
		case 59: // destroy item, duplicate of 55
			st.DestroyItem(line.Param(pnum))
			pnum++
		case 60: // clear flag
			st.ClearFlag(line.Param(pnum))
			pnum++
		case 61: // kill player
			a.print(a.tr("You are dead.\n"))
			st.ClearDark()
			st.SetRoom(a.db.Header.NumRooms - 1)
		case 62: // move item X to room Y
			item := line.Param(pnum)
			pnum++
			st.SetItemLocation(item, line.Param(pnum))
			pnum++
		case 63: // quit
			a.print(a.tr("The game is now over.\n"))
			st.End()
		case 64: // look
			st.SetRoomChanged()
		case 65: // score
			a.doScore()
		case 66: // inventory
			a.doInventory()
		case 67: // set flag 0
			st.SetFlag(0)
		case 68: // clear flag 0
			st.ClearFlag(0)
		case 69: // refill light source
			st.SetLightTime(a.db.Header.LightTime)
			st.CarryLamp()
		case 70: // clear screen
			a.term.ClearScreen()
		case 71: // save game
			a.SaveGame()
		case 72: // swap two items
			i1 := line.Param(pnum)
			pnum++
			i2 := line.Param(pnum)
			pnum++
			st.SwapItems(i1, i2)
		case 73: // continue with following zero-verb lines
			continuation = true
		case 74: // get item ignoring capacity
			st.CarryItem(line.Param(pnum))
			pnum++
		case 75: // put item X at item Y's location
			i1 := line.Param(pnum)
			pnum++
			i2 := line.Param(pnum)
			pnum++
			st.SetItemLocation(i1, st.ItemLocation(i2))
		case 76: // look, duplicate of 64
			st.SetRoomChanged()
		case 77: // count down, stops at -1
			if st.Counter() >= 0 {
				st.SetCounter(st.Counter() - 1)
			}
		case 78: // print counter
			a.print(strconv.Itoa(st.Counter()))
		case 79: // set counter
			st.SetCounter(line.Param(pnum))
			pnum++
		case 80: // swap room with the single slot
			st.SwapRoom()
		case 81: // select counter slot
			st.SelectCounter(line.Param(pnum))
			pnum++
		case 82: // add to counter
			st.SetCounter(st.Counter() + line.Param(pnum))
			pnum++
		case 83: // subtract from counter, floor at -1
			st.SetCounter(st.Counter() - line.Param(pnum))
			pnum++
			if st.Counter() < -1 {
				st.SetCounter(-1)
			}
		case 84: // echo noun
			a.print(a.lastNoun)
		case 85: // echo noun with newline
			a.print(a.lastNoun + a.tr("\n"))
		case 86: // newline
			a.print(a.tr("\n"))
		case 87: // swap room with indexed slot
			st.SwapRoomSlot(line.Param(pnum))
			pnum++
		case 88: // presentation pause
			a.term.Delay(2 * time.Second)
		case 89: // show picture, parameter consumed and ignored
			pnum++
		default:
			a.print(fmt.Sprintf(a.tr("WARNING: Unknown action code #%d at line %d\n"), code, n))
		}

		if st.Ended() {
			break
		}
	}

	if !recursive && continuation {
		for next := n + 1; next < len(a.db.Actions) &&
			a.db.Actions[next].Verb == 0 &&
			a.db.Actions[next].Noun == 0; next++ {
			a.interpretLine(next, true)
		}
	}

	return true
}

// doScore counts treasures stored in the treasure room and reports the
// percentage; storing them all wins and ends the game.
func (a *Adventure) doScore() {
	st := a.state
	stored := 0
	for i := range a.db.Items {
		if st.ItemLocation(i) == a.db.Header.TreasureRoom && a.db.Items[i].IsTreasure() {
			stored++
		}
	}

	percent := 0
	if a.db.Header.NumTreasures > 0 {
		percent = stored * 100 / a.db.Header.NumTreasures
	}
	a.print(a.tr("You have stored ") + strconv.Itoa(stored) +
		a.tr(" treasures. On a scale of 0 to 100, that rates ") +
		strconv.Itoa(percent) + a.tr(".\n"))
	if stored == a.db.Header.NumTreasures {
		a.print(a.tr("Well done.\n"))
		st.End()
	}
}

// doInventory lists carried items.
func (a *Adventure) doInventory() {
	found := false
	a.print(a.tr("You are carrying:\n"))
	for i := range a.db.Items {
		if a.state.ItemCarried(i) {
			if found {
				a.print(a.tr(" - "))
			}
			found = true
			a.print(a.db.Items[i].Description)
		}
	}
	if !found {
		a.print(a.tr("Nothing"))
	}
	a.print(a.tr(".\n"))
}

// doGo handles GO with a resolved direction noun. Reports true when the
// command was fully handled here; a noun outside the direction range
// falls through to the scripted action table instead.
func (a *Adventure) doGo(direction int) bool {
	if direction == gamedb.NotFound {
		a.print(a.tr("Give me a direction too.\n"))
		return true
	}
	if direction < gamedb.FirstDir || direction > gamedb.LastDir {
		return false
	}

	if a.state.IsReallyDark() {
		a.print(a.tr("Dangerous to move in the dark!\n"))
	}

	dest := a.db.Rooms[a.state.Room()].Exit(direction)
	switch {
	case dest != 0:
		a.state.SetRoom(dest)
		a.print(a.tr("O.K.\n"))
	case a.state.IsReallyDark():
		a.print(a.tr("You fell down and broke your neck.\n"))
		a.state.End()
	default:
		a.print(a.tr("You can't go in that direction.\n"))
	}
	return true
}

// doGet is the fallback GET handling when no scripted line succeeded.
// ALL iterates every auto-pickable item in the room, firing its
// scripted GET action before the default carry.
func (a *Adventure) doGet(nounID int) bool {
	if strings.EqualFold(a.lastNoun, a.tr("ALL")) {
		if a.state.IsReallyDark() {
			a.print(a.tr("It is dark.\n"))
			return true
		}
		taken := false
		for i := range a.db.Items {
			if !a.state.ItemInRoom(i) || a.db.Items[i].AutoPick == "" {
				continue
			}
			doNoun := gamedb.WhichWord(a.db.Items[i].AutoPick, a.db.Nouns)
			a.doActions(gamedb.VerbGet, doNoun, true)
			if !a.state.CanCarryMore() {
				a.print(a.tr("You are carrying too much.\n"))
				break
			}
			a.state.CarryItem(i)
			a.print(a.db.Items[i].Description + a.tr(": O.K.\n"))
			taken = true
		}
		if !taken {
			a.print(a.tr("Nothing taken.\n"))
		}
		return true
	}

	if nounID == gamedb.NotFound {
		a.print(a.tr("What ?\n"))
		return true
	}
	if !a.state.CanCarryMore() {
		a.print(a.tr("You are carrying too much.\n"))
		return true
	}
	it := a.itemByNoun(a.lastNoun)
	if it == gamedb.NotFound || !a.state.ItemInRoom(it) {
		a.print(a.tr("It is beyond your power to do that.\n"))
	} else {
		a.state.CarryItem(it)
		a.print(a.tr("O.K.\n"))
	}
	return true
}

// doPut is the fallback PUT handling, mirroring doGet for carried
// items.
func (a *Adventure) doPut(nounID int) bool {
	if strings.EqualFold(a.lastNoun, a.tr("ALL")) {
		dropped := false
		for i := range a.db.Items {
			if !a.state.ItemCarried(i) || a.db.Items[i].AutoPick == "" {
				continue
			}
			doNoun := gamedb.WhichWord(a.db.Items[i].AutoPick, a.db.Nouns)
			a.doActions(gamedb.VerbPut, doNoun, true)
			a.state.MoveItemHere(i)
			a.print(a.db.Items[i].Description + a.tr(": O.K.\n"))
			dropped = true
		}
		if !dropped {
			a.print(a.tr("Nothing dropped.\n"))
		}
		return true
	}

	if nounID == gamedb.NotFound {
		a.print(a.tr("What ?\n"))
		return true
	}
	it := a.itemByNoun(a.lastNoun)
	if it == gamedb.NotFound || !a.state.ItemCarried(it) {
		a.print(a.tr("It is beyond your power to do that.\n"))
	} else {
		a.state.MoveItemHere(it)
		a.print(a.tr("O.K.\n"))
	}
	return true
}

// doActions dispatches one verb/noun pair over the action table. AUTO
// passes run every line whose random threshold succeeds; player verbs
// stop at the first line that executes. GET and PUT fall back to the
// default heuristics when nothing scripted fired. Returns whether the
// game has ended.
func (a *Adventure) doActions(verb, noun int, recursive bool) bool {
	somethingDone := false
	somethingTried := false

	if !recursive {
		a.state.ClearRoomChanged()
	}

	if verb == gamedb.VerbGo && a.doGo(noun) {
		somethingDone = true
	} else {
		for line := range a.db.Actions {
			v := a.db.Actions[line].Verb
			n := a.db.Actions[line].Noun
			if v != verb {
				continue
			}
			if (v != gamedb.Auto && (n == noun || n == gamedb.Any)) ||
				(v == gamedb.Auto && a.rng.Intn(100) < n) {
				somethingTried = true
				if a.interpretLine(line, false) {
					somethingDone = true
				}
				if somethingDone && v != gamedb.Auto {
					break
				}
			}
		}
	}

	if !recursive {
		if verb == gamedb.VerbGet && !somethingDone {
			somethingDone = a.doGet(noun)
		} else if verb == gamedb.VerbPut && !somethingDone {
			somethingDone = a.doPut(noun)
		}

		if somethingDone {
			if a.state.RoomChanged() {
				a.term.NotifyRoomChanged()
			}
		} else if verb != gamedb.Auto {
			if somethingTried {
				a.print(a.tr("I can't do that yet.\n"))
			} else {
				a.print(a.tr("I don't understand your command.\n"))
			}
		}
	}

	return a.state.Ended()
}
