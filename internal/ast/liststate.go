package ast

// ListState is the state of the list grouping machine.
type ListState int

const (
	NoList ListState = iota
	InUnordered
	InOrdered
)

func (s ListState) String() string {
	switch s {
	case InUnordered:
		return "in_unordered"
	case InOrdered:
		return "in_ordered"
	default:
		return "no_list"
	}
}

// listItemLine is one recognized list-item line handed to the machine.
type listItemLine struct {
	ordered bool
	marker  byte
	numeral int
	item    ListItem
}

// listMachine groups consecutive list-item lines of one kind into a list block.
// In InOrdered, next is the numeral the following item would carry if the
// list were numbered sequentially from its first source item.
type listMachine struct {
	state  ListState
	marker byte
	next   int
	items  []ListItem
}

// feed appends the item to the open list when it has the same kind and
// marker. Otherwise the open list is closed and returned, and the item
// starts a new list.
func (m *listMachine) feed(l listItemLine) Block {
	var closed Block
	if !m.accepts(l) {
		closed = m.flush()
	}

	switch {
	case m.state == NoList && l.ordered:
		m.state, m.next = InOrdered, l.numeral
	case m.state == NoList:
		m.state, m.marker = InUnordered, l.marker
	}
	m.items = append(m.items, l.item)
	if m.state == InOrdered {
		m.next++
	}
	return closed
}

func (m *listMachine) accepts(l listItemLine) bool {
	switch m.state {
	case InUnordered:
		return !l.ordered && l.marker == m.marker
	case InOrdered:
		return l.ordered
	default:
		return true
	}
}

// flush closes the open list, if any, and returns it as a block.
func (m *listMachine) flush() Block {
	var b Block
	switch m.state {
	case InUnordered:
		b = &UnorderedList{Marker: m.marker, Items: m.items}
	case InOrdered:
		b = &OrderedList{Start: m.start(), Items: m.items}
	default:
		return nil
	}
	*m = listMachine{}
	return b
}

// start is the numeral of the first item of the open ordered list.
func (m *listMachine) start() int {
	return m.next - len(m.items)
}
