package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func unordered(marker byte, s string) listItemLine {
	return listItemLine{marker: marker, item: item(text(s))}
}

func ordered(n int, s string) listItemLine {
	return listItemLine{ordered: true, marker: '.', numeral: n, item: item(text(s))}
}

func TestListMachine_InitialStateIsNoList(t *testing.T) {
	var m listMachine
	require.Equal(t, NoList, m.state)
	require.Nil(t, m.flush())
}

func TestListMachine_UnorderedRun(t *testing.T) {
	var m listMachine
	require.Nil(t, m.feed(unordered('-', "a")))
	require.Equal(t, InUnordered, m.state)
	require.Nil(t, m.feed(unordered('-', "b")))

	got := m.flush()
	require.Equal(t, &UnorderedList{Marker: '-', Items: []ListItem{item(text("a")), item(text("b"))}}, got)
	require.Equal(t, NoList, m.state)
}

func TestListMachine_OrderedTracksNextNumeral(t *testing.T) {
	var m listMachine
	require.Nil(t, m.feed(ordered(5, "a")))
	require.Equal(t, InOrdered, m.state)
	require.Equal(t, 6, m.next)
	require.Nil(t, m.feed(ordered(9, "b")))
	require.Equal(t, 7, m.next)
	require.Equal(t, 5, m.start())

	got := m.flush()
	require.Equal(t, &OrderedList{Start: 5, Items: []ListItem{item(text("a")), item(text("b"))}}, got)
}

func TestListMachine_SwitchingKindClosesAndReprocesses(t *testing.T) {
	var m listMachine
	require.Nil(t, m.feed(unordered('*', "a")))

	closed := m.feed(ordered(1, "b"))
	require.Equal(t, &UnorderedList{Marker: '*', Items: []ListItem{item(text("a"))}}, closed)
	require.Equal(t, InOrdered, m.state)
	require.Equal(t, 1, m.start())
	require.Equal(t, 2, m.next)

	closed = m.feed(unordered('-', "c"))
	require.Equal(t, &OrderedList{Start: 1, Items: []ListItem{item(text("b"))}}, closed)
	require.Equal(t, InUnordered, m.state)
}

func TestListMachine_SwitchingMarkerCloses(t *testing.T) {
	var m listMachine
	require.Nil(t, m.feed(unordered('-', "a")))
	closed := m.feed(unordered('*', "b"))
	require.NotNil(t, closed)
	require.Equal(t, byte('*'), m.marker)
}

func TestListState_String(t *testing.T) {
	require.Equal(t, "no_list", NoList.String())
	require.Equal(t, "in_unordered", InUnordered.String())
	require.Equal(t, "in_ordered", InOrdered.String())
}
