// Package exporter writes the two-key JSON document described in
// SPEC_FULL.md §6: assignments (session_key -> [course_id, room_id,
// slot_id]) and timeslots (slot_id -> {day, index, start_min, end_min}).
//
// Grounded on the teacher's own json.go WriteJSON: build the document by
// hand over a sorted key order so output is diffable and deterministic,
// rather than relying on struct-field order from a one-shot
// json.Marshal of a map (whose key order, while sorted by the stdlib
// today, is not part of this package's own contract).
package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/campusgraph/timetable/internal/solver"
	"github.com/campusgraph/timetable/internal/store"
)

// Write emits assignment and the store's timeslots as the output document.
func Write(w io.Writer, s *store.Store, assignment solver.Assignment) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{\n")

	buf.WriteString("  \"assignments\": {\n")
	keys := make([]string, 0, len(assignment))
	for k := range assignment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		p := assignment[k]
		triple, err := json.Marshal([]string{p.CourseID, p.RoomID, p.SlotID})
		if err != nil {
			return fmt.Errorf("exporter: marshal assignment %s: %w", k, err)
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return err
		}
		comma := ","
		if i == len(keys)-1 {
			comma = ""
		}
		fmt.Fprintf(buf, "    %s: %s%s\n", keyJSON, triple, comma)
	}
	buf.WriteString("  },\n")

	buf.WriteString("  \"timeslots\": {\n")
	slots := s.Timeslots()
	sort.Slice(slots, func(i, j int) bool { return slots[i].SlotID < slots[j].SlotID })
	for i, t := range slots {
		entry := struct {
			Day      string `json:"day"`
			Index    int    `json:"index"`
			StartMin int    `json:"start_min"`
			EndMin   int    `json:"end_min"`
		}{t.Day, t.Index, t.StartMin, t.EndMin}
		entryJSON, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("exporter: marshal timeslot %s: %w", t.SlotID, err)
		}
		keyJSON, err := json.Marshal(t.SlotID)
		if err != nil {
			return err
		}
		comma := ","
		if i == len(slots)-1 {
			comma = ""
		}
		fmt.Fprintf(buf, "    %s: %s%s\n", keyJSON, entryJSON, comma)
	}
	buf.WriteString("  }\n")
	buf.WriteString("}\n")

	_, err := buf.WriteTo(w)
	return err
}
