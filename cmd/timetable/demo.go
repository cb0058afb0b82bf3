package main

import "github.com/campusgraph/timetable/internal/store"

// buildDemoUniversity constructs a variant of the reference toy university
// exercised by internal/solver's tests: a first-year core mathematics
// course two sections must both attend, a data-science elective for one
// cohort, and a communication course taken by section A, run across a
// five-day, six-period grid. Its rooms differ from the test toy (R101 is
// a seminar room of 70, LAB1 holds 30), so only R204 can host the
// smart_class courses. The full entity-ingestion pipeline
// that would populate a store from an institution's real data system is
// outside this module's scope (SPEC_FULL.md §1 Non-goals); this gives the
// CLI something concrete to run end to end.
func buildDemoUniversity() *store.Store {
	s := store.New()
	store.BuildGrid(s, []string{"MON", "TUE", "WED", "THU", "FRI"}, 6, 9*60, 60)

	full := store.FullAvailability([]string{"MON", "TUE", "WED", "THU", "FRI"}, 6)
	fridayAfternoon := cloneAvail(full)
	delete(fridayAfternoon, store.Cell{Day: "FRI", Index: 4})
	delete(fridayAfternoon, store.Cell{Day: "FRI", Index: 5})

	s.AddRoom(store.Room{ID: "R101", RoomType: store.RoomSeminar, Capacity: 70, Availability: cloneAvail(full)})
	s.AddRoom(store.Room{ID: "R204", RoomType: store.RoomSmart, Capacity: 120, Availability: cloneAvail(full)})
	s.AddRoom(store.Room{ID: "LAB1", RoomType: store.RoomLab, Capacity: 30, Availability: cloneAvail(full)})

	s.AddFaculty(store.Faculty{ID: "F-CS-1", Name: "Faculty CS-1", MaxPerWeek: 20, Availability: cloneAvail(fridayAfternoon)})
	s.AddFaculty(store.Faculty{ID: "F-ENG-1", Name: "Faculty ENG-1", MaxPerWeek: 20, Availability: cloneAvail(fridayAfternoon)})

	s.AddCourse(store.Course{ID: "CORE-MATH-101", Title: "Core Mathematics I", Type: store.CourseCore, HoursTheory: 4, FacilityNeeds: map[string]bool{"smart_class": true}})
	s.AddCourse(store.Course{ID: "VAC-DS-201", Title: "Data Science Essentials", Type: store.CourseVAC, HoursTheory: 2, FacilityNeeds: map[string]bool{"smart_class": true}})
	s.AddCourse(store.Course{ID: "AEC-ENG-101", Title: "Technical Communication", Type: store.CourseAEC, HoursTheory: 2, FacilityNeeds: map[string]bool{}})

	must(s.FacultyCanTeach("F-CS-1", "CORE-MATH-101", 5, nil))
	must(s.FacultyCanTeach("F-CS-1", "VAC-DS-201", 4, nil))
	must(s.FacultyCanTeach("F-ENG-1", "AEC-ENG-101", 5, nil))

	s.AddSection(store.Section{ID: "FYUP_Y1_A", Capacity: 60})
	s.AddSection(store.Section{ID: "FYUP_Y1_B", Capacity: 60})
	s.AddCohort(store.Cohort{ID: "COH-DS-ELECTIVE", Size: 45})

	must(s.SectionTakesCourse("FYUP_Y1_A", "CORE-MATH-101"))
	must(s.SectionTakesCourse("FYUP_Y1_B", "CORE-MATH-101"))
	must(s.CohortElectsCourse("COH-DS-ELECTIVE", "VAC-DS-201"))
	must(s.SectionTakesCourse("FYUP_Y1_A", "AEC-ENG-101"))

	return s
}

func cloneAvail(a map[store.Cell]bool) map[store.Cell]bool {
	cp := make(map[store.Cell]bool, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
