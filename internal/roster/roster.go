// Package roster generates the synthetic class rosters served by the API.
package roster

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/noah-isme/sma-classroom/internal/models"
)

// DefaultClassSize is the number of students generated per class.
const DefaultClassSize = 30

// Catalogue is the fixed list of classes in display order.
var Catalogue = []models.Class{
	{ID: "ITS-011a", Name: "Intro to IT Systems"},
	{ID: "ITS-034a", Name: "IT Systems for Business"},
	{ID: "ITS-034b", Name: "IT Systems for Business"},
	{ID: "ITS-101a", Name: "Data and Databases for IT"},
	{ID: "ENG-204a", Name: "Technical Writing"},
	{ID: "ETH-218a", Name: "Ethics in Technology"},
}

var firstNames = []string{
	"Liam", "Olivia", "Noah", "Emma", "Oliver", "Ava", "Elijah", "Charlotte", "William", "Sophia",
	"James", "Amelia", "Benjamin", "Isabella", "Lucas", "Mia", "Henry", "Evelyn", "Alexander", "Harper",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

// Roster is an immutable set of generated classes and students.
type Roster struct {
	classes  []models.Class
	students map[string][]models.Student
}

// Generate builds a roster for every class in the catalogue. The same seed always
// yields the same students. Student ids are unique across classes and
// assigned in catalogue order starting at 1.
func Generate(seed int64, classSize int) *Roster {
	if classSize <= 0 {
		classSize = DefaultClassSize
	}
	rng := rand.New(rand.NewSource(seed))

	r := &Roster{
		classes:  append([]models.Class(nil), Catalogue...),
		students: make(map[string][]models.Student, len(Catalogue)),
	}
	next := 0
	for _, class := range r.classes {
		students := make([]models.Student, 0, classSize)
		for i := 0; i < classSize; i++ {
			next++
			gpa := math.Round((rng.Float64()*(models.GPAScaleMax-models.GPAScaleMin)+models.GPAScaleMin)*100) / 100
			first := firstNames[rng.Intn(len(firstNames))]
			last := lastNames[rng.Intn(len(lastNames))]
			students = append(students, models.Student{
				ID:        next,
				Name:      first + " " + last,
				StudentID: fmt.Sprintf("SID-%d", 1000+next),
				GPA:       gpa,
			})
		}
		r.students[class.ID] = students
	}
	return r
}

// Classes returns the catalogue.
func (r *Roster) Classes() []models.Class {
	return append([]models.Class(nil), r.classes...)
}

// Class looks up a class by id.
func (r *Roster) Class(id string) (models.Class, bool) {
	for _, c := range r.classes {
		if c.ID == id {
			return c, true
		}
	}
	return models.Class{}, false
}

// Students returns a copy of a class's students in roster order, nil for an unknown class.
func (r *Roster) Students(classID string) []models.Student {
	students, ok := r.students[classID]
	if !ok {
		return nil
	}
	return append([]models.Student(nil), students...)
}

// Student finds one student of a class.
func (r *Roster) Student(classID string, id int) (models.Student, bool) {
	for _, s := range r.students[classID] {
		if s.ID == id {
			return s, true
		}
	}
	return models.Student{}, false
}
