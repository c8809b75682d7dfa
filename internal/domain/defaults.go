package domain

import (
	"time"

	"github.com/m04kA/SMC-TenantBookingService/pkg/types"
)

var (
	defaultCuisineType = "Česká kuchyně"
	defaultGroupSize   = 12
)

// DefaultCategoryData returns fresh default settings for a newly created tenant of the category.
// Returns nil for an unknown category.
func DefaultCategoryData(c Category) *CategoryData {
	switch c {
	case CategoryRestaurant:
		cuisine := defaultCuisineType
		return &CategoryData{Category: c, Restaurant: &RestaurantData{
			TableCount:      10,
			SeatingCapacity: 40,
			CuisineType:     &cuisine,
		}}
	case CategoryWellnessSpa:
		return &CategoryData{Category: c, Wellness: &WellnessData{
			RoomCount:      3,
			ProcedureTypes: []string{"Masáž", "Sauna", "Baňkování", "Reflexní terapie"},
			Therapists:     []Staff{},
		}}
	case CategoryBarbershop:
		return &CategoryData{Category: c, Barbershop: &BarbershopData{
			ChairCount: 3,
			Stylists:   []Staff{},
		}}
	case CategoryFitness:
		limit := defaultGroupSize
		return &CategoryData{Category: c, Fitness: &FitnessData{
			Trainers:       []Staff{},
			ActivityTypes:  []string{"Osobní trénink", "Skupinová lekce", "Yoga", "Pilates"},
			GroupSizeLimit: &limit,
		}}
	default:
		return nil
	}
}

// FitnessSpecialties список специализаций тренеров по умолчанию
func FitnessSpecialties() []string {
	return []string{"Posilování", "Kardio", "Yoga", "Pilates", "CrossFit", "Box", "Funkční trénink"}
}

// StylistSpecialties список специализаций стилистов по умолчанию
func StylistSpecialties() []string {
	return []string{"Střihy", "Barvy", "Styling", "Vousy", "Svatební účesy"}
}

// BarbershopServiceTypes типы услуг барбершопа
func BarbershopServiceTypes() []string {
	return []string{"Pánský střih", "Dámský střih", "Dětský střih", "Barva", "Melír", "Holení", "Styling"}
}

// DefaultWeek builds the seed working week of a tenant.
// Monday to Friday use the given hours, Saturday is 10:00-16:00 and Sunday is closed.
func DefaultWeek(tenantID int64, open, close types.TimeString) []*WorkingHours {
	week := make([]*WorkingHours, 0, 7)
	for d := time.Monday; d <= time.Friday; d++ {
		week = append(week, &WorkingHours{TenantID: tenantID, Weekday: d, IsOpen: true, OpenTime: open, CloseTime: close})
	}
	week = append(week,
		&WorkingHours{TenantID: tenantID, Weekday: time.Saturday, IsOpen: true, OpenTime: "10:00", CloseTime: "16:00"},
		&WorkingHours{TenantID: tenantID, Weekday: time.Sunday, IsOpen: false, OpenTime: "10:00", CloseTime: "14:00"},
	)
	return week
}
