package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the business vertical of a tenant
type Category string

const (
	CategoryRestaurant  Category = "RESTAURANT"
	CategoryWellnessSpa Category = "WELLNESS_SPA"
	CategoryBarbershop  Category = "BARBERSHOP"
	CategoryFitness     Category = "FITNESS_SPORT"
)

// IsValid reports whether the category is one of the known variants
func (c Category) IsValid() bool {
	switch c {
	case CategoryRestaurant, CategoryWellnessSpa, CategoryBarbershop, CategoryFitness:
		return true
	default:
		return false
	}
}

// Label returns the human readable name shown to customers
func (c Category) Label() string {
	switch c {
	case CategoryRestaurant:
		return "Restaurace"
	case CategoryWellnessSpa:
		return "Wellness & Spa"
	case CategoryBarbershop:
		return "Kadeřnictví/Barbershop"
	case CategoryFitness:
		return "Fitness/Sport"
	default:
		return ""
	}
}

// Staff is a named specialist (stylist, trainer, therapist)
type Staff struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties,omitempty"`
}

type RestaurantData struct {
	TableCount      int     `json:"tableCount"`
	SeatingCapacity int     `json:"seatingCapacity"`
	CuisineType     *string `json:"cuisineType,omitempty"`
}

type WellnessData struct {
	RoomCount      int      `json:"roomCount"`
	ProcedureTypes []string `json:"procedureTypes"`
	Therapists     []Staff  `json:"therapists,omitempty"`
}

type BarbershopData struct {
	ChairCount int     `json:"chairCount"`
	Stylists   []Staff `json:"stylists"`
}

type FitnessData struct {
	Trainers       []Staff  `json:"trainers"`
	ActivityTypes  []string `json:"activityTypes"`
	GroupSizeLimit *int     `json:"groupSizeLimit,omitempty"`
}

// CategoryData is the tenant level tagged union keyed by Category.
// Exactly one variant pointer matching Category is set.
type CategoryData struct {
	Category   Category
	Restaurant *RestaurantData
	Wellness   *WellnessData
	Barbershop *BarbershopData
	Fitness    *FitnessData
}

type categoryEnvelope struct {
	Category Category        `json:"category"`
	Data     json.RawMessage `json:"data"`
}

func (d CategoryData) variant() interface{} {
	switch d.Category {
	case CategoryRestaurant:
		return d.Restaurant
	case CategoryWellnessSpa:
		return d.Wellness
	case CategoryBarbershop:
		return d.Barbershop
	case CategoryFitness:
		return d.Fitness
	default:
		return nil
	}
}

// MarshalJSON encodes the union as {"category": "...", "data": {...}}
func (d CategoryData) MarshalJSON() ([]byte, error) {
	if !d.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}
	data, err := json.Marshal(d.variant())
	if err != nil {
		return nil, err
	}
	return json.Marshal(categoryEnvelope{Category: d.Category, Data: data})
}

// UnmarshalJSON decodes the envelope and the variant selected by category
func (d *CategoryData) UnmarshalJSON(b []byte) error {
	var env categoryEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if !env.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, env.Category)
	}

	*d = CategoryData{Category: env.Category}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: data is required", ErrInvalidCategoryData)
	}

	switch env.Category {
	case CategoryRestaurant:
		d.Restaurant = &RestaurantData{}
		return json.Unmarshal(env.Data, d.Restaurant)
	case CategoryWellnessSpa:
		d.Wellness = &WellnessData{}
		return json.Unmarshal(env.Data, d.Wellness)
	case CategoryBarbershop:
		d.Barbershop = &BarbershopData{}
		return json.Unmarshal(env.Data, d.Barbershop)
	default:
		d.Fitness = &FitnessData{}
		return json.Unmarshal(env.Data, d.Fitness)
	}
}

// Validate checks the variant matching the category
func (d *CategoryData) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: data is required", ErrInvalidCategoryData)
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}

	switch d.Category {
	case CategoryRestaurant:
		r := d.Restaurant
		if r == nil || r.TableCount <= 0 || r.SeatingCapacity <= 0 {
			return fmt.Errorf("%w: tableCount and seatingCapacity must be positive", ErrInvalidCategoryData)
		}
	case CategoryWellnessSpa:
		w := d.Wellness
		if w == nil || w.RoomCount <= 0 || w.ProcedureTypes == nil {
			return fmt.Errorf("%w: roomCount must be positive and procedureTypes set", ErrInvalidCategoryData)
		}
	case CategoryBarbershop:
		b := d.Barbershop
		if b == nil || b.ChairCount <= 0 || b.Stylists == nil {
			return fmt.Errorf("%w: chairCount must be positive and stylists set", ErrInvalidCategoryData)
		}
	case CategoryFitness:
		f := d.Fitness
		if f == nil || f.Trainers == nil || f.ActivityTypes == nil {
			return fmt.Errorf("%w: trainers and activityTypes must be set", ErrInvalidCategoryData)
		}
		if f.GroupSizeLimit != nil && *f.GroupSizeLimit < 1 {
			return fmt.Errorf("%w: groupSizeLimit must be at least 1", ErrInvalidCategoryData)
		}
	}
	return nil
}

type RestaurantBookingData struct {
	TableNumber     int     `json:"tableNumber"`
	PersonCount     int     `json:"personCount"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

type WellnessBookingData struct {
	ProcedureType string  `json:"procedureType"`
	RoomNumber    string  `json:"roomNumber"`
	TherapistName *string `json:"therapistName,omitempty"`
}

type BarbershopBookingData struct {
	StylistID   string `json:"stylistId"`
	StylistName string `json:"stylistName"`
	ServiceType string `json:"serviceType"`
}

type FitnessBookingData struct {
	TrainerID        string `json:"trainerId"`
	TrainerName      string `json:"trainerName"`
	ActivityType     string `json:"activityType"`
	ParticipantCount *int   `json:"participantCount,omitempty"`
}

// BookingCategoryData is the per-booking counterpart of CategoryData
type BookingCategoryData struct {
	Category   Category
	Restaurant *RestaurantBookingData
	Wellness   *WellnessBookingData
	Barbershop *BarbershopBookingData
	Fitness    *FitnessBookingData
}

func (d BookingCategoryData) variant() interface{} {
	switch d.Category {
	case CategoryRestaurant:
		return d.Restaurant
	case CategoryWellnessSpa:
		return d.Wellness
	case CategoryBarbershop:
		return d.Barbershop
	case CategoryFitness:
		return d.Fitness
	default:
		return nil
	}
}

func (d BookingCategoryData) MarshalJSON() ([]byte, error) {
	if !d.Category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}
	data, err := json.Marshal(d.variant())
	if err != nil {
		return nil, err
	}
	return json.Marshal(categoryEnvelope{Category: d.Category, Data: data})
}

func (d *BookingCategoryData) UnmarshalJSON(b []byte) error {
	var env categoryEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if !env.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, env.Category)
	}

	*d = BookingCategoryData{Category: env.Category}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: data is required", ErrInvalidCategoryData)
	}

	switch env.Category {
	case CategoryRestaurant:
		d.Restaurant = &RestaurantBookingData{}
		return json.Unmarshal(env.Data, d.Restaurant)
	case CategoryWellnessSpa:
		d.Wellness = &WellnessBookingData{}
		return json.Unmarshal(env.Data, d.Wellness)
	case CategoryBarbershop:
		d.Barbershop = &BarbershopBookingData{}
		return json.Unmarshal(env.Data, d.Barbershop)
	default:
		d.Fitness = &FitnessBookingData{}
		return json.Unmarshal(env.Data, d.Fitness)
	}
}

// Validate applies the per-category booking rules and joins every violation
func (d *BookingCategoryData) Validate() error {
	if d == nil {
		return nil
	}
	if !d.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}

	var problems []string
	switch d.Category {
	case CategoryRestaurant:
		r := d.Restaurant
		if r == nil {
			return fmt.Errorf("%w: data is required", ErrInvalidBookingData)
		}
		if r.PersonCount < 1 {
			problems = append(problems, "personCount must be at least 1")
		}
		if r.TableNumber == 0 {
			problems = append(problems, "tableNumber is required")
		}
	case CategoryWellnessSpa:
		w := d.Wellness
		if w == nil {
			return fmt.Errorf("%w: data is required", ErrInvalidBookingData)
		}
		if strings.TrimSpace(w.ProcedureType) == "" {
			problems = append(problems, "procedureType is required")
		}
		if strings.TrimSpace(w.RoomNumber) == "" {
			problems = append(problems, "roomNumber is required")
		}
	case CategoryBarbershop:
		b := d.Barbershop
		if b == nil {
			return fmt.Errorf("%w: data is required", ErrInvalidBookingData)
		}
		if strings.TrimSpace(b.ServiceType) == "" {
			problems = append(problems, "serviceType is required")
		}
		if strings.TrimSpace(b.StylistID) == "" {
			problems = append(problems, "stylistId is required")
		}
	case CategoryFitness:
		f := d.Fitness
		if f == nil {
			return fmt.Errorf("%w: data is required", ErrInvalidBookingData)
		}
		if strings.TrimSpace(f.ActivityType) == "" {
			problems = append(problems, "activityType is required")
		}
		if strings.TrimSpace(f.TrainerID) == "" {
			problems = append(problems, "trainerId is required")
		}
		if f.ParticipantCount != nil && *f.ParticipantCount < 1 {
			problems = append(problems, "participantCount must be at least 1")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBookingData, strings.Join(problems, "; "))
	}
	return nil
}
