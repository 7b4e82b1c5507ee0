package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDishNotFound       = errors.New("dish not found")
)

// TimeOfDay is a wall-clock time within a day, independent of date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// OpeningHours is the daily serving window of a restaurant.
type OpeningHours struct {
	Opens  TimeOfDay
	Closes TimeOfDay
}

type Dish struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	PriceCents   int64
	Available    bool
}

type Restaurant struct {
	ID    string
	Name  string
	Hours OpeningHours
	Menu  []Dish
}

// DishByID looks a dish up on the restaurant's current menu.
func (r *Restaurant) DishByID(id string) (Dish, bool) {
	for _, d := range r.Menu {
		if d.ID == id {
			return d, true
		}
	}
	return Dish{}, false
}
