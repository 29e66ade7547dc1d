package store

import (
	"log"

	"restaurant-booking-api/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedSampleData loads demo restaurants, menus and the owner/admin accounts
// into an empty store. Registration only ever creates plain users, so the
// privileged demo accounts come from here.
func SeedSampleData(s *Store, bcryptCost int) error {
	if existing, err := s.Restaurants.List(RestaurantFilter{}); err != nil {
		return err
	} else if len(existing) > 0 {
		return nil
	}

	for _, account := range []struct {
		name, email, password string
		role                  models.UserRole
	}{
		{"Demo Owner", "owner@example.com", "Owner1234", models.RoleOwner},
		{"Demo Admin", "admin@example.com", "Admin1234", models.RoleAdmin},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcryptCost)
		if err != nil {
			return err
		}
		user := models.User{
			Name:         account.name,
			Email:        account.email,
			PasswordHash: string(hash),
			Role:         account.role,
		}
		if err := s.Users.Create(&user); err != nil {
			return err
		}
	}

	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	hours := func(open, close string) models.OpeningHours {
		h := models.OpeningHours{}
		for _, day := range weekdays {
			h[day] = models.TimeRange{Open: open, Close: close}
		}
		return h
	}

	restaurants := []models.Restaurant{
		{
			Name:         "The Italian Kitchen",
			Description:  "Authentic Italian cuisine with traditional recipes passed down through generations",
			Address:      "123 Main St, Downtown",
			Phone:        "555-0123",
			Email:        "info@italiankit.com",
			Cuisine:      []string{"Italian", "Pasta", "Pizza"},
			OpeningHours: hours("11:00", "23:00"),
			TotalTables:  20,
		},
		{
			Name:         "Spice Route",
			Description:  "Authentic Indian cuisine with aromatic spices and traditional cooking methods",
			Address:      "456 Oak Ave, Midtown",
			Phone:        "555-0124",
			Email:        "info@spiceroute.com",
			Cuisine:      []string{"Indian", "Curry", "Tandoori"},
			OpeningHours: hours("12:00", "23:30"),
			TotalTables:  25,
		},
		{
			Name:         "Sushi Paradise",
			Description:  "Premium Japanese sushi and seafood restaurant with expert chefs",
			Address:      "789 Pine St, Uptown",
			Phone:        "555-0125",
			Email:        "info@sushiparadise.com",
			Cuisine:      []string{"Japanese", "Sushi", "Seafood"},
			OpeningHours: hours("12:00", "23:00"),
			TotalTables:  18,
		},
	}

	menus := map[string][]models.MenuItem{
		"The Italian Kitchen": {
			{Name: "Margherita Pizza", Description: "Tomato, mozzarella and basil", Category: "Mains", Price: 12.50, IsAvailable: true},
			{Name: "Spaghetti Carbonara", Description: "Egg, pecorino and guanciale", Category: "Mains", Price: 14.00, IsAvailable: true},
			{Name: "Tiramisu", Description: "Classic coffee-soaked dessert", Category: "Desserts", Price: 6.50, IsAvailable: true},
		},
		"Spice Route": {
			{Name: "Butter Chicken", Description: "Creamy tomato curry", Category: "Mains", Price: 13.00, IsAvailable: true},
			{Name: "Garlic Naan", Description: "Tandoor-baked flatbread", Category: "Sides", Price: 3.50, IsAvailable: true},
		},
		"Sushi Paradise": {
			{Name: "Salmon Nigiri", Description: "Two pieces, fresh salmon", Category: "Sushi", Price: 5.00, IsAvailable: true},
			{Name: "Dragon Roll", Description: "Eel, avocado and cucumber", Category: "Rolls", Price: 11.00, IsAvailable: true},
		},
	}

	for i := range restaurants {
		if err := s.Restaurants.Create(&restaurants[i]); err != nil {
			return err
		}
		for _, item := range menus[restaurants[i].Name] {
			item.RestaurantID = restaurants[i].ID
			if err := s.MenuItems.Create(&item); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d sample restaurants", len(restaurants))
	return nil
}
