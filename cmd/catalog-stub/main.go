package main

import (
	"encoding/json"
	"log"
	"net/http"

	"product-detail-bff/internal/models"
)

var products = map[string]models.Product{
	"1": {
		ID:          1,
		Title:       "Wireless Headphones",
		Price:       129.99,
		Category:    "electronics",
		Description: "Over-ear wireless headphones with active noise cancelling.",
		Stock:       14,
		Images: []string{
			"https://cdn.example.com/p/1/front.jpg",
			"https://cdn.example.com/p/1/side.jpg",
			"https://cdn.example.com/p/1/case.jpg",
		},
		Tags:   []string{"audio", "wireless"},
		Rating: 4.6,
		Reviews: []models.Review{
			{
				ReviewerName: "Dana",
				Date:         "2025-05-12T09:30:00Z",
				Comment:      "Great sound, battery lasts all week.",
				Rating:       5,
			},
			{
				ReviewerName: "Mike",
				Date:         "2025-06-01T17:45:00Z",
				Comment:      "Ear cushions run a little small.",
				Rating:       3.5,
			},
		},
	},
	"2": {
		ID:          2,
		Title:       "Mechanical Keyboard",
		Price:       89.5,
		Category:    "electronics",
		Description: "Tenkeyless mechanical keyboard, hot-swappable switches.",
		Stock:       0,
		Images: []string{
			"https://cdn.example.com/p/2/top.jpg",
		},
		Tags:   []string{"keyboard"},
		Rating: 4.4,
	},
}

func main() {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := products[r.PathValue("id")]
		if !ok {
			http.Error(w, `{"error": "product not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(p); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	log.Println("Catalog stub listening on :8083")

	if err := http.ListenAndServe(":8083", mux); err != nil {
		log.Fatal(err)
	}
}
