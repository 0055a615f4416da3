package main

import (
	"encoding/json"
	"net/http"

	"patitas/internal/domain/advice"
	"patitas/internal/domain/daycares"
	"patitas/internal/domain/recipes"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// enumerations shown as pickers in the app
	registerOneOf("advice_category", advice.Categories)
	registerOneOf("recipe_type", recipes.Types)
	registerOneOf("pet_type", recipes.PetTypes)
	registerOneOf("daycare_service", daycares.Services)
	registerOneOf("rating_label", daycares.RatingLabels)
}

// registerOneOf adds a tag accepting exactly the given values. The built-in oneof tag
// splits on spaces, which several of these values contain.
func registerOneOf(tag string, values []string) {
	allowed := make(map[string]bool, len(values))
	for _, v := range values {
		allowed[v] = true
	}
	Validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return allowed[fl.Field().String()]
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// it parses body into Go struct.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	}

	return writeJSON(w, status, &envelope{
		Success: false,
		Message: message,
		Status:  status,
	})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	type envelope struct {
		Data any `json:"data"`
	}
	return writeJSON(w, status, &envelope{Data: data})
}
