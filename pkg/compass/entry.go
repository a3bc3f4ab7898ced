package compass

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/clevacompass/pkg/errors"
)

// validate is shared by all entries; validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Entry is one method plotted on the compass.
type Entry struct {
	Color string     `json:"color" validate:"required"`
	Label string     `json:"label"`
	Inner InnerLevel `json:"inner_level"`
	Outer OuterLevel `json:"outer_level"`
}

// String renders the entry the way entry listings show it: "label (color)".
func (e Entry) String() string {
	return e.Label + " (" + e.Color + ")"
}

// Validate checks that the entry has a colour and that every inner level
// value lies in 0..2.
func (e Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into a coded error naming
// the offending fields by their JSON keys.
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid entry")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fieldKey(fe)))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s: value %v out of range 0..2", fieldKey(fe), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fieldKey(fe), fe.Tag()))
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid entry: %s", strings.Join(msgs, "; "))
}

// fieldKey maps a validator namespace such as "Entry.Inner.Online" to the
// JSON key path "inner_level.online".
func fieldKey(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = jsonKeys[p]
		if parts[i] == "" {
			parts[i] = strings.ToLower(p)
		}
	}
	return strings.Join(parts, ".")
}

var jsonKeys = func() map[string]string {
	m := map[string]string{
		"Color": "color",
		"Label": "label",
		"Inner": "inner_level",
		"Outer": "outer_level",
	}
	inner := []string{
		"MultipleModels", "Federated", "Online", "OpenWorld", "MultipleModalities",
		"ActiveDataQuery", "TaskOrderDiscovery", "TaskAgnostic", "EpisodicMemory",
		"Generative", "Uncertainty",
	}
	for i, f := range inner {
		m[f] = InnerAttributes[i]
	}
	return m
}()
