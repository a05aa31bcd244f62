package summary

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrBadModelResponse signals that the model returned something other than a
// JSON object after fence stripping. The failure is surfaced, never silently
// replaced with an empty summary.
var ErrBadModelResponse = errors.New("failed to parse model response as JSON")

// parseModelResponse strips markdown fences the model may add despite
// instructions, then decodes the JSON object.
func parseModelResponse(raw string) (map[string]interface{}, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		if i := strings.Index(text, "\n"); i >= 0 {
			text = text[i+1:]
		}
		text = strings.TrimSpace(text)
		if strings.HasSuffix(text, "```") {
			text = strings.TrimSpace(text[:strings.LastIndex(text, "```")])
		}
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, ErrBadModelResponse
	}
	return data, nil
}

// mergeAdherence attaches the server-computed adherence figures alongside the
// model's narrative, keyed by medication ID.
func mergeAdherence(data map[string]interface{}, adherence map[uuid.UUID]MedicationAdherence) {
	keyed := make(map[string]MedicationAdherence, len(adherence))
	for id, a := range adherence {
		keyed[id.String()] = a
	}
	data["adherence_data"] = keyed
}
