package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

type formErrors map[string]string

func (e formErrors) required(field, value, msg string) {
	if value == "" {
		e[field] = msg
	}
}

// pathID reads the {id} wildcard. Anything but a positive integer is treated
// as a missing record.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formIDs parses a multi-select of ids, skipping values that are not numbers.
func formIDs(values []string) []int {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}
