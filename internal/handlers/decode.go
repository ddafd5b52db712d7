package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/insights-dashboard/internal/errs"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errs.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
