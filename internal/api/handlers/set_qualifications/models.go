package set_qualifications

// SetQualificationsRequest HTTP request model
type SetQualificationsRequest struct {
	ServiceIDs []int64 `json:"serviceIds"`
}
