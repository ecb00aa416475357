package validation

func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"email": {
			"email": "Invalid email format",
			"max":   "email must be at most 120 characters",
		},
		"password": {
			"min": "Password must be at least 8 characters long",
		},
	}
	return customValidationMessages[field]
}
