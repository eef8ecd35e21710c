package validator

import (
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateRegister(username, password, name, surname, avatar string) ValidationErrors {
	errs := make(ValidationErrors)

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) > 20 {
		errs.Add("username", "Username is too long")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len(name) > 20 {
		errs.Add("name", "Name is too long")
	}

	surname = strings.TrimSpace(surname)
	if surname == "" {
		errs.Add("surname", "Surname is required")
	} else if len(surname) > 20 {
		errs.Add("surname", "Surname is too long")
	}

	if len(avatar) > 255 {
		errs.Add("avatar", "Avatar URL is too long")
	}

	return errs
}

func ValidateLogin(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidatePost(image, message, location, status string) ValidationErrors {
	errs := make(ValidationErrors)

	image = strings.TrimSpace(image)
	if image == "" {
		errs.Add("image", "Image is required")
	} else if len(image) > 255 {
		errs.Add("image", "Image URL is too long")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		errs.Add("message", "Message is required")
	} else if len(message) > 500 {
		errs.Add("message", "Message is too long")
	}

	location = strings.TrimSpace(location)
	if location == "" {
		errs.Add("location", "Location is required")
	} else if len(location) > 30 {
		errs.Add("location", "Location is too long")
	}

	status = strings.TrimSpace(status)
	if status == "" {
		errs.Add("status", "Status is required")
	} else if len(status) > 10 {
		errs.Add("status", "Status is too long")
	}

	return errs
}
