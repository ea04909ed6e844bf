package main

import (
	"fmt"
	"log"

	"github.com/AlecAivazis/survey/v2"

	"portfolio/internal/util"
)

func main() {
	var answers struct {
		Password string
		Confirm  string
	}

	questions := []*survey.Question{
		{
			Name:     "password",
			Prompt:   &survey.Password{Message: "Admin password:"},
			Validate: survey.ComposeValidators(survey.Required, survey.MinLength(8)),
		},
		{
			Name:     "confirm",
			Prompt:   &survey.Password{Message: "Confirm password:"},
			Validate: survey.Required,
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	if answers.Password != answers.Confirm {
		log.Fatal("Passwords do not match")
	}

	hashedPassword, err := util.HashPassword(answers.Password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println("Add this to your environment to enable the admin API:")
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hashedPassword)
	fmt.Println("SECRET_KEY must also be set to at least 32 characters.")
}
