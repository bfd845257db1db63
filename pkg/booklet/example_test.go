package booklet_test

import (
	"fmt"

	"github.com/skyforge/astropress/pkg/booklet"
	"github.com/skyforge/astropress/pkg/errors"
)

func ExampleTemplate_Render() {
	// A skeleton recognizes only its declared slot names; every other brace
	// construct is target syntax and passes through untouched.
	skeleton := `\title{Sky over {site}}` + "\n" + `Observed from {site} at {latitude}.` + "\n"

	tmpl, err := booklet.Parse(skeleton, []booklet.Slot{
		{Name: "site", Required: true},
		{Name: "latitude", Required: true},
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	doc, err := tmpl.Render(map[string]string{
		"site":     "Greenwich",
		"latitude": "51.5°N",
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Print(doc)
	// Output:
	// \title{Sky over Greenwich}
	// Observed from Greenwich at 51.5°N.
}

func ExampleParameters_Validate() {
	params := booklet.Parameters{Latitude: "52°N"}
	err := params.Validate()
	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.UserMessage(err))
	// Output:
	// MISSING_PARAMETER
	// missing value for slot "mother_back"
}
