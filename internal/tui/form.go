package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tturner/formfill/internal/submission"
)

// formValues backs the huh fields. It is shared by pointer so the bound
// addresses stay valid while the model is copied by value.
type formValues struct {
	url       string
	responses string
	minutes   string
	seconds   string
	advanced  bool
	context   string
	tone      string
}

func newFormValues(req submission.Request) *formValues {
	tone := string(req.Tone)
	if tone == "" {
		tone = string(submission.TonePositive)
	}
	return &formValues{
		url:       req.FormURL,
		responses: strconv.Itoa(req.Responses),
		minutes:   strconv.Itoa(req.IntervalMinutes),
		seconds:   strconv.Itoa(req.IntervalSeconds),
		context:   req.Context,
		tone:      tone,
	}
}

// fields returns the values in the order they are pushed to the controller.
func (v *formValues) fields() []fieldValue {
	return []fieldValue{
		{submission.FieldFormURL, v.url},
		{submission.FieldResponses, v.responses},
		{submission.FieldIntervalMinutes, v.minutes},
		{submission.FieldIntervalSeconds, v.seconds},
		{submission.FieldContext, v.context},
		{submission.FieldTone, v.tone},
	}
}

type fieldValue struct {
	field submission.Field
	value string
}

func validateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return submission.ErrMissingURL
	}
	return nil
}

func validateResponses(s string) error {
	_, err := submission.ParseResponses(s)
	return err
}

func validateMinutes(s string) error {
	_, err := submission.ParseIntervalPart(s, submission.MaxIntervalMinutes)
	return err
}

// validateSeconds also enforces the combined ceiling against the minutes
// currently entered.
func (v *formValues) validateSeconds(s string) error {
	seconds, err := submission.ParseIntervalPart(s, submission.MaxIntervalSeconds)
	if err != nil {
		return err
	}
	minutes, err := submission.ParseIntervalPart(v.minutes, submission.MaxIntervalMinutes)
	if err != nil {
		return err
	}
	return submission.ValidateInterval(minutes, seconds)
}

func toneOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(submission.Tones))
	for _, t := range submission.Tones {
		name := string(t)
		opts = append(opts, huh.NewOption(strings.ToUpper(name[:1])+name[1:], name))
	}
	return opts
}

func buildSubmissionForm(v *formValues) *huh.Form {
	targetGroup := huh.NewGroup(
		huh.NewInput().
			Title("Google Form URL").
			Description("Address of the form to fill.").
			Placeholder("https://docs.google.com/forms/d/e/.../viewform").
			Key("form_url").
			Validate(validateURL).
			Value(&v.url),
		huh.NewInput().
			Title("Number of responses").
			Description("Between 1 and 50.").
			Key("responses").
			Validate(validateResponses).
			Value(&v.responses),
	)

	timingGroup := huh.NewGroup(
		huh.NewInput().
			Title("Interval minutes").
			Description("0-5. Time between responses, at most 5 minutes in total.").
			Key("interval_minutes").
			Validate(validateMinutes).
			Value(&v.minutes),
		huh.NewInput().
			Title("Interval seconds").
			Description("0-59.").
			Key("interval_seconds").
			Validate(v.validateSeconds).
			Value(&v.seconds),
		huh.NewConfirm().
			Title("AI response settings").
			Description("Set the form description and answer tone.").
			Key("advanced").
			Affirmative("Edit").
			Negative("Skip").
			Value(&v.advanced),
	)

	aiGroup := huh.NewGroup(
		huh.NewText().
			Title("Form context").
			Description("What the form is about (optional).").
			Key("form_context").
			Value(&v.context),
		huh.NewSelect[string]().
			Title("Response tone").
			Key("response_tone").
			Options(toneOptions()...).
			Value(&v.tone),
	).WithHideFunc(func() bool { return !v.advanced })

	return huh.NewForm(targetGroup, timingGroup, aiGroup)
}
