package service

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/syncnotes/syncnotes/models"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type noteRules struct {
	Id      string `validate:"max=100"`
	Name    string `validate:"max=200"`
	Content string `validate:"max=1048576"`
}

type elementRules struct {
	Id             string  `validate:"max=100"`
	WhiteboardName string  `validate:"required,max=200"`
	Type           string  `validate:"max=50"`
	Color          string  `validate:"omitempty,hexcolor6"`
	StrokeWidth    float64 `validate:"gte=0,lte=100"`
	Points         int     `validate:"lte=10000"`
	Text           string  `validate:"max=10000"`
}

type userRules struct {
	Name  string `validate:"required,max=100"`
	Color string `validate:"required,hexcolor6"`
}

type emailRules struct {
	Email string `validate:"required,email"`
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorRegex.MatchString(fl.Field().String())
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) validateNote(note models.Note) error {
	return s.check(noteRules{Id: note.Id, Name: note.Name, Content: note.Content})
}

func (s *Service) validateElement(element models.WhiteboardElement) error {
	return s.check(elementRules{
		Id:             element.Id,
		WhiteboardName: element.WhiteboardName,
		Type:           element.Type,
		Color:          element.Color,
		StrokeWidth:    element.StrokeWidth,
		Points:         len(element.Points),
		Text:           element.Text,
	})
}

func (s *Service) validateUser(user models.User) error {
	return s.check(userRules{Name: user.Name, Color: user.Color})
}

func (s *Service) validateEmail(email string) error {
	return s.check(emailRules{Email: email})
}

func (s *Service) check(rules any) error {
	err := s.validate.Struct(rules)
	if err == nil {
		return nil
	}
	if msg := describeValidation(err); msg != "" {
		return invalidArgument("%s", msg)
	}
	return invalidArgument("invalid payload")
}

// describeValidation renders validator errors as "field: problem; ...".
func describeValidation(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ""
	}

	problems := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			problems = append(problems, field+": this field is required")
		case "max", "lte":
			problems = append(problems, fmt.Sprintf("%s: value is too large, max: %s", field, fe.Param()))
		case "gte":
			problems = append(problems, fmt.Sprintf("%s: value is too small, min: %s", field, fe.Param()))
		case "hexcolor6":
			problems = append(problems, field+": must be a color like #1a2b3c")
		case "email":
			problems = append(problems, field+": must be a valid email address")
		default:
			problems = append(problems, field+": invalid value")
		}
	}
	sort.Strings(problems)
	return strings.Join(problems, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
