package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/tristendillon/create-common-app/core/shared"
)

type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
)

type Framework string

const (
	FrameworkNone Framework = "none"
	FrameworkVite Framework = "vite"
	FrameworkNext Framework = "next"
)

type Environment string

const (
	EnvBrowser Environment = "browser"
	EnvNode    Environment = "node"
)

var ErrInvalidAnswers = errors.New("invalid answers")

// Answers is what the prompt layer hands to the engine. Nothing downstream
// mutates it.
type Answers struct {
	TargetDir     string        `json:"target_dir" yaml:"target_dir" validate:"required,projectdir"`
	Language      Language      `json:"language" yaml:"language" validate:"oneof=javascript typescript"`
	Framework     Framework     `json:"framework" yaml:"framework" validate:"oneof=none vite next"`
	Environments  []Environment `json:"environments" yaml:"environments" validate:"dive,oneof=browser node"`
	Overwrite     bool          `json:"overwrite" yaml:"overwrite"`
	StylingPreset bool          `json:"styling_preset" yaml:"styling_preset"`
}

func LanguageFor(typed bool) Language {
	if typed {
		return TypeScript
	}
	return JavaScript
}

func (a Answers) IsTyped() bool {
	return a.Language == TypeScript
}

// UsesUI reports whether the framework renders components.
func (a Answers) UsesUI() bool {
	return a.Framework == FrameworkVite || a.Framework == FrameworkNext
}

func (a Answers) HasEnvironment(env Environment) bool {
	return slices.Contains(a.Environments, env)
}

// validPackageName mirrors the npm registry's accepted package name shape.
var validPackageName = regexp.MustCompile(`^(?:@[a-z0-9-*~][a-z0-9-*._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

func IsValidPackageName(name string) bool {
	return len(name) <= 214 && validPackageName.MatchString(name)
}

var answersValidate *validator.Validate

func init() {
	answersValidate = validator.New(validator.WithRequiredStructEnabled())
	if err := answersValidate.RegisterValidation("projectdir", validateProjectDir); err != nil {
		panic(fmt.Sprintf("failed to register projectdir validator: %v", err))
	}
}

// The directory itself may be any path; only its base name has to survive
// sanitizing into a package name.
func validateProjectDir(fl validator.FieldLevel) bool {
	base := filepath.Base(filepath.Clean(fl.Field().String()))
	if base == "." || base == string(filepath.Separator) {
		return false
	}
	return IsValidPackageName(shared.ToValidPackageName(base))
}

// Validate checks the answers and wraps failures in ErrInvalidAnswers.
func (a Answers) Validate() error {
	if err := answersValidate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", ErrInvalidAnswers, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidAnswers, err)
	}
	return nil
}
